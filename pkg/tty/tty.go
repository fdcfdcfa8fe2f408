// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package tty owns the controlling terminal's configuration. Three
// configurations are tracked: the original one found at startup, the
// command mode used by the console, and the execution mode used while the
// emulated machine runs. The execution mode is saved again each time a run
// ends so that changes made by the emulated serial controller survive
// across runs.
package tty

import (
	"log"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type Terminal struct {
	fd      uintptr
	enabled bool

	orig *term.State
	cmd  unix.Termios
	exec unix.Termios
}

// Open takes ownership of file's terminal settings. When file is not a
// terminal every operation is a no-op.
func Open(file *os.File) *Terminal {
	tm := &Terminal{fd: file.Fd()}

	if !term.IsTerminal(int(tm.fd)) {
		return tm
	}

	state, err := term.GetState(int(tm.fd))
	if err != nil {
		log.Println(err)
		return tm
	}

	if err := termios.Tcgetattr(tm.fd, &tm.cmd); err != nil {
		log.Println(err)
		return tm
	}

	tm.orig = state
	tm.exec = tm.cmd
	tm.enabled = true

	return tm
}

func (tm *Terminal) Enabled() bool {
	return tm.enabled
}

func (tm *Terminal) set(attr *unix.Termios) {
	if err := termios.Tcsetattr(tm.fd, termios.TCSANOW, attr); err != nil {
		log.Printf("tcsetattr: %v", err)
	}
}

// ExecMode switches to the execution configuration. The returned function
// saves it and switches back to command mode.
func (tm *Terminal) ExecMode() (restore func()) {
	if !tm.enabled {
		return func() {}
	}

	tm.set(&tm.exec)

	return func() {
		if err := termios.Tcgetattr(tm.fd, &tm.exec); err != nil {
			log.Printf("tcgetattr: %v", err)
		}
		tm.set(&tm.cmd)
	}
}

// SetMode overlays line discipline and echo on the current configuration.
func (tm *Terminal) SetMode(canonical, echo bool) error {
	if !tm.enabled {
		return nil
	}

	var attr unix.Termios
	if err := termios.Tcgetattr(tm.fd, &attr); err != nil {
		return err
	}

	if canonical {
		attr.Lflag |= unix.ICANON
	} else {
		attr.Lflag &^= unix.ICANON
	}

	if echo {
		attr.Lflag |= unix.ECHO
	} else {
		attr.Lflag &^= unix.ECHO
	}

	return termios.Tcsetattr(tm.fd, termios.TCSANOW, &attr)
}

// DisableEOF removes the end-of-file key so that the console cannot be
// left by typing it.
func (tm *Terminal) DisableEOF() {
	if !tm.enabled {
		return
	}

	tm.cmd.Cc[unix.VEOF] = 0
	tm.exec.Cc[unix.VEOF] = 0
	tm.set(&tm.cmd)
}

// Restore puts back the configuration found by Open.
func (tm *Terminal) Restore() {
	if !tm.enabled {
		return
	}

	if err := term.Restore(int(tm.fd), tm.orig); err != nil {
		log.Println(err)
	}
}
