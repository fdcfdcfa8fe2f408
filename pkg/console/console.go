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

// Package console implements the operator's command loop. Each line holds
// a one letter command followed by its arguments, read leniently with
// encoding.Scanner.
package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/lassandro/gosim/pkg/debugger"
	"github.com/lassandro/gosim/pkg/encoding"
	"github.com/lassandro/gosim/pkg/machine"
)

// MAX_LINE is the longest command line accepted. Longer lines are cut.
const MAX_LINE = 79

const PROMPT = "> "

type Console struct {
	Out    io.Writer
	In     *Input
	Driver *debugger.Driver
	Memory machine.Memory

	// NoQuit ignores 'q' and end of input.
	NoQuit bool

	// AutoRun starts the machine before the first prompt.
	AutoRun bool

	// Reboot resets the peripherals and the CPU.
	Reboot func()

	last string
}

func New(out io.Writer, in *Input, driver *debugger.Driver, mem machine.Memory) *Console {
	con := &Console{
		Out:    out,
		In:     in,
		Driver: driver,
		Memory: mem,
	}

	if driver.Debugger.HandleWatch == nil {
		driver.Debugger.HandleWatch = func(addr uint16, value byte) {
			fmt.Fprintf(con.Out, "\nWatch %04X <- %02X\n", addr, value)
		}
	}

	return con
}

func (con *Console) engine() machine.Engine {
	return con.Driver.Engine
}

func (con *Console) dbg() *debugger.Debugger {
	return con.Driver.Debugger
}

func (con *Console) println(a ...any) {
	fmt.Fprintln(con.Out, a...)
}

func (con *Console) syntaxError() {
	con.println(f("Syntax Error. Type 'h' to show help."))
}

// run hands the terminal to the machine for the length of fn. A break
// left over from an earlier command is dropped first. Nothing runs once a
// quit has been requested. Operator breaks are only honoured while the
// console is inactive.
func (con *Console) run(fn func() error) error {
	sig := con.dbg().Signals
	sig.ClearBreak()

	if sig.QuitPending() {
		return nil
	}

	sig.SetActive(false)

	err := fn()
	if err != nil {
		con.println(err)
	}

	return err
}

func (con *Console) reboot() {
	if con.Reboot != nil {
		con.Reboot()
	}

	con.run(con.Driver.Run)
}

// Run reads and executes commands until 'q', the end of input or a quit
// request.
func (con *Console) Run() error {
	sig := con.dbg().Signals

	for {
		if con.AutoRun {
			con.AutoRun = false
			con.run(con.Driver.Run)
		}

		if sig.QuitPending() {
			con.println()
			return nil
		}

		sig.ClearBreak()
		sig.SetActive(true)

		fmt.Fprint(con.Out, PROMPT)

		line, err := con.In.ReadLine()

		if errors.Is(err, ErrInterrupted) {
			if sig.QuitPending() {
				continue
			}

			if sig.ClearReboot() {
				con.println()
				con.reboot()
			}
			continue
		} else if err == io.EOF {
			if !con.NoQuit {
				con.println()
				return nil
			}

			con.println(f("quit disabled"))
			continue
		} else if err != nil {
			return err
		}

		if len(line) > MAX_LINE {
			con.println(f("line too long, truncated to %d characters", MAX_LINE))
			line = line[:MAX_LINE]
		}

		if con.Execute(line) {
			return nil
		}
	}
}

// Execute runs a single command line and reports whether the console
// should quit. An empty line repeats the previous command.
func (con *Console) Execute(line string) (quit bool) {
	if line == "" {
		line = con.last
	} else {
		con.last = line
	}

	args := encoding.NewScanner(line)

	switch args.Next() {
	case 0x04:
		con.println(f("quit disabled"))

	case 'a':
		con.cmdUpload()

	case 'c':
		con.cmdClear()

	case 'd':
		con.cmdDisassemble(args)

	case 'f':
		con.cmdForward(args)

	case 'g':
		con.cmdGo(args)

	case 'h', '?':
		con.cmdHelp()

	case 'l':
		con.cmdLoad(args)

	case 'm':
		con.cmdMemory(args)

	case 'n':
		con.cmdNext(args)

	case 'p':
		con.cmdSetPC(args)

	case 'q':
		if !con.NoQuit {
			return true
		}
		con.println(f("quit disabled"))

	case 'r':
		con.engine().DumpRegisters(con.Out)

	case 's':
		con.cmdShowHistory()

	case 't':
		con.cmdClearHistory()

	case 'u':
		con.cmdToggleRegisters()

	case 'w':
		con.cmdWatch(args)

	case 'x':
		con.reboot()

	case 'y':
		con.cmdCycles(args)

	default:
		con.println(f("Undefined command. Type 'h' to show help."))
	}

	return false
}
