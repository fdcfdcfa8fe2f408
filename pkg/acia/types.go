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

package acia

// BufferMode selects when the output buffer is written to the port.
type BufferMode uint8

const (
	LineBuffered BufferMode = iota // flush on '\n'
	ZeroDelay                      // canonical input, flushed like LineBuffered
	Unbuffered                     // raw, flush every byte
	Fixed                          // flush only when full or on request
)

func (mode BufferMode) String() string {
	switch mode {
	case LineBuffered:
		return "line"
	case ZeroDelay:
		return "zero-delay"
	case Unbuffered:
		return "raw"
	case Fixed:
		return "fixed"
	}

	return "unknown"
}

// Control is the decoded control register.
type Control struct {
	Mode            BufferMode
	Flush           bool
	Echo            bool
	InterruptEnable bool
}

func DecodeControl(value byte) Control {
	return Control{
		Mode:            BufferMode(value & CTRL_BUFMASK),
		Flush:           value&CTRL_FLUSH != 0,
		Echo:            value&CTRL_ECHO != 0,
		InterruptEnable: value&CTRL_IE != 0,
	}
}

func (ctrl Control) Encode() (value byte) {
	value = byte(ctrl.Mode) & CTRL_BUFMASK

	if ctrl.Flush {
		value |= CTRL_FLUSH
	}
	if ctrl.Echo {
		value |= CTRL_ECHO
	}
	if ctrl.InterruptEnable {
		value |= CTRL_IE
	}

	return
}

// Canonical reports whether the host terminal should be line disciplined.
func (ctrl Control) Canonical() bool {
	return ctrl.Mode != Unbuffered
}

// Port is the host end of the serial line.
type Port interface {
	// Poll reads whatever is available without blocking. It returns 0 and
	// a nil error when nothing is waiting.
	Poll(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// TermMode receives the terminal overlay derived from the control register.
type TermMode interface {
	SetMode(canonical, echo bool) error
}

// Interrupter is the CPU's interrupt entry point.
type Interrupter interface {
	RaiseInterrupt()
}
