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

// Package acia emulates a 6850-style serial controller. The device has two
// registers: control/status at the base address and data at base+1.
//
// Received bytes come from a Port in batches of up to BUFFER_SIZE bytes.
// Transmitted bytes are buffered and written to the Port according to the
// buffering mode selected in the control register. Control writes also
// switch the host terminal between canonical and raw input and turn echo
// on or off.
package acia

import (
	"log"
)

type Acia struct {
	Port Port
	Term TermMode    // optional
	IRQ  Interrupter // optional

	Control          Control
	InterruptEnabled bool
	InterruptPending bool

	in  InputQueue
	out OutputBuffer
}

func New(port Port, term TermMode, irq Interrupter) *Acia {
	return &Acia{Port: port, Term: term, IRQ: irq}
}

// Reset returns the device to its power-on state. The terminal mode is left
// alone until the next control write.
func (dev *Acia) Reset() {
	dev.Control = Control{}
	dev.InterruptEnabled = false
	dev.InterruptPending = false
	dev.in.Reset()
	dev.out.Reset()
}

// Pending returns the number of unread received bytes and unflushed
// transmitted bytes.
func (dev *Acia) Pending() (in, out int) {
	return dev.in.Len(), dev.out.Len()
}

func (dev *Acia) status() (value byte) {
	if !dev.in.Empty() {
		value |= STATUS_RDRF
	}

	if dev.InterruptPending {
		value |= STATUS_IRQ
	}

	dev.InterruptPending = false
	return
}

// Read returns the register at offset reg. Only the low address bit is
// decoded.
func (dev *Acia) Read(reg uint16) byte {
	switch reg & 0x01 {
	case REG_CONTROL:
		return dev.status()

	case REG_DATA:
		value, _ := dev.in.Pop()
		return value
	}

	return 0
}

// Write stores value into the register at offset reg.
func (dev *Acia) Write(reg uint16, value byte) {
	switch reg & 0x01 {
	case REG_CONTROL:
		dev.writeControl(value)

	case REG_DATA:
		full := dev.out.Append(value)

		switch {
		case full,
			dev.Control.Mode == Unbuffered,
			dev.Control.Mode == LineBuffered && value == '\n',
			dev.Control.Mode == ZeroDelay && value == '\n':
			dev.Flush()
		}
	}
}

func (dev *Acia) writeControl(value byte) {
	ctrl := DecodeControl(value)

	if ctrl.InterruptEnable {
		dev.InterruptEnabled = true
	}

	dev.Control = ctrl

	if dev.Term != nil {
		if err := dev.Term.SetMode(ctrl.Canonical(), ctrl.Echo); err != nil {
			log.Printf("acia: terminal mode: %v", err)
		}
	}

	if ctrl.Flush {
		dev.Flush()
	}
}

// Flush writes the output buffer to the port and empties it.
func (dev *Acia) Flush() {
	if dev.out.Len() == 0 {
		return
	}

	if _, err := dev.Port.Write(dev.out.Bytes()); err != nil {
		log.Printf("acia: write: %v", err)
	}

	dev.out.Reset()
}

// Poll fetches a new batch of input once the previous one has been read
// and raises one interrupt per batch when interrupts are enabled.
func (dev *Acia) Poll() {
	n, err := dev.in.Fill(dev.Port.Poll)
	if err != nil {
		log.Printf("acia: read: %v", err)
	}

	if n > 0 && dev.InterruptEnabled {
		dev.InterruptPending = true

		if dev.IRQ != nil {
			dev.IRQ.RaiseInterrupt()
		}
	}
}
