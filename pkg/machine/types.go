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

package machine

import (
	"io"
)

// Memory is the console's view of the address space. It bypasses device
// registers, so reading or clearing memory never disturbs a peripheral.
type Memory interface {
	GetByte(addr uint16) byte
	SetByte(addr uint16, value byte)
}

// Engine is what the execution driver and console need from a CPU.
type Engine interface {
	// Execute runs one instruction and returns the cycles it took. A
	// non-positive result is a run-time error code.
	Execute() int

	PC() uint16
	SetPC(addr uint16)

	DumpRegisters(w io.Writer)

	// Disassemble writes one instruction and returns its length in bytes.
	Disassemble(addr uint16, w io.Writer) uint16

	RaiseInterrupt()
	Reset()
}

// Device is a memory-mapped peripheral. reg is the offset from the start
// of the device's window.
type Device interface {
	Read(reg uint16) byte
	Write(reg uint16, value byte)
}

type MachineDebugger interface {
	Write(addr uint16, value byte)
}

type window struct {
	base uint16
	size uint16
	dev  Device
}

type Bus struct {
	RAM      [MEMORY_SIZE]byte
	Debugger MachineDebugger

	windows []window
}
