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

const MEMORY_SIZE = 1 << 16

const (
	ACIA_BASE uint16 = 0xE100
	ACIA_SIZE uint16 = 2
)

const (
	STACK_PAGE   uint16 = 0x0100
	VECTOR_RESET uint16 = 0xFFFC
	VECTOR_IRQ   uint16 = 0xFFFE
)

// Processor status bits as pushed on the stack.
const (
	FLAG_CARRY     byte = 1 << 0
	FLAG_ZERO      byte = 1 << 1
	FLAG_INTERRUPT byte = 1 << 2
	FLAG_DECIMAL   byte = 1 << 3
	FLAG_BREAK     byte = 1 << 4
	FLAG_RESERVED  byte = 1 << 5
	FLAG_OVERFLOW  byte = 1 << 6
	FLAG_SIGN      byte = 1 << 7
)

// Cycles taken to enter an interrupt handler.
const IRQ_CYCLES = 7

// Execute result when an instruction consumed no cycles.
const ERR_NO_PROGRESS = -1
