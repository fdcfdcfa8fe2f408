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

const BUFFER_SIZE = 256

// Register offsets from the device base.
const (
	REG_CONTROL uint16 = 0 // control on write, status on read
	REG_DATA    uint16 = 1 // transmit on write, receive on read
)

// Status register bits.
const (
	STATUS_RDRF byte = 1 << 0 // receive data register full
	STATUS_IRQ  byte = 1 << 7 // interrupt pending
)

// Control register bits.
const (
	CTRL_BUFMASK byte = 0x03
	CTRL_FLUSH   byte = 1 << 2
	CTRL_ECHO    byte = 1 << 3
	CTRL_IE      byte = 1 << 7
)
