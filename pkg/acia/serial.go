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

import (
	"github.com/jacobsa/go-serial/serial"
)

// OpenSerial attaches the device to a host serial line, 8N1 at baud.
func OpenSerial(name string, baud uint) (*StreamPort, error) {
	options := serial.OpenOptions{
		PortName:        name,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	}

	rwc, err := serial.Open(options)
	if err != nil {
		return nil, err
	}

	return NewStreamPort(rwc), nil
}
