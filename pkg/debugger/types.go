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

package debugger

type Watchpoint struct {
	Addr uint16
	Set  bool
}

// Debugger is the console's state between commands.
type Debugger struct {
	Signals *Signals

	Watchpoint    Watchpoint
	Cursor        uint16
	ShowRegisters bool
	History       *History // nil when PC history is disabled

	HandleWatch func(addr uint16, value byte)
}

// Terminal switches the host terminal into execution mode for the length
// of a run.
type Terminal interface {
	ExecMode() (restore func())
}
