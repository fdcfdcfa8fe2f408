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

// SetWatch records addr as the watchpoint.
func (dbg *Debugger) SetWatch(addr uint16) {
	dbg.Watchpoint = Watchpoint{Addr: addr, Set: true}
}

func (dbg *Debugger) ClearWatch() {
	dbg.Watchpoint = Watchpoint{}
}

// Write is called by the bus after every CPU store. A store to the
// watchpoint stops the running program at the next instruction boundary.
func (dbg *Debugger) Write(addr uint16, value byte) {
	if !dbg.Watchpoint.Set || addr != dbg.Watchpoint.Addr {
		return
	}

	if dbg.HandleWatch != nil {
		dbg.HandleWatch(addr, value)
	}

	if dbg.Signals != nil {
		dbg.Signals.RequestBreak()
	}
}
