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

package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

func runLua(h host, filename, src string) error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		args := make([]any, L.GetTop())
		for i := range args {
			args[i] = L.Get(i + 1).String()
		}
		fmt.Fprintln(h.con.Out, args...)
		return 0
	}))

	L.SetGlobal("command", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(h.command(L.CheckString(1))))
		return 1
	}))

	L.SetGlobal("peek", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.peek(L.CheckInt(1))))
		return 1
	}))

	L.SetGlobal("poke", L.NewFunction(func(L *lua.LState) int {
		h.poke(L.CheckInt(1), L.CheckInt(2))
		return 0
	}))

	L.SetGlobal("pc", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.pc()))
		return 1
	}))

	L.SetGlobal("cycles", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.cycles()))
		return 1
	}))

	if filename != "" {
		return L.DoFile(filename)
	}

	return L.DoString(src)
}
