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

// Package script drives the console from a batch file. Lua (.lua) and
// Starlark (.star, .py) scripts see the same small set of builtins:
//
//	command(line)       run a console command, true if it asked to quit
//	peek(addr)          read a memory byte
//	poke(addr, value)   write a memory byte
//	pc()                the program counter
//	cycles()            the cycle counter
package script

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/lassandro/gosim/pkg/console"
	"github.com/lassandro/gosim/pkg/translate"
)

var f = translate.From

var ErrLanguage = errors.New(f("unknown script language"))

// host is what the builtins act on.
type host struct {
	con *console.Console
}

func (h host) command(line string) bool {
	return h.con.Execute(line)
}

func (h host) peek(addr int) int {
	return int(h.con.Memory.GetByte(uint16(addr)))
}

func (h host) poke(addr, value int) {
	h.con.Memory.SetByte(uint16(addr), byte(value))
}

func (h host) pc() int {
	return int(h.con.Driver.Engine.PC())
}

func (h host) cycles() int64 {
	return h.con.Driver.Cycles
}

// RunFile runs the script in filename, choosing the interpreter from its
// extension.
func RunFile(filename string, con *console.Console) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".lua":
		return runLua(host{con}, filename, "")
	case ".star", ".py":
		return runStarlark(host{con}, filename, nil)
	}

	return ErrLanguage
}

// RunLua runs Lua source against con.
func RunLua(src string, con *console.Console) error {
	return runLua(host{con}, "", src)
}

// RunStarlark runs Starlark source against con.
func RunStarlark(src string, con *console.Console) error {
	return runStarlark(host{con}, "script.star", src)
}
