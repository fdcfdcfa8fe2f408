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

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func starlarkBuiltins(h host) starlark.StringDict {
	builtins := map[string]builtinFunc{
		"command": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var line string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
				return nil, err
			}
			return starlark.Bool(h.command(line)), nil
		},
		"peek": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr); err != nil {
				return nil, err
			}
			return starlark.MakeInt(h.peek(addr)), nil
		},
		"poke": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr, value int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr, "value", &value); err != nil {
				return nil, err
			}
			h.poke(addr, value)
			return starlark.None, nil
		},
		"pc": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
				return nil, err
			}
			return starlark.MakeInt(h.pc()), nil
		},
		"cycles": func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
				return nil, err
			}
			return starlark.MakeInt64(h.cycles()), nil
		},
	}

	dict := starlark.StringDict{}
	for name, fn := range builtins {
		dict[name] = starlark.NewBuiltin(name, fn)
	}

	return dict
}

// runStarlark executes src, or the contents of filename when src is nil.
func runStarlark(h host, filename string, src any) error {
	thread := &starlark.Thread{
		Name: "script",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(h.con.Out, msg)
		},
	}

	opts := syntax.FileOptions{}

	_, err := starlark.ExecFileOptions(&opts, thread, filename, src, starlarkBuiltins(h))
	return err
}
