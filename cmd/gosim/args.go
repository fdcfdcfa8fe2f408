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

package main

import (
	"strings"
)

// normalizeArgs splits an attached throttle value, "-t5000", into "-t"
// "5000". Arguments after the first non-flag are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)

	for i, arg := range args {
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return append(out, args[i:]...)
		}

		if strings.HasPrefix(arg, "-t") && len(arg) > 2 && arg[2] != '=' {
			out = append(out, "-t", arg[2:])
			continue
		}

		out = append(out, arg)
	}

	return out
}
