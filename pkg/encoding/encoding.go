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

// Package encoding reads console arguments. The readers are lenient: each
// skips leading white space, consumes as much as matches and leaves the
// rest of the line untouched, so trailing garbage is silently ignored.
package encoding

const MAX_TOKEN = 255

type Scanner struct {
	s   string
	pos int
}

func NewScanner(s string) *Scanner {
	return &Scanner{s: s}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

func hexValue(c byte) (uint16, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint16(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint16(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint16(c-'A') + 10, true
	}

	return 0, false
}

func (sc *Scanner) skipSpace() {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

// More reports whether anything but white space is left.
func (sc *Scanner) More() bool {
	sc.skipSpace()
	return sc.pos < len(sc.s)
}

// Next returns the next non-space character, or 0 at the end of the line.
func (sc *Scanner) Next() byte {
	sc.skipSpace()

	if sc.pos >= len(sc.s) {
		return 0
	}

	c := sc.s[sc.pos]
	sc.pos++
	return c
}

// Hex reads a hexadecimal value. Overflowing digits wrap to 16 bits.
func (sc *Scanner) Hex() uint16 {
	sc.skipSpace()

	var value uint16

	for sc.pos < len(sc.s) {
		digit, ok := hexValue(sc.s[sc.pos])
		if !ok {
			break
		}

		value = value<<4 | digit
		sc.pos++
	}

	return value
}

// Int reads a decimal value. ok is false when no digit was found.
func (sc *Scanner) Int() (value int, ok bool) {
	sc.skipSpace()

	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		if c < '0' || c > '9' {
			break
		}

		value = value*10 + int(c-'0')
		ok = true
		sc.pos++
	}

	return
}

// Str reads a white space delimited token of at most MAX_TOKEN characters.
func (sc *Scanner) Str() string {
	sc.skipSpace()

	start := sc.pos
	for sc.pos < len(sc.s) && !isSpace(sc.s[sc.pos]) && sc.pos-start < MAX_TOKEN {
		sc.pos++
	}

	return sc.s[start:sc.pos]
}
