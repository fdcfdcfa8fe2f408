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

// Package srec loads Motorola S-record images into a 64K address space.
//
// Only the 16-bit address records are accepted: S0 (header) and S5 (count)
// are skipped, S1 carries data and S9 ends the image. A line holding a
// single '.' also ends the image, which is how the console upload mode is
// terminated from the keyboard.
package srec

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/lassandro/gosim/pkg/translate"
)

var f = translate.From

var (
	ErrRecordType = errors.New(f("unsupported record type"))
	ErrHexDigit   = errors.New(f("bad hex digit"))
	ErrLength     = errors.New(f("bad record length"))
	ErrChecksum   = errors.New(f("checksum mismatch"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Memory receives the decoded bytes.
type Memory interface {
	SetByte(addr uint16, value byte)
}

// Image summarises a completed load.
type Image struct {
	Bytes    int
	Entry    uint16
	HasEntry bool
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, ErrLength
	}

	out := make([]byte, len(s)/2)
	for i := range out {
		var value byte
		for _, c := range []byte(s[2*i : 2*i+2]) {
			switch {
			case c >= '0' && c <= '9':
				value = value<<4 | (c - '0')
			case c >= 'a' && c <= 'f':
				value = value<<4 | (c - 'a' + 10)
			case c >= 'A' && c <= 'F':
				value = value<<4 | (c - 'A' + 10)
			default:
				return nil, ErrHexDigit
			}
		}
		out[i] = value
	}

	return out, nil
}

// record decodes the count/address/data/checksum body of one line.
func record(body string) (addr uint16, data []byte, err error) {
	raw, err := decodeHex(body)
	if err != nil {
		return
	}

	if len(raw) < 3 || int(raw[0]) != len(raw)-1 {
		err = ErrLength
		return
	}

	var sum byte
	for _, b := range raw[:len(raw)-1] {
		sum += b
	}

	if ^sum != raw[len(raw)-1] {
		err = ErrChecksum
		return
	}

	addr = uint16(raw[1])<<8 | uint16(raw[2])
	data = raw[3 : len(raw)-1]
	return
}

// Load reads records until S9, a '.' line or end of input.
func Load(r io.Reader, mem Memory) (img Image, err error) {
	reader := bufio.NewReader(r)

	for lineno := 1; ; lineno++ {
		line, rerr := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		if line == "." {
			return
		}

		if len(line) > 0 {
			if len(line) < 2 || (line[0] != 'S' && line[0] != 's') {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrRecordType}
				return
			}

			switch line[1] {
			case '0', '5':
				// Header and count records carry nothing to load.

			case '1', '9':
				addr, data, derr := record(line[2:])
				if derr != nil {
					err = &ErrSyntax{LineNo: lineno, Line: line, Err: derr}
					return
				}

				if line[1] == '9' {
					img.Entry = addr
					img.HasEntry = true
					return
				}

				for i, b := range data {
					mem.SetByte(addr+uint16(i), b)
				}
				img.Bytes += len(data)

			default:
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrRecordType}
				return
			}
		}

		if rerr == io.EOF {
			return
		} else if rerr != nil {
			err = rerr
			return
		}
	}
}

// LoadFile loads the S-record image stored in filename.
func LoadFile(filename string, mem Memory) (Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Image{}, err
	}

	defer file.Close()

	return Load(file, mem)
}
