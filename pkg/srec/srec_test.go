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

package srec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMemory [1 << 16]byte

func (mem *testMemory) SetByte(addr uint16, value byte) {
	mem[addr] = value
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	var mem testMemory
	input := strings.Join([]string{
		"S00600004844521B",
		"S1050100EAEA25",
		"S9030100FB",
		"S1050200EAEA24", // after S9, never read
	}, "\n")

	img, err := Load(strings.NewReader(input), &mem)
	assert.NoError(err)
	assert.Equal(2, img.Bytes)
	assert.True(img.HasEntry)
	assert.Equal(uint16(0x0100), img.Entry)
	assert.Equal(byte(0xea), mem[0x100])
	assert.Equal(byte(0xea), mem[0x101])
	assert.Equal(byte(0x00), mem[0x200])
}

func TestLoad_UploadTerminator(t *testing.T) {
	assert := assert.New(t)

	var mem testMemory
	img, err := Load(strings.NewReader("s1050100eaea25\n.\nS1050200EAEA24\n"), &mem)
	assert.NoError(err)
	assert.False(img.HasEntry)
	assert.Equal(2, img.Bytes)
	assert.Equal(byte(0x00), mem[0x200])
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		input  string
		lineno int
		err    error
	}{
		{"S1050100EAEA26", 1, ErrChecksum},
		{"\nS1060100EAEA25", 2, ErrLength},
		{"S1050100EAXA25", 1, ErrHexDigit},
		{"S2080001000000F6", 1, ErrRecordType},
		{":10010000", 1, ErrRecordType},
	}

	for _, test := range tests {
		var mem testMemory
		_, err := Load(strings.NewReader(test.input), &mem)

		var serr *ErrSyntax
		if assert.True(errors.As(err, &serr), test.input) {
			assert.Equal(test.lineno, serr.LineNo, test.input)
		}
		assert.True(errors.Is(err, test.err), test.input)
	}
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "image.s19")
	require.NoError(t, os.WriteFile(path, []byte("S1050100EAEA25\nS9030000FC\n"), 0o644))

	var mem testMemory
	img, err := LoadFile(path, &mem)
	assert.NoError(err)
	assert.Equal(2, img.Bytes)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.s19"), &mem)
	assert.Error(err)
}
