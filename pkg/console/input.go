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

package console

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/lassandro/gosim/pkg/translate"
)

var f = translate.From

// ErrInterrupted is returned by a read that gave up because a reboot or a
// quit was requested while it waited.
var ErrInterrupted = errors.New(f("read interrupted"))

// POLL_INTERVAL is how long, in milliseconds, a descriptor read waits
// before checking for an interruption again.
const POLL_INTERVAL = 100

// FdReader reads a file descriptor without blocking past an interruption.
type FdReader struct {
	Fd          int
	Interrupted func() bool
}

func (r *FdReader) Read(p []byte) (int, error) {
	fds := []unix.PollFd{{Fd: int32(r.Fd), Events: unix.POLLIN}}

	for {
		if r.Interrupted != nil && r.Interrupted() {
			return 0, ErrInterrupted
		}

		ready, err := unix.Poll(fds, POLL_INTERVAL)
		if err == unix.EINTR || (err == nil && ready == 0) {
			continue
		} else if err != nil {
			return 0, err
		}

		n, err := unix.Read(r.Fd, p)
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		} else if err != nil {
			return 0, err
		}

		if n == 0 {
			return 0, io.EOF
		}

		return n, nil
	}
}

// Input splits the operator's input into lines. A line cut short by
// ErrInterrupted is kept and completed by the next ReadLine.
type Input struct {
	reader  *bufio.Reader
	partial strings.Builder
}

func NewInput(r io.Reader) *Input {
	return &Input{reader: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator. A final line
// with no terminator is returned before io.EOF.
func (in *Input) ReadLine() (string, error) {
	s, err := in.reader.ReadString('\n')
	in.partial.WriteString(s)

	if err == io.EOF && in.partial.Len() > 0 {
		err = nil
	} else if err != nil {
		return "", err
	}

	line := strings.TrimRight(in.partial.String(), "\r\n")
	in.partial.Reset()

	return line, nil
}

// uploadReader hands the S-record loader one console line per Read so that
// it never consumes input past the end of the upload.
type uploadReader struct {
	in      *Input
	pending string
}

func (r *uploadReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		line, err := r.in.ReadLine()
		if err != nil {
			return 0, err
		}

		r.pending = line + "\n"
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]

	return n, nil
}
