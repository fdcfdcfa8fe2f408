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

package acia

import (
	"errors"
	"io"
	"log"
	"os"

	"golang.org/x/sys/unix"
)

// FilePort connects the device to a pair of file descriptors, normally the
// process's stdin and stdout. The input descriptor is non-blocking only for
// the duration of each Poll so that blocking reads elsewhere, such as the
// console's line input, are unaffected.
type FilePort struct {
	in  int
	out *os.File
}

func NewFilePort(in, out *os.File) *FilePort {
	return &FilePort{in: int(in.Fd()), out: out}
}

func (port *FilePort) Poll(p []byte) (int, error) {
	if err := unix.SetNonblock(port.in, true); err != nil {
		return 0, err
	}

	defer func() {
		if err := unix.SetNonblock(port.in, false); err != nil {
			log.Printf("acia: %v", err)
		}
	}()

	n, err := unix.Read(port.in, p)

	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return 0, nil
	case err != nil:
		return 0, err
	}

	return n, nil
}

func (port *FilePort) Write(p []byte) (int, error) {
	return port.out.Write(p)
}

// StreamPort connects the device to any byte stream. A reader goroutine
// moves received bytes into a channel that Poll drains without blocking.
type StreamPort struct {
	rw    io.ReadWriter
	inkey chan byte
}

func NewStreamPort(rw io.ReadWriter) *StreamPort {
	port := &StreamPort{
		rw:    rw,
		inkey: make(chan byte, BUFFER_SIZE),
	}

	go port.inkeyRoutine()

	return port
}

func (port *StreamPort) inkeyRoutine() {
	defer close(port.inkey)

	buf := make([]byte, BUFFER_SIZE)
	for {
		n, err := port.rw.Read(buf)
		for _, b := range buf[:n] {
			port.inkey <- b
		}

		if err != nil {
			if err != io.EOF {
				log.Printf("acia: read: %v", err)
			}
			return
		}
	}
}

func (port *StreamPort) Poll(p []byte) (n int, err error) {
	for n < len(p) {
		select {
		case b, ok := <-port.inkey:
			if !ok {
				return
			}
			p[n] = b
			n++
		default:
			return
		}
	}

	return
}

func (port *StreamPort) Write(p []byte) (int, error) {
	return port.rw.Write(p)
}

// Close closes the underlying stream when it supports it.
func (port *StreamPort) Close() error {
	if closer, ok := port.rw.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
