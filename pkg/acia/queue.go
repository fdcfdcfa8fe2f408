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

// InputQueue holds one batch of received bytes. It is only refilled once
// every byte of the previous batch has been read, so unread data is never
// overwritten.
type InputQueue struct {
	data [BUFFER_SIZE]byte
	pos  int
	len  int
}

func (q *InputQueue) Empty() bool {
	return q.len == 0
}

func (q *InputQueue) Len() int {
	return q.len
}

// Fill replaces the queue contents with one read from fn. It does nothing
// while unread bytes remain.
func (q *InputQueue) Fill(fn func(p []byte) (int, error)) (int, error) {
	if !q.Empty() {
		return 0, nil
	}

	n, err := fn(q.data[:])
	if n > 0 {
		q.pos = 0
		q.len = n
	}

	return n, err
}

func (q *InputQueue) Pop() (value byte, ok bool) {
	if q.Empty() {
		return
	}

	value = q.data[q.pos]
	q.pos++
	q.len--
	return value, true
}

func (q *InputQueue) Reset() {
	q.pos = 0
	q.len = 0
}

// OutputBuffer collects transmitted bytes until they are flushed.
type OutputBuffer struct {
	data [BUFFER_SIZE]byte
	len  int
}

// Append adds value and reports whether the buffer is now full.
func (b *OutputBuffer) Append(value byte) (full bool) {
	b.data[b.len] = value
	b.len++
	return b.len == len(b.data)
}

func (b *OutputBuffer) Bytes() []byte {
	return b.data[:b.len]
}

func (b *OutputBuffer) Len() int {
	return b.len
}

func (b *OutputBuffer) Reset() {
	b.len = 0
}
