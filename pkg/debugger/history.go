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

package debugger

// History is a bounded ring of recently executed program counters.
type History struct {
	pcs   []uint16
	next  int
	count int
}

func NewHistory(size int) *History {
	if size <= 0 {
		return nil
	}

	return &History{pcs: make([]uint16, size)}
}

func (h *History) Push(pc uint16) {
	h.pcs[h.next] = pc
	h.next = (h.next + 1) % len(h.pcs)

	if h.count < len(h.pcs) {
		h.count++
	}
}

func (h *History) Len() int {
	return h.count
}

// Entries returns the recorded program counters, oldest first.
func (h *History) Entries() []uint16 {
	out := make([]uint16, 0, h.count)

	start := h.next - h.count
	if start < 0 {
		start += len(h.pcs)
	}

	for i := 0; i < h.count; i++ {
		out = append(out, h.pcs[(start+i)%len(h.pcs)])
	}

	return out
}

func (h *History) Reset() {
	h.next = 0
	h.count = 0
}
