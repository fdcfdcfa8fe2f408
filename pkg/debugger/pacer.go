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

import (
	"time"
)

// Pacer delivers the periodic pacing tick used to throttle execution.
type Pacer struct {
	tick   <-chan time.Time
	ticker *time.Ticker
}

func NewPacer(period time.Duration) *Pacer {
	ticker := time.NewTicker(period)
	return &Pacer{tick: ticker.C, ticker: ticker}
}

// NewPacerFromChannel paces on an externally driven tick.
func NewPacerFromChannel(tick <-chan time.Time) *Pacer {
	return &Pacer{tick: tick}
}

// Wait blocks until the next tick or until cancel fires. It returns true
// if the tick arrived.
func (p *Pacer) Wait(cancel <-chan struct{}) bool {
	select {
	case <-p.tick:
		return true
	case <-cancel:
		return false
	}
}

func (p *Pacer) Stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
