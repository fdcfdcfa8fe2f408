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
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Signals holds the flags written asynchronously by the signal goroutine.
// The goroutine only stores flags and does non-blocking channel sends;
// everything else reads and clears them between instructions.
type Signals struct {
	brk    atomic.Bool
	reboot atomic.Bool
	quit   atomic.Bool
	active atomic.Bool

	wake chan struct{}
	c    chan os.Signal
}

func NewSignals() *Signals {
	return &Signals{wake: make(chan struct{}, 1)}
}

// Notify routes SIGINT to a break request, SIGHUP to a reboot request and
// SIGTERM or SIGQUIT to a quit request.
func (sig *Signals) Notify() {
	sig.c = make(chan os.Signal, 1)
	signal.Notify(sig.c, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		for s := range sig.c {
			switch s {
			case os.Interrupt:
				if !sig.active.Load() {
					sig.RequestBreak()
				}
			case syscall.SIGHUP:
				sig.RequestReboot()
			case syscall.SIGTERM, syscall.SIGQUIT:
				sig.RequestQuit()
			}
		}
	}()
}

func (sig *Signals) Stop() {
	if sig.c == nil {
		return
	}

	signal.Stop(sig.c)
	close(sig.c)
	sig.c = nil
}

// RequestBreak stops a running program at the next instruction boundary.
func (sig *Signals) RequestBreak() {
	sig.brk.Store(true)

	select {
	case sig.wake <- struct{}{}:
	default:
	}
}

func (sig *Signals) Break() bool {
	return sig.brk.Load()
}

// ClearBreak consumes a pending break request.
func (sig *Signals) ClearBreak() bool {
	select {
	case <-sig.wake:
	default:
	}

	return sig.brk.Swap(false)
}

// Wake is signalled by every break request.
func (sig *Signals) Wake() <-chan struct{} {
	return sig.wake
}

func (sig *Signals) RequestReboot() {
	sig.reboot.Store(true)
}

func (sig *Signals) RebootPending() bool {
	return sig.reboot.Load()
}

// ClearReboot consumes a pending reboot request.
func (sig *Signals) ClearReboot() bool {
	return sig.reboot.Swap(false)
}

// RequestQuit stops a running program and makes the console return, so
// that the terminal is restored on the way out.
func (sig *Signals) RequestQuit() {
	sig.quit.Store(true)
	sig.RequestBreak()
}

func (sig *Signals) QuitPending() bool {
	return sig.quit.Load()
}

// Interrupted reports whether a blocked console read should give up.
func (sig *Signals) Interrupted() bool {
	return sig.reboot.Load() || sig.quit.Load()
}

// SetActive marks whether the console owns the terminal. Operator breaks
// are ignored while it does.
func (sig *Signals) SetActive(active bool) {
	sig.active.Store(active)
}

func (sig *Signals) Active() bool {
	return sig.active.Load()
}
