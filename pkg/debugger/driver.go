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
	"github.com/lassandro/gosim/pkg/machine"
)

// Driver runs an Engine until the operator breaks in, a target address is
// reached or the engine reports a run-time error.
type Driver struct {
	Engine   machine.Engine
	Debugger *Debugger
	Term     Terminal

	// Pacer and Rate throttle execution to Rate cycles per pacer tick.
	// A zero Rate runs unthrottled.
	Pacer *Pacer
	Rate  int

	Cycles int64

	// Poll is called after every batch to service peripherals.
	Poll func()
}

func (d *Driver) ResetCycles() {
	d.Cycles = 0
}

func (d *Driver) execMode() (restore func()) {
	if d.Term == nil {
		return func() {}
	}

	return d.Term.ExecMode()
}

// batch runs one engine batch and does the bookkeeping around it. window
// holds the cycles run since the last pacing tick.
func (d *Driver) batch(window *int) error {
	sig := d.Debugger.Signals

	if d.Debugger.History != nil {
		d.Debugger.History.Push(d.Engine.PC())
	}

	n := d.Engine.Execute()
	if n <= 0 {
		sig.RequestBreak()
		return &ErrRuntime{Code: n}
	}

	d.Cycles += int64(n)

	if d.Rate > 0 && d.Pacer != nil {
		*window += n

		if *window > d.Rate {
			if d.Pacer.Wait(sig.Wake()) {
				*window = 0
			}
		}
	}

	if d.Poll != nil {
		d.Poll()
	}

	return nil
}

// Run executes until a break is requested. At least one batch runs.
func (d *Driver) Run() error {
	defer d.execMode()()

	var window int

	for {
		if err := d.batch(&window); err != nil {
			return err
		}

		if d.Debugger.Signals.Break() {
			return nil
		}
	}
}

// RunUntil executes until the program counter reaches target or a break is
// requested. Nothing runs if the program counter is already at target.
func (d *Driver) RunUntil(target uint16) error {
	defer d.execMode()()

	var window int

	for !d.Debugger.Signals.Break() && d.Engine.PC() != target {
		if err := d.batch(&window); err != nil {
			return err
		}
	}

	return nil
}

// Step runs n single instructions, calling each after every one that
// completed. It returns the number of completed steps.
func (d *Driver) Step(n int, each func(int)) (int, error) {
	for i := 0; i < n; i++ {
		d.Debugger.Signals.RequestBreak()

		if err := d.Run(); err != nil {
			return i, err
		}

		if each != nil {
			each(i)
		}
	}

	return n, nil
}
