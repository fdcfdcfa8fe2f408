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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lassandro/gosim/pkg/acia"
	"github.com/lassandro/gosim/pkg/console"
	"github.com/lassandro/gosim/pkg/debugger"
	"github.com/lassandro/gosim/pkg/machine"
	"github.com/lassandro/gosim/pkg/script"
	"github.com/lassandro/gosim/pkg/srec"
	"github.com/lassandro/gosim/pkg/tty"
)

var helpvar bool
var consolevar bool
var noquitvar bool
var throttlevar int
var historyvar int
var serialvar string
var baudvar uint
var scriptvar string

const usage = "gosim [-n] [-t N] [-q] [-h] [-p N] [-s device [-b baud]] [-x script] [file ...]"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "h", false, "print this help")
	flag.BoolVar(&consolevar, "n", false, "start machine in debugging console")
	flag.BoolVar(&noquitvar, "q", false, "don't allow quitting (must be killed)")
	flag.IntVar(&throttlevar, "t", 50000, "throttle to `N` cycles per second, 0 = max")
	flag.IntVar(&historyvar, "p", 0, "keep a history of the last `N` program counters")
	flag.StringVar(&serialvar, "s", "", "connect the ACIA to serial `device` instead of the terminal")
	flag.UintVar(&baudvar, "b", 9600, "serial line `baud` rate")
	flag.StringVar(&scriptvar, "x", "", "run console commands from a .lua or .star `script`")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
}

func gosim() int {
	flag.CommandLine.Parse(normalizeArgs(os.Args[1:]))

	if helpvar {
		flag.Usage()
		return 1
	}

	term := tty.Open(os.Stdin)
	defer term.Restore()

	if noquitvar {
		if !term.Enabled() {
			log.Println("-q: standard input is not a terminal")
		}
		term.DisableEOF()
	}

	fmt.Printf("gosim - 65C02 simulator\n\n")

	bus := &machine.Bus{}
	mc := machine.NewMachine(bus)

	var port acia.Port
	var mode acia.TermMode

	if serialvar != "" {
		stream, err := acia.OpenSerial(serialvar, baudvar)
		if err != nil {
			log.Println(err)
			return 1
		}

		defer stream.Close()
		port = stream
	} else {
		port = acia.NewFilePort(os.Stdin, os.Stdout)
		mode = term
	}

	dev := acia.New(port, mode, mc)
	defer dev.Flush()

	bus.Map(machine.ACIA_BASE, machine.ACIA_SIZE, dev)

	signals := debugger.NewSignals()
	signals.Notify()
	defer signals.Stop()

	dbg := &debugger.Debugger{
		Signals: signals,
		History: debugger.NewHistory(historyvar),
	}
	bus.Debugger = dbg

	pacer := debugger.NewPacer(time.Second)
	defer pacer.Stop()

	driver := &debugger.Driver{
		Engine:   mc,
		Debugger: dbg,
		Term:     term,
		Pacer:    pacer,
		Rate:     throttlevar,
		Poll:     dev.Poll,
	}

	args := flag.Args()

	var entry srec.Image
	for _, filename := range args {
		img, err := srec.LoadFile(filename, bus)
		if err != nil {
			log.Println(err)
			return 1
		}

		if img.HasEntry {
			entry = img
		}
	}

	dev.Reset()
	mc.Reset()

	if entry.HasEntry {
		mc.SetPC(entry.Entry)
	}

	input := console.NewInput(&console.FdReader{
		Fd:          int(os.Stdin.Fd()),
		Interrupted: signals.Interrupted,
	})

	con := console.New(os.Stdout, input, driver, bus)
	con.NoQuit = noquitvar
	con.AutoRun = len(args) > 0 && !consolevar
	con.Reboot = func() {
		dev.Reset()
		mc.Reset()
	}

	if scriptvar != "" {
		if err := script.RunFile(scriptvar, con); err != nil {
			log.Println(err)
		}
	}

	if err := con.Run(); err != nil {
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(gosim())
}
