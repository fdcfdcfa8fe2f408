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
	"fmt"
	"strings"

	"github.com/lassandro/gosim/pkg/encoding"
	"github.com/lassandro/gosim/pkg/machine"
	"github.com/lassandro/gosim/pkg/srec"
)

const ROW_SIZE = 8

// span reads an optional [start [end]] pair. A missing start is the
// cursor and a missing end equals start.
func (con *Console) span(args *encoding.Scanner) (start, end uint16) {
	if !args.More() {
		return con.dbg().Cursor, con.dbg().Cursor
	}

	start = args.Hex()
	end = start

	if args.More() {
		end = args.Hex()
	}

	return
}

// report shows where the machine stopped and moves the cursor there.
func (con *Console) report() {
	eng := con.engine()

	if con.dbg().ShowRegisters {
		eng.DumpRegisters(con.Out)
		fmt.Fprint(con.Out, "Next PC: ")
		eng.Disassemble(eng.PC(), con.Out)
	}

	con.dbg().Cursor = eng.PC()
}

func (con *Console) cmdUpload() {
	con.println(f("begin srec upload, '.' to end"))

	img, err := srec.Load(&uploadReader{in: con.In}, con.Memory)
	con.loaded(img, err)
}

// loaded reports a load error or starts the program counter at the
// image's entry address when it has one.
func (con *Console) loaded(img srec.Image, err error) {
	if err != nil {
		con.println(err)
		return
	}

	if img.HasEntry {
		con.engine().SetPC(img.Entry)
	}
}

func (con *Console) cmdClear() {
	for addr := 0; addr < machine.MEMORY_SIZE; addr++ {
		con.Memory.SetByte(uint16(addr), 0)
	}

	con.println(f("Memory cleared"))
}

func (con *Console) cmdDisassemble(args *encoding.Scanner) {
	start, end := con.span(args)

	addr := int(start)
	for addr <= int(end) && addr < machine.MEMORY_SIZE {
		size := con.engine().Disassemble(uint16(addr), con.Out)
		if size == 0 {
			size = 1
		}

		addr += int(size)
	}

	con.dbg().Cursor = uint16(addr)
}

func (con *Console) cmdForward(args *encoding.Scanner) {
	if !args.More() {
		con.syntaxError()
		return
	}

	target := args.Hex()

	con.run(func() error { return con.Driver.RunUntil(target) })
	con.report()
}

func (con *Console) cmdGo(args *encoding.Scanner) {
	if args.More() {
		con.engine().SetPC(args.Hex())
	}

	con.run(con.Driver.Run)
	con.report()
}

func (con *Console) cmdHelp() {
	var b strings.Builder

	b.WriteString("     HELP for the gosim debugger\n\n")
	b.WriteString("   a               : upload s-records\n")
	b.WriteString("   c               : clear memory\n")
	b.WriteString("   d [start] [end] : disassemble memory from <start> to <end>\n")
	b.WriteString("   f adr           : step forward until PC = <adr>\n")
	b.WriteString("   g [adr]         : start execution at current address or <adr>\n")
	b.WriteString("   h, ?            : show this help page\n")
	b.WriteString("   l file          : load s-records from <file>\n")
	b.WriteString("   m [start] [end] : dump memory from <start> to <end>\n")
	b.WriteString("   n [n]           : next [n] instruction(s)\n")
	b.WriteString("   p adr           : set PC to <adr>\n")
	b.WriteString("   q               : quit the emulator\n")
	b.WriteString("   r               : dump CPU registers\n")

	if con.dbg().History != nil {
		b.WriteString("   s               : show PC history\n")
		b.WriteString("   t               : flush PC history\n")
	}

	b.WriteString("   u               : toggle dump registers\n")
	b.WriteString("   w adr           : set watch point address\n")
	b.WriteString("   x               : reboot machine\n")
	b.WriteString("   y [0]           : show number of cycles [or set it to 0]\n")

	fmt.Fprint(con.Out, b.String())
}

func (con *Console) cmdLoad(args *encoding.Scanner) {
	if !args.More() {
		con.syntaxError()
		return
	}

	img, err := srec.LoadFile(args.Str(), con.Memory)
	con.loaded(img, err)
}

func (con *Console) cmdMemory(args *encoding.Scanner) {
	start, end := con.span(args)

	addr := int(start)
	for addr <= int(end) {
		fmt.Fprintf(con.Out, "%04X: ", addr)

		for i := 0; i < ROW_SIZE; i++ {
			fmt.Fprintf(con.Out, "%02X ", con.Memory.GetByte(uint16(addr+i)))
		}

		ascii := make([]byte, ROW_SIZE)
		for i := range ascii {
			value := con.Memory.GetByte(uint16(addr + i))
			if value >= 0x20 && value <= 0x7e {
				ascii[i] = value
			} else {
				ascii[i] = '.'
			}
		}

		fmt.Fprintf(con.Out, "%s\n", ascii)
		addr += ROW_SIZE
	}

	con.dbg().Cursor = uint16(addr)
}

func (con *Console) cmdNext(args *encoding.Scanner) {
	count := 1
	if args.More() {
		count, _ = args.Int()
	}

	eng := con.engine()

	_, err := con.Driver.Step(count, func(int) {
		fmt.Fprint(con.Out, "Next PC: ")
		pc := eng.PC()
		con.dbg().Cursor = pc + eng.Disassemble(pc, con.Out)

		if con.dbg().ShowRegisters {
			eng.DumpRegisters(con.Out)
		}
	})

	if err != nil {
		con.println(err)
	}
}

func (con *Console) cmdSetPC(args *encoding.Scanner) {
	if !args.More() {
		con.syntaxError()
		return
	}

	con.engine().SetPC(args.Hex())
}

func (con *Console) cmdShowHistory() {
	history := con.dbg().History
	if history == nil {
		con.println(f("PC history disabled"))
		return
	}

	for _, pc := range history.Entries() {
		con.engine().Disassemble(pc, con.Out)
	}
}

func (con *Console) cmdClearHistory() {
	history := con.dbg().History
	if history == nil {
		con.println(f("PC history disabled"))
		return
	}

	history.Reset()
}

func (con *Console) cmdToggleRegisters() {
	dbg := con.dbg()
	dbg.ShowRegisters = !dbg.ShowRegisters

	if dbg.ShowRegisters {
		con.println(f("Dump registers on"))
	} else {
		con.println(f("Dump registers off"))
	}
}

func (con *Console) cmdWatch(args *encoding.Scanner) {
	if !args.More() {
		con.println(f("Syntax Error, address expected"))
		return
	}

	con.dbg().SetWatch(args.Hex())
}

func (con *Console) cmdCycles(args *encoding.Scanner) {
	if args.More() {
		if value, ok := args.Int(); ok && value == 0 {
			con.Driver.ResetCycles()
			con.println(f("Cycle counter initialized"))
		} else {
			con.syntaxError()
		}
		return
	}

	fmt.Fprintf(con.Out, "Cycle counter: %d\n", con.Driver.Cycles)

	if rate := con.Driver.Rate; rate > 0 {
		seconds := float64(con.Driver.Cycles) / float64(rate)
		fmt.Fprintf(con.Out, "Estimated time at %d hz : %g seconds\n", rate, seconds)
	}
}
