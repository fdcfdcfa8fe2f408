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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/gosim/pkg/debugger"
	"github.com/lassandro/gosim/pkg/machine"
)

type testEngine struct {
	sig *debugger.Signals

	pc       uint16
	executes int
	resets   int

	// stopAfter requests a break once this many instructions ran.
	stopAfter int
	fail      int
}

func (eng *testEngine) Execute() int {
	eng.executes++

	if eng.fail != 0 && eng.executes == eng.fail {
		return -1
	}

	eng.pc += 3

	if eng.stopAfter != 0 && eng.executes%eng.stopAfter == 0 {
		eng.sig.RequestBreak()
	}

	return 2
}

func (eng *testEngine) PC() uint16 { return eng.pc }

func (eng *testEngine) SetPC(addr uint16) { eng.pc = addr }

func (eng *testEngine) DumpRegisters(w io.Writer) {
	fmt.Fprintf(w, "PC=%04X\n", eng.pc)
}

func (eng *testEngine) Disassemble(addr uint16, w io.Writer) uint16 {
	fmt.Fprintf(w, "%04X-   NOP\n", addr)
	return 3
}

func (eng *testEngine) RaiseInterrupt() {}

func (eng *testEngine) Reset() {
	eng.resets++
	eng.pc = 0x0200
}

type testConsole struct {
	*Console
	out *bytes.Buffer
	eng *testEngine
	bus *machine.Bus
}

func newTestConsole(input io.Reader) testConsole {
	sig := debugger.NewSignals()
	eng := &testEngine{sig: sig, pc: 0x0100, stopAfter: 1}
	bus := &machine.Bus{}
	out := &bytes.Buffer{}

	driver := &debugger.Driver{
		Engine:   eng,
		Debugger: &debugger.Debugger{Signals: sig},
		Rate:     50000,
	}

	con := New(out, NewInput(input), driver, bus)
	con.Reboot = eng.Reset

	return testConsole{con, out, eng, bus}
}

func TestConsole_Disassemble(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	assert.False(con.Execute("d 100 110"))

	lines := strings.Split(strings.TrimSpace(con.out.String()), "\n")
	assert.Equal([]string{
		"0100-   NOP",
		"0103-   NOP",
		"0106-   NOP",
		"0109-   NOP",
		"010C-   NOP",
		"010F-   NOP",
	}, lines)
	assert.Equal(uint16(0x0112), con.dbg().Cursor)

	// Without arguments one instruction at the cursor.
	con.out.Reset()
	con.Execute("d")
	assert.Equal("0112-   NOP\n", con.out.String())
	assert.Equal(uint16(0x0115), con.dbg().Cursor)
}

func TestConsole_Memory(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))
	copy(con.bus.RAM[0x10:], []byte{'H', 'i', '!', 0x00, 0x7f, 0x20, '~', 0x1f, 'A'})

	con.Execute("m 10 17")
	assert.Equal("0010: 48 69 21 00 7F 20 7E 1F Hi!.. ~.\n", con.out.String())
	assert.Equal(uint16(0x18), con.dbg().Cursor)

	// Rows continue past end until the row is complete.
	con.out.Reset()
	con.Execute("m 18 19")
	assert.Equal("0018: 41 00 00 00 00 00 00 00 A.......\n", con.out.String())
	assert.Equal(uint16(0x20), con.dbg().Cursor)

	con.out.Reset()
	con.Execute("m")
	assert.Equal(1, strings.Count(con.out.String(), "\n"))
	assert.True(strings.HasPrefix(con.out.String(), "0020: "))
}

func TestConsole_Next(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	con.Execute("n 3")
	assert.Equal(3, con.eng.executes)
	assert.Equal(3, strings.Count(con.out.String(), "Next PC: "))
	assert.NotContains(con.out.String(), "PC=")
	assert.Equal(uint16(0x0109+3), con.dbg().Cursor)

	con.out.Reset()
	con.Execute("n")
	assert.Equal(4, con.eng.executes)
	assert.Equal(1, strings.Count(con.out.String(), "Next PC: "))

	// An engine error ends the steps early.
	con.out.Reset()
	con.eng.fail = 6
	con.Execute("n 5")
	assert.Equal(6, con.eng.executes)
	assert.Equal(1, strings.Count(con.out.String(), "Next PC: "))
	assert.Contains(con.out.String(), "run time error")
}

func TestConsole_Cycles(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))
	con.Driver.Cycles = 100000

	con.Execute("y")
	assert.Equal("Cycle counter: 100000\nEstimated time at 50000 hz : 2 seconds\n", con.out.String())

	con.out.Reset()
	con.Execute("y 7")
	assert.Equal("Syntax Error. Type 'h' to show help.\n", con.out.String())
	assert.Equal(int64(100000), con.Driver.Cycles)

	con.out.Reset()
	con.Execute("y zero")
	assert.Equal("Syntax Error. Type 'h' to show help.\n", con.out.String())

	con.out.Reset()
	con.Execute("y 0")
	assert.Equal("Cycle counter initialized\n", con.out.String())
	assert.Zero(con.Driver.Cycles)

	con.out.Reset()
	con.Driver.Rate = 0
	con.Execute("y")
	assert.Equal("Cycle counter: 0\n", con.out.String())
}

func TestConsole_Go(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))
	con.eng.stopAfter = 4

	con.Execute("g 300")
	assert.Equal(4, con.eng.executes)
	assert.Equal(uint16(0x030C), con.eng.pc)
	assert.Equal(uint16(0x030C), con.dbg().Cursor)
	assert.Empty(con.out.String())
	assert.False(con.dbg().Signals.Active())

	con.Execute("u")
	con.out.Reset()

	con.Execute("g")
	assert.Equal(8, con.eng.executes)
	assert.Equal("PC=0318\nNext PC: 0318-   NOP\n", con.out.String())
}

func TestConsole_Forward(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))
	con.eng.stopAfter = 0

	con.Execute("f 10c")
	assert.Equal(4, con.eng.executes)
	assert.Equal(uint16(0x010C), con.dbg().Cursor)

	// A step leaves a break behind that must not cut the next run short.
	con.Execute("n")
	con.Execute("f 118")
	assert.Equal(7, con.eng.executes)
	assert.Equal(uint16(0x0118), con.eng.pc)

	con.out.Reset()
	con.Execute("f")
	assert.Equal("Syntax Error. Type 'h' to show help.\n", con.out.String())
}

func TestConsole_Registers(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	con.Execute("p 1234")
	assert.Equal(uint16(0x1234), con.eng.pc)

	con.Execute("r")
	assert.Equal("PC=1234\n", con.out.String())

	con.out.Reset()
	con.Execute("p")
	assert.Equal("Syntax Error. Type 'h' to show help.\n", con.out.String())

	con.out.Reset()
	con.Execute("u")
	con.Execute("")
	assert.Equal("Dump registers on\nDump registers off\n", con.out.String())
}

func TestConsole_Watch(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	con.Execute("w")
	assert.Equal("Syntax Error, address expected\n", con.out.String())
	assert.False(con.dbg().Watchpoint.Set)

	con.Execute("w 00ff garbage")
	assert.Equal(debugger.Watchpoint{Addr: 0x00FF, Set: true}, con.dbg().Watchpoint)

	con.out.Reset()
	con.dbg().Write(0x00FF, 0x42)
	assert.Equal("\nWatch 00FF <- 42\n", con.out.String())
}

func TestConsole_History(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	con.Execute("s")
	con.Execute("t")
	assert.Equal("PC history disabled\nPC history disabled\n", con.out.String())

	con.dbg().History = debugger.NewHistory(2)
	con.Execute("n 3")

	con.out.Reset()
	con.Execute("s")
	assert.Equal("0103-   NOP\n0106-   NOP\n", con.out.String())

	con.out.Reset()
	con.Execute("t")
	con.Execute("s")
	assert.Empty(con.out.String())
}

func TestConsole_Clear(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))
	con.bus.RAM[0x0000] = 1
	con.bus.RAM[0xFFFF] = 1

	con.Execute("c")
	assert.Equal("Memory cleared\n", con.out.String())
	assert.Zero(con.bus.RAM[0x0000])
	assert.Zero(con.bus.RAM[0xFFFF])
}

func TestConsole_Upload(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader("S1050100EAEA25\n.\nr\n"))

	con.Execute("a")
	assert.Equal("begin srec upload, '.' to end\n", con.out.String())
	assert.Equal(byte(0xEA), con.bus.RAM[0x0100])
	assert.Equal(byte(0xEA), con.bus.RAM[0x0101])

	// No S9 record, the program counter stays put.
	assert.Equal(uint16(0x0100), con.eng.pc)

	line, err := con.In.ReadLine()
	assert.NoError(err)
	assert.Equal("r", line)
}

func TestConsole_Load(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "image.s19")
	require.NoError(t, os.WriteFile(path, []byte("S1050200EAEA24\nS9030200FA\n"), 0o644))

	con := newTestConsole(strings.NewReader(""))

	con.Execute("l " + path)
	assert.Empty(con.out.String())
	assert.Equal(byte(0xEA), con.bus.RAM[0x0200])
	assert.Equal(uint16(0x0200), con.eng.pc)

	con.Execute("l")
	assert.Equal("Syntax Error. Type 'h' to show help.\n", con.out.String())

	con.out.Reset()
	con.Execute("l " + filepath.Join(t.TempDir(), "missing.s19"))
	assert.NotEmpty(con.out.String())
}

func TestConsole_Misc(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	con.Execute("z")
	assert.Equal("Undefined command. Type 'h' to show help.\n", con.out.String())

	con.out.Reset()
	con.Execute("\x04")
	assert.Equal("quit disabled\n", con.out.String())

	con.out.Reset()
	con.Execute("h")
	assert.Contains(con.out.String(), "HELP")
	assert.NotContains(con.out.String(), "PC history")

	assert.True(con.Execute("q"))

	con.NoQuit = true
	con.out.Reset()
	assert.False(con.Execute("q"))
	assert.Equal("quit disabled\n", con.out.String())
}

func TestConsole_Reboot(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))

	con.Execute("x")
	assert.Equal(1, con.eng.resets)
	assert.Equal(1, con.eng.executes)
	assert.Equal(uint16(0x0203), con.eng.pc)
}

func TestConsole_Run(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader("r\n" + strings.Repeat("z", 100) + "\nq\nr\n"))

	assert.NoError(con.Run())
	assert.Equal(
		"> PC=0100\n> line too long, truncated to 79 characters\n"+
			"Undefined command. Type 'h' to show help.\n> ",
		con.out.String(),
	)
	assert.True(con.dbg().Signals.Active())
}

func TestConsole_RunEOF(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader("r"))
	con.AutoRun = true

	assert.NoError(con.Run())
	assert.Equal(1, con.eng.executes)
	assert.Equal("> PC=0103\n> \n", con.out.String())
}

type rebootReader struct {
	sig  *debugger.Signals
	sent bool
	rest io.Reader
}

func (r *rebootReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		r.sig.RequestReboot()
		return 0, ErrInterrupted
	}

	return r.rest.Read(p)
}

func TestConsole_RunReboot(t *testing.T) {
	assert := assert.New(t)

	reader := &rebootReader{rest: strings.NewReader("q\n")}
	con := newTestConsole(reader)
	reader.sig = con.dbg().Signals

	assert.NoError(con.Run())
	assert.Equal(1, con.eng.resets)
	assert.Equal(1, con.eng.executes)
	assert.False(con.dbg().Signals.RebootPending())
	assert.Equal("> \n> ", con.out.String())
}

type quitReader struct {
	sig *debugger.Signals
}

func (r *quitReader) Read(p []byte) (int, error) {
	r.sig.RequestQuit()
	return 0, ErrInterrupted
}

func TestConsole_RunQuit(t *testing.T) {
	assert := assert.New(t)

	reader := &quitReader{}
	con := newTestConsole(reader)
	reader.sig = con.dbg().Signals
	con.NoQuit = true

	assert.NoError(con.Run())
	assert.Equal("> \n", con.out.String())

	// Nothing runs once a quit is pending.
	con.Execute("g")
	assert.Zero(con.eng.executes)
}

func TestConsole_RunQuitWhileRunning(t *testing.T) {
	assert := assert.New(t)

	con := newTestConsole(strings.NewReader(""))
	con.eng.stopAfter = 0
	con.AutoRun = true
	con.NoQuit = true

	con.Driver.Poll = func() {
		if con.eng.executes == 3 {
			con.dbg().Signals.RequestQuit()
		}
	}

	assert.NoError(con.Run())
	assert.Equal(3, con.eng.executes)
	assert.Equal("\n", con.out.String())
}
