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

package machine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testDevice struct {
	regs   [2]byte
	reads  []uint16
	writes []uint16
}

func (dev *testDevice) Read(reg uint16) byte {
	dev.reads = append(dev.reads, reg)
	return dev.regs[reg]
}

func (dev *testDevice) Write(reg uint16, value byte) {
	dev.writes = append(dev.writes, reg)
	dev.regs[reg] = value
}

type testWatch struct {
	addrs  []uint16
	values []byte
}

func (w *testWatch) Write(addr uint16, value byte) {
	w.addrs = append(w.addrs, addr)
	w.values = append(w.values, value)
}

func TestBus_Devices(t *testing.T) {
	assert := assert.New(t)

	var bus Bus
	dev := &testDevice{regs: [2]byte{0x81, 0x42}}
	bus.Map(ACIA_BASE, ACIA_SIZE, dev)

	assert.Equal(byte(0x81), bus.LoadByte(ACIA_BASE))
	assert.Equal(byte(0x42), bus.LoadByte(ACIA_BASE+1))
	assert.Equal([]uint16{0, 1}, dev.reads)

	bus.StoreByte(ACIA_BASE+1, 'x')
	assert.Equal([]uint16{1}, dev.writes)
	assert.Equal(byte(0), bus.RAM[ACIA_BASE+1])

	// The console view never reaches the device.
	bus.SetByte(ACIA_BASE, 0x55)
	assert.Equal(byte(0x55), bus.GetByte(ACIA_BASE))
	assert.Len(dev.reads, 2)
	assert.Len(dev.writes, 1)

	// Outside the window is plain RAM.
	bus.StoreByte(ACIA_BASE+2, 0x99)
	assert.Equal(byte(0x99), bus.GetByte(ACIA_BASE+2))
}

func TestBus_Addresses(t *testing.T) {
	assert := assert.New(t)

	var bus Bus
	bus.StoreAddress(VECTOR_RESET, 0x1234)
	assert.Equal(byte(0x34), bus.GetByte(VECTOR_RESET))
	assert.Equal(byte(0x12), bus.GetByte(VECTOR_RESET+1))
	assert.Equal(uint16(0x1234), bus.LoadAddress(VECTOR_RESET))

	bus.StoreBytes(0x10, []byte{1, 2, 3})
	b := make([]byte, 3)
	bus.LoadBytes(0x10, b)
	assert.Equal([]byte{1, 2, 3}, b)
}

func TestBus_Debugger(t *testing.T) {
	assert := assert.New(t)

	var bus Bus
	watch := &testWatch{}
	bus.Debugger = watch

	bus.StoreByte(0x1000, 7)
	bus.SetByte(0x1001, 8)

	assert.Equal([]uint16{0x1000}, watch.addrs)
	assert.Equal([]byte{7}, watch.values)
}

func newTestMachine(program ...byte) *Machine {
	bus := &Bus{}
	bus.StoreAddress(VECTOR_RESET, 0x0200)
	bus.StoreAddress(VECTOR_IRQ, 0x0300)
	bus.StoreBytes(0x0200, program)
	bus.StoreBytes(0x0300, []byte{0xea, 0xea})

	mc := NewMachine(bus)
	mc.Reset()
	return mc
}

func TestMachine_Execute(t *testing.T) {
	assert := assert.New(t)

	mc := newTestMachine(0xea, 0xea)
	assert.Equal(uint16(0x0200), mc.PC())

	assert.Equal(2, mc.Execute())
	assert.Equal(uint16(0x0201), mc.PC())

	mc.SetPC(0x0300)
	assert.Equal(uint16(0x0300), mc.PC())
}

func TestMachine_Interrupt(t *testing.T) {
	assert := assert.New(t)

	// CLI; NOP; NOP
	mc := newTestMachine(0x58, 0xea, 0xea)

	// Masked after reset.
	mc.RaiseInterrupt()
	assert.Equal(2, mc.Execute())
	assert.Equal(uint16(0x0201), mc.PC())

	assert.Equal(IRQ_CYCLES+2, mc.Execute())
	assert.Equal(uint16(0x0301), mc.PC())

	// Return address and status on the stack.
	assert.Equal(byte(0x02), mc.Bus.GetByte(0x01FD))
	assert.Equal(byte(0x01), mc.Bus.GetByte(0x01FC))
	ps := mc.Bus.GetByte(0x01FB)
	assert.Equal(FLAG_RESERVED, ps&FLAG_RESERVED)
	assert.Equal(byte(0), ps&FLAG_INTERRUPT)
	assert.Equal(byte(0), ps&FLAG_BREAK)

	// Serviced once.
	assert.Equal(2, mc.Execute())
	assert.Equal(uint16(0x0302), mc.PC())
}

func TestMachine_Disassemble(t *testing.T) {
	assert := assert.New(t)

	mc := newTestMachine(0xea)

	var out bytes.Buffer
	size := mc.Disassemble(0x0200, &out)
	assert.Equal(uint16(1), size)
	assert.Contains(out.String(), "0200-")
	assert.Contains(out.String(), "NOP")

	out.Reset()
	mc.DumpRegisters(&out)
	assert.Contains(out.String(), "C=")
}
