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
	"fmt"
	"io"
	"strings"

	"github.com/beevik/go6502/cpu"
	"github.com/beevik/go6502/disasm"
)

// Machine binds a 65C02 core to a Bus and implements Engine.
type Machine struct {
	Bus *Bus

	cpu *cpu.CPU
	irq bool
}

var _ Engine = (*Machine)(nil)

func NewMachine(bus *Bus) *Machine {
	return &Machine{
		Bus: bus,
		cpu: cpu.NewCPU(cpu.CMOS, bus),
	}
}

// Reset loads the program counter from the reset vector. Memory and
// devices are left alone.
func (mc *Machine) Reset() {
	mc.irq = false
	mc.cpu.Reg.SP = 0xFD
	mc.cpu.Reg.InterruptDisable = true
	mc.cpu.Reg.Decimal = false
	mc.cpu.SetPC(mc.Bus.LoadAddress(VECTOR_RESET))
}

func (mc *Machine) PC() uint16 {
	return mc.cpu.Reg.PC
}

func (mc *Machine) SetPC(addr uint16) {
	mc.cpu.SetPC(addr)
}

// RaiseInterrupt latches the IRQ line. It is serviced before the next
// instruction once interrupts are unmasked.
func (mc *Machine) RaiseInterrupt() {
	mc.irq = true
}

func (mc *Machine) push(value byte) {
	mc.Bus.StoreByte(STACK_PAGE|uint16(mc.cpu.Reg.SP), value)
	mc.cpu.Reg.SP--
}

func (mc *Machine) status() (ps byte) {
	reg := &mc.cpu.Reg

	ps = FLAG_RESERVED

	if reg.Carry {
		ps |= FLAG_CARRY
	}
	if reg.Zero {
		ps |= FLAG_ZERO
	}
	if reg.InterruptDisable {
		ps |= FLAG_INTERRUPT
	}
	if reg.Decimal {
		ps |= FLAG_DECIMAL
	}
	if reg.Overflow {
		ps |= FLAG_OVERFLOW
	}
	if reg.Sign {
		ps |= FLAG_SIGN
	}

	return
}

func (mc *Machine) raiseException(vector uint16) {
	pc := mc.cpu.Reg.PC

	mc.push(byte(pc >> 8))
	mc.push(byte(pc))
	mc.push(mc.status())

	mc.cpu.Reg.InterruptDisable = true
	mc.cpu.Reg.Decimal = false
	mc.cpu.SetPC(mc.Bus.LoadAddress(vector))
}

func (mc *Machine) Execute() int {
	cycles := 0

	if mc.irq && !mc.cpu.Reg.InterruptDisable {
		mc.irq = false
		mc.raiseException(VECTOR_IRQ)
		cycles += IRQ_CYCLES
	}

	before := mc.cpu.Cycles
	mc.cpu.Step()

	n := int(mc.cpu.Cycles - before)
	if n <= 0 {
		return ERR_NO_PROGRESS
	}

	return cycles + n
}

func (mc *Machine) DumpRegisters(w io.Writer) {
	fmt.Fprintf(w, "%s C=%d\n", disasm.GetRegisterString(&mc.cpu.Reg), mc.cpu.Cycles)
}

func (mc *Machine) Disassemble(addr uint16, w io.Writer) uint16 {
	mem := rawMemory{mc.Bus}

	line, next := disasm.Disassemble(mem, addr)
	size := next - addr

	code := make([]byte, size)
	mem.LoadBytes(addr, code)

	hex := make([]string, len(code))
	for i, b := range code {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	fmt.Fprintf(w, "%04X-   %-8s    %s\n", addr, strings.Join(hex, " "), line)

	return size
}
