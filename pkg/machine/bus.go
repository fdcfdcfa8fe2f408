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

// Map places dev at base..base+size-1. Later windows shadow earlier ones.
func (bus *Bus) Map(base, size uint16, dev Device) {
	bus.windows = append([]window{{base, size, dev}}, bus.windows...)
}

func (bus *Bus) device(addr uint16) (Device, uint16, bool) {
	for _, w := range bus.windows {
		if addr >= w.base && addr-w.base < w.size {
			return w.dev, addr - w.base, true
		}
	}

	return nil, 0, false
}

func (bus *Bus) GetByte(addr uint16) byte {
	return bus.RAM[addr]
}

func (bus *Bus) SetByte(addr uint16, value byte) {
	bus.RAM[addr] = value
}

func (bus *Bus) read(addr uint16) byte {
	if dev, reg, ok := bus.device(addr); ok {
		return dev.Read(reg)
	}

	return bus.RAM[addr]
}

func (bus *Bus) write(addr uint16, value byte) {
	if dev, reg, ok := bus.device(addr); ok {
		dev.Write(reg, value)
	} else {
		bus.RAM[addr] = value
	}

	if bus.Debugger != nil {
		bus.Debugger.Write(addr, value)
	}
}

// The methods below are the CPU's view, with device registers live.

func (bus *Bus) LoadByte(addr uint16) byte {
	return bus.read(addr)
}

func (bus *Bus) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = bus.read(addr + uint16(i))
	}
}

func (bus *Bus) LoadAddress(addr uint16) uint16 {
	return uint16(bus.read(addr)) | uint16(bus.read(addr+1))<<8
}

func (bus *Bus) StoreByte(addr uint16, value byte) {
	bus.write(addr, value)
}

func (bus *Bus) StoreBytes(addr uint16, b []byte) {
	for i, value := range b {
		bus.write(addr+uint16(i), value)
	}
}

func (bus *Bus) StoreAddress(addr uint16, value uint16) {
	bus.write(addr, byte(value))
	bus.write(addr+1, byte(value>>8))
}

// rawMemory presents RAM to the disassembler without touching devices.
type rawMemory struct {
	bus *Bus
}

func (m rawMemory) LoadByte(addr uint16) byte {
	return m.bus.RAM[addr]
}

func (m rawMemory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.bus.RAM[addr+uint16(i)]
	}
}

func (m rawMemory) LoadAddress(addr uint16) uint16 {
	return uint16(m.bus.RAM[addr]) | uint16(m.bus.RAM[addr+1])<<8
}

func (m rawMemory) StoreByte(addr uint16, value byte) {
	m.bus.RAM[addr] = value
}

func (m rawMemory) StoreBytes(addr uint16, b []byte) {
	for i, value := range b {
		m.bus.RAM[addr+uint16(i)] = value
	}
}

func (m rawMemory) StoreAddress(addr uint16, value uint16) {
	m.bus.RAM[addr] = byte(value)
	m.bus.RAM[addr+1] = byte(value >> 8)
}
