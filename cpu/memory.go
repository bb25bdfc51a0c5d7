// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'.
	LoadBytes(addr uint16, b []byte)

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)

	// Clear sets every byte of memory to zero.
	Clear()
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and returns them. Bytes
// past the end of the address space are returned as zero.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	n := copy(b, m.b[addr:])
	clear(b[n:])
}

// StoreByte stores a byte at the requested address.
func (m *FlatMemory) StoreByte(addr uint16, v byte) {
	m.b[addr] = v
}

// StoreBytes stores multiple bytes to the requested address. Bytes that
// would fall past the end of the address space are dropped.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// Clear zeroes the entire address space.
func (m *FlatMemory) Clear() {
	clear(m.b[:])
}

// Return the offset address 'addr' + 'offset'. If the offset
// crossed a page boundary, return 'pageCrossed' as true.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = ((newAddr & 0xff00) != (addr & 0xff00))
	return newAddr, pageCrossed
}

// Offset a zero-page address 'addr' by 'offset'. If the address
// exceeds the zero-page address space, wrap it.
func offsetZeroPage(addr byte, offset byte) uint16 {
	return uint16(addr + offset)
}

// Given a 1-byte stack pointer register, return the stack
// corresponding memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) | uint16(offset)
}

// readByte loads the byte at 'addr'. It costs one cycle.
func (cpu *CPU) readByte(addr uint16) (byte, int) {
	return cpu.Mem.LoadByte(addr), 1
}

// writeByte stores 'v' at 'addr'. It costs one cycle.
func (cpu *CPU) writeByte(addr uint16, v byte) int {
	cpu.storeByte(cpu, addr, v)
	return 1
}

// readWord loads a little-endian 16-bit value from 'addr' and 'addr'+1.
func (cpu *CPU) readWord(addr uint16) (uint16, int) {
	lo, n0 := cpu.readByte(addr)
	hi, n1 := cpu.readByte(addr + 1)
	return uint16(lo) | uint16(hi)<<8, n0 + n1
}

// writeWord stores 'v' little-endian at 'addr' and 'addr'+1.
func (cpu *CPU) writeWord(addr uint16, v uint16) int {
	n := cpu.writeByte(addr, byte(v))
	n += cpu.writeByte(addr+1, byte(v>>8))
	return n
}

// fetchByte reads the byte at the program counter and advances it.
func (cpu *CPU) fetchByte() (byte, int) {
	v, n := cpu.readByte(cpu.Reg.PC)
	cpu.Reg.PC++
	return v, n
}

// fetchWord reads the word at the program counter and advances it by two.
func (cpu *CPU) fetchWord() (uint16, int) {
	v, n := cpu.readWord(cpu.Reg.PC)
	cpu.Reg.PC += 2
	return v, n
}
