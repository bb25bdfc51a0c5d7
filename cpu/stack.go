// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Push a value 'v' onto the stack.
func (cpu *CPU) push(v byte) int {
	n := cpu.writeByte(stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
	return n + 1
}

// Pop a value from the stack and return it.
func (cpu *CPU) pop() (byte, int) {
	cpu.Reg.SP++
	v, n := cpu.readByte(stackAddress(cpu.Reg.SP))
	return v, n + 1
}

// Push the return address for a subroutine call, PC-1, high byte first.
func (cpu *CPU) pushPC() int {
	addr := cpu.Reg.PC - 1
	n := cpu.writeByte(stackAddress(cpu.Reg.SP), byte(addr>>8))
	n += cpu.writeByte(stackAddress(cpu.Reg.SP-1), byte(addr))
	cpu.Reg.SP -= 2
	return n
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() (uint16, int) {
	lo, n0 := cpu.readByte(stackAddress(cpu.Reg.SP + 1))
	hi, n1 := cpu.readByte(stackAddress(cpu.Reg.SP + 2))
	cpu.Reg.SP += 2
	return uint16(lo) | uint16(hi)<<8, n0 + n1 + 1
}
