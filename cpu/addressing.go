// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode describes a memory addressing mode.
type Mode byte

// All supported memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
)

var modeNames = [...]string{
	IMM: "IMM",
	IMP: "IMP",
	REL: "REL",
	ZPG: "ZPG",
	ZPX: "ZPX",
	ZPY: "ZPY",
	ABS: "ABS",
	ABX: "ABX",
	ABY: "ABY",
	IND: "IND",
	IDX: "IDX",
	IDY: "IDY",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "???"
}

// operandLength returns the number of operand bytes following an opcode
// that uses the addressing mode.
func (m Mode) operandLength() byte {
	switch m {
	case IMP:
		return 0
	case IMM, REL, ZPG, ZPX, ZPY, IDX, IDY:
		return 1
	default:
		return 2
	}
}

// resolve consumes the operand of the current instruction and returns the
// effective address it selects, whether indexing crossed a page, and the
// cycles spent. Immediate operands resolve to the address of the operand
// byte itself.
func (cpu *CPU) resolve(mode Mode) (addr uint16, crossed bool, cycles int) {
	switch mode {
	case IMM:
		addr = cpu.Reg.PC
		cpu.Reg.PC++
		return addr, false, 0

	case ZPG:
		zp, n := cpu.fetchByte()
		return uint16(zp), false, n

	case ZPX:
		zp, n := cpu.fetchByte()
		return offsetZeroPage(zp, cpu.Reg.X), false, n + 1

	case ZPY:
		zp, n := cpu.fetchByte()
		return offsetZeroPage(zp, cpu.Reg.Y), false, n + 1

	case ABS:
		addr, n := cpu.fetchWord()
		return addr, false, n

	case ABX:
		base, n := cpu.fetchWord()
		addr, crossed = offsetAddress(base, cpu.Reg.X)
		return addr, crossed, n

	case ABY:
		base, n := cpu.fetchWord()
		addr, crossed = offsetAddress(base, cpu.Reg.Y)
		return addr, crossed, n

	case IND:
		ptr, n0 := cpu.fetchWord()
		addr, n1 := cpu.readWord(ptr)
		return addr, false, n0 + n1

	case IDX:
		zp, n0 := cpu.fetchByte()
		addr, n1 := cpu.readWord(offsetZeroPage(zp, cpu.Reg.X))
		return addr, false, n0 + 1 + n1

	case IDY:
		zp, n0 := cpu.fetchByte()
		base, n1 := cpu.readWord(uint16(zp))
		addr, crossed = offsetAddress(base, cpu.Reg.Y)
		return addr, crossed, n0 + n1

	default:
		panic("Invalid addressing mode")
	}
}

// Load a byte value using the requested addressing mode. Indexed modes
// cost an extra cycle when the index carries into the high byte.
func (cpu *CPU) load(mode Mode) (byte, int) {
	if mode == IMM {
		return cpu.fetchByte()
	}

	addr, crossed, n := cpu.resolve(mode)
	if crossed {
		n++
	}
	v, nr := cpu.readByte(addr)
	return v, n + nr
}

// Store a byte value using the requested addressing mode. Stores through
// ABX, ABY and IDY always pay the indexing cycle, crossed or not.
func (cpu *CPU) store(mode Mode, v byte) int {
	addr, _, n := cpu.resolve(mode)
	switch mode {
	case ABX, ABY, IDY:
		n++
	}
	return n + cpu.writeByte(addr, v)
}
