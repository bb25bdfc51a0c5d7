// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a subset of the 6502 CPU instruction set and a
// cycle-counting emulator for it.
//
// Every memory access costs one cycle. Instructions add their own internal
// cycles on top of the accesses they make, and Execute runs instructions
// until a caller-supplied cycle budget is used up.
package cpu

import "sync/atomic"

// CPU represents a single 6502 CPU. It contains a pointer to the
// memory associated with the CPU.
type CPU struct {
	Reg           Registers       // CPU registers
	Mem           Memory          // assigned memory
	Cycles        uint64          // total executed CPU cycles since reset
	LastPC        uint16          // Previous program counter
	InstSet       *InstructionSet // Instruction set used by the CPU
	debugger      *Debugger
	opcodeHandler OpcodeHandler
	storeByte     func(cpu *CPU, addr uint16, v byte)
	stop          atomic.Bool
}

// NewCPU creates an emulated 6502 CPU bound to the specified memory.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:           m,
		InstSet:       GetInstructionSet(),
		opcodeHandler: logHandler{},
		storeByte:     (*CPU).storeByteNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// Reset puts the registers in their power-up state and clears memory.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Mem.Clear()
	cpu.Cycles = 0
	cpu.LastPC = 0
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Mem.LoadByte(addr)
	return cpu.InstSet.Lookup(opcode)
}

// Execute runs instructions until 'budget' cycles have been spent and
// returns the number of cycles actually used. The last instruction always
// runs to completion, so the result may exceed the budget. A call to Stop
// made while Execute runs ends it after the current instruction.
func (cpu *CPU) Execute(budget int) int {
	cpu.stop.Store(false)
	remaining := budget
	for remaining > 0 && !cpu.stop.Load() {
		remaining -= cpu.Step()
	}
	return budget - remaining
}

// Stop asks a running Execute to return once the current instruction
// completes. It may be called from a breakpoint handler or from another
// goroutine. A Stop made while Execute is not running has no effect.
func (cpu *CPU) Stop() {
	cpu.stop.Store(true)
}

// Step the cpu by one instruction and return the cycles it used.
func (cpu *CPU) Step() int {
	cpu.LastPC = cpu.Reg.PC

	// Grab the next opcode at the current PC
	opcode, n := cpu.fetchByte()

	// Look up the instruction data for the opcode
	inst := cpu.InstSet.Lookup(opcode)

	if inst.fn == nil {
		cpu.opcodeHandler.OnUnknownOpcode(cpu, &OpcodeError{Addr: cpu.LastPC, Opcode: opcode})
	} else {
		n += inst.fn(cpu, inst)
	}

	cpu.Cycles += uint64(n)

	// Update the debugger so it handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
	return n
}

// AttachOpcodeHandler installs a handler that is notified of unknown
// opcodes. Passing nil restores the default handler, which logs them.
func (cpu *CPU) AttachOpcodeHandler(handler OpcodeHandler) {
	if handler == nil {
		handler = logHandler{}
	}
	cpu.opcodeHandler = handler
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// Store the byte value 'v' at the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Mem.StoreByte(addr, v)
}

// Store the byte value 'v' at the address 'addr', notifying the debugger
// first.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Mem.StoreByte(addr, v)
}

// Execute a branch using the instruction operand. A taken branch costs one
// cycle, and two more if the target lies on another page.
func (cpu *CPU) branch(taken bool) int {
	offset, n := cpu.fetchByte()
	if !taken {
		return n
	}

	oldPC := cpu.Reg.PC
	cpu.Reg.PC += uint16(int8(offset))
	n++
	if ((cpu.Reg.PC ^ oldPC) & 0xff00) != 0 {
		n += 2
	}
	return n
}

// Logical AND
func (cpu *CPU) and(inst *Instruction) int {
	v, n := cpu.load(inst.Mode)
	cpu.Reg.A &= v
	cpu.Reg.updateNZ(cpu.Reg.A)
	return n
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction) int {
	return cpu.branch(cpu.Reg.Zero)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction) int {
	cpu.Reg.X--
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 1
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction) int {
	cpu.Reg.Y--
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 1
}

// Exclusive OR
func (cpu *CPU) eor(inst *Instruction) int {
	v, n := cpu.load(inst.Mode)
	cpu.Reg.A ^= v
	cpu.Reg.updateNZ(cpu.Reg.A)
	return n
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction) int {
	cpu.Reg.X++
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 1
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction) int {
	cpu.Reg.Y++
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 1
}

// Jump to memory address
func (cpu *CPU) jmp(inst *Instruction) int {
	addr, _, n := cpu.resolve(inst.Mode)
	cpu.Reg.PC = addr
	return n
}

// Jump to subroutine
func (cpu *CPU) jsr(inst *Instruction) int {
	addr, n := cpu.fetchWord()
	n += cpu.pushPC()
	cpu.Reg.PC = addr
	return n + 1
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction) int {
	v, n := cpu.load(inst.Mode)
	cpu.Reg.A = v
	cpu.Reg.updateNZ(v)
	return n
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction) int {
	v, n := cpu.load(inst.Mode)
	cpu.Reg.X = v
	cpu.Reg.updateNZ(v)
	return n
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction) int {
	v, n := cpu.load(inst.Mode)
	cpu.Reg.Y = v
	cpu.Reg.updateNZ(v)
	return n
}

// Logical OR
func (cpu *CPU) ora(inst *Instruction) int {
	v, n := cpu.load(inst.Mode)
	cpu.Reg.A |= v
	cpu.Reg.updateNZ(cpu.Reg.A)
	return n
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction) int {
	return cpu.push(cpu.Reg.A)
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction) int {
	return cpu.push(cpu.Reg.SavePS())
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction) int {
	v, n := cpu.pop()
	cpu.Reg.A = v
	cpu.Reg.updateNZ(v)
	return n + 1
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction) int {
	v, n := cpu.pop()
	cpu.Reg.RestorePS(v)
	return n + 1
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction) int {
	addr, n := cpu.popAddress()
	cpu.Reg.PC = addr + 1
	return n + 2
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction) int {
	return cpu.store(inst.Mode, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction) int {
	return cpu.store(inst.Mode, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction) int {
	return cpu.store(inst.Mode, cpu.Reg.Y)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction) int {
	cpu.Reg.X = cpu.Reg.A
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 1
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction) int {
	cpu.Reg.Y = cpu.Reg.A
	cpu.Reg.updateNZ(cpu.Reg.Y)
	return 1
}

// Transfer Stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction) int {
	cpu.Reg.X = cpu.Reg.SP
	cpu.Reg.updateNZ(cpu.Reg.X)
	return 1
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction) int {
	cpu.Reg.A = cpu.Reg.X
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 1
}

// Transfer X register to the Stack pointer
func (cpu *CPU) txs(inst *Instruction) int {
	cpu.Reg.SP = cpu.Reg.X
	return 1
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction) int {
	cpu.Reg.A = cpu.Reg.Y
	cpu.Reg.updateNZ(cpu.Reg.A)
	return 1
}
