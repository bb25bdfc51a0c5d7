// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"sort"
	"strings"
)

// An opsym is an internal symbol used to associate an opcode's data
// with its instructions.
type opsym byte

const (
	symAND opsym = iota
	symBEQ
	symDEX
	symDEY
	symEOR
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symORA
	symPHA
	symPHP
	symPLA
	symPLP
	symRTS
	symSTA
	symSTX
	symSTY
	symTAX
	symTAY
	symTSX
	symTXA
	symTXS
	symTYA
)

// An instfunc executes an instruction whose opcode has already been
// fetched. It returns the cycles spent beyond the opcode fetch.
type instfunc func(c *CPU, inst *Instruction) int

// Emulator implementation for each opcode
type opcodeImpl struct {
	sym  opsym
	name string
	fn   instfunc
}

var impl = []opcodeImpl{
	{symAND, "AND", (*CPU).and},
	{symBEQ, "BEQ", (*CPU).beq},
	{symDEX, "DEX", (*CPU).dex},
	{symDEY, "DEY", (*CPU).dey},
	{symEOR, "EOR", (*CPU).eor},
	{symINX, "INX", (*CPU).inx},
	{symINY, "INY", (*CPU).iny},
	{symJMP, "JMP", (*CPU).jmp},
	{symJSR, "JSR", (*CPU).jsr},
	{symLDA, "LDA", (*CPU).lda},
	{symLDX, "LDX", (*CPU).ldx},
	{symLDY, "LDY", (*CPU).ldy},
	{symORA, "ORA", (*CPU).ora},
	{symPHA, "PHA", (*CPU).pha},
	{symPHP, "PHP", (*CPU).php},
	{symPLA, "PLA", (*CPU).pla},
	{symPLP, "PLP", (*CPU).plp},
	{symRTS, "RTS", (*CPU).rts},
	{symSTA, "STA", (*CPU).sta},
	{symSTX, "STX", (*CPU).stx},
	{symSTY, "STY", (*CPU).sty},
	{symTAX, "TAX", (*CPU).tax},
	{symTAY, "TAY", (*CPU).tay},
	{symTSX, "TSX", (*CPU).tsx},
	{symTXA, "TXA", (*CPU).txa},
	{symTXS, "TXS", (*CPU).txs},
	{symTYA, "TYA", (*CPU).tya},
}

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	sym      opsym // internal opcode symbol
	mode     Mode  // addressing mode
	opcode   byte  // opcode hex value
	cycles   byte  // number of CPU cycles to execute command
	bpcycles byte  // additional CPU cycles if command crosses page boundary
}

// All implemented (opcode, mode) pairs
var data = []opcodeData{
	{symLDA, IMM, 0xa9, 2, 0},
	{symLDA, ZPG, 0xa5, 3, 0},
	{symLDA, ZPX, 0xb5, 4, 0},
	{symLDA, ABS, 0xad, 4, 0},
	{symLDA, ABX, 0xbd, 4, 1},
	{symLDA, ABY, 0xb9, 4, 1},
	{symLDA, IDX, 0xa1, 6, 0},
	{symLDA, IDY, 0xb1, 5, 1},

	{symLDX, IMM, 0xa2, 2, 0},
	{symLDX, ZPG, 0xa6, 3, 0},
	{symLDX, ZPY, 0xb6, 4, 0},
	{symLDX, ABS, 0xae, 4, 0},
	{symLDX, ABY, 0xbe, 4, 1},

	{symLDY, IMM, 0xa0, 2, 0},
	{symLDY, ZPG, 0xa4, 3, 0},
	{symLDY, ZPX, 0xb4, 4, 0},
	{symLDY, ABS, 0xac, 4, 0},
	{symLDY, ABX, 0xbc, 4, 1},

	{symSTA, ZPG, 0x85, 3, 0},
	{symSTA, ZPX, 0x95, 4, 0},
	{symSTA, ABS, 0x8d, 4, 0},
	{symSTA, ABX, 0x9d, 5, 0},
	{symSTA, ABY, 0x99, 5, 0},
	{symSTA, IDX, 0x81, 6, 0},
	{symSTA, IDY, 0x91, 6, 0},

	{symSTX, ZPG, 0x86, 3, 0},
	{symSTX, ZPY, 0x96, 4, 0},
	{symSTX, ABS, 0x8e, 4, 0},

	{symSTY, ZPG, 0x84, 3, 0},
	{symSTY, ZPX, 0x94, 4, 0},
	{symSTY, ABS, 0x8c, 4, 0},

	{symAND, IMM, 0x29, 2, 0},
	{symAND, ZPG, 0x25, 3, 0},
	{symAND, ZPX, 0x35, 4, 0},
	{symAND, ABS, 0x2d, 4, 0},
	{symAND, ABX, 0x3d, 4, 1},
	{symAND, ABY, 0x39, 4, 1},
	{symAND, IDX, 0x21, 6, 0},
	{symAND, IDY, 0x31, 5, 1},

	{symORA, IMM, 0x09, 2, 0},
	{symORA, ZPG, 0x05, 3, 0},
	{symORA, ZPX, 0x15, 4, 0},
	{symORA, ABS, 0x0d, 4, 0},
	{symORA, ABX, 0x1d, 4, 1},
	{symORA, ABY, 0x19, 4, 1},
	{symORA, IDX, 0x01, 6, 0},
	{symORA, IDY, 0x11, 5, 1},

	{symEOR, IMM, 0x49, 2, 0},
	{symEOR, ZPG, 0x45, 3, 0},
	{symEOR, ZPX, 0x55, 4, 0},
	{symEOR, ABS, 0x4d, 4, 0},
	{symEOR, ABX, 0x5d, 4, 1},
	{symEOR, ABY, 0x59, 4, 1},
	{symEOR, IDX, 0x41, 6, 0},
	{symEOR, IDY, 0x51, 5, 1},

	{symTAX, IMP, 0xaa, 2, 0},
	{symTAY, IMP, 0xa8, 2, 0},
	{symTXA, IMP, 0x8a, 2, 0},
	{symTYA, IMP, 0x98, 2, 0},
	{symTSX, IMP, 0xba, 2, 0},
	{symTXS, IMP, 0x9a, 2, 0},

	{symINX, IMP, 0xe8, 2, 0},
	{symINY, IMP, 0xc8, 2, 0},
	{symDEX, IMP, 0xca, 2, 0},
	{symDEY, IMP, 0x88, 2, 0},

	{symPHA, IMP, 0x48, 3, 0},
	{symPHP, IMP, 0x08, 3, 0},
	{symPLA, IMP, 0x68, 4, 0},
	{symPLP, IMP, 0x28, 4, 0},

	{symBEQ, REL, 0xf0, 2, 1},

	{symJSR, ABS, 0x20, 6, 0},
	{symRTS, IMP, 0x60, 6, 0},
	{symJMP, ABS, 0x4c, 3, 0},
	{symJMP, IND, 0x6c, 5, 0},
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name     string   // all-caps name of the instruction
	Mode     Mode     // addressing mode
	Opcode   byte     // hexadecimal opcode value
	Length   byte     // combined size of opcode and operand, in bytes
	Cycles   byte     // number of CPU cycles to execute the instruction
	BPCycles byte     // additional cycles required if boundary page crossed
	fn       instfunc // emulator implementation of the function
}

// Implemented reports whether the emulator can execute the instruction.
func (inst *Instruction) Implemented() bool {
	return inst.fn != nil
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	instructions [256]Instruction          // all instructions by opcode
	variants     map[string][]*Instruction // variants of each instruction
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
// Opcodes the emulator does not implement return an instruction named "???".
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Names returns the sorted names of all implemented instructions.
func (s *InstructionSet) Names() []string {
	names := make([]string, 0, len(s.variants))
	for name := range s.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newInstructionSet() *InstructionSet {
	set := &InstructionSet{}

	// Create a map from symbol to implementation for fast lookups.
	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	set.variants = make(map[string][]*Instruction)

	for i := range set.instructions {
		inst := &set.instructions[i]
		inst.Name = "???"
		inst.Mode = IMP
		inst.Opcode = byte(i)
		inst.Length = 1
		inst.Cycles = 1
	}

	for _, d := range data {
		inst := &set.instructions[d.opcode]
		if inst.fn != nil {
			panic("duplicate opcode")
		}

		impl := symToImpl[d.sym]
		inst.Name = impl.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = 1 + d.mode.operandLength()
		inst.Cycles = d.cycles
		inst.BPCycles = d.bpcycles
		inst.fn = impl.fn

		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}
	return set
}

var instructionSet = newInstructionSet()

// GetInstructionSet returns the instruction set executed by the CPU.
func GetInstructionSet() *InstructionSet {
	return instructionSet
}
