// Package disasm pairs the decode package's instruction classifier with a
// mnemonic-and-operand text formatter, producing the canonical one-line
// disassembly format used both by standalone disassembly tools and by the
// cpu package's tracer.
package disasm

import (
	"fmt"
	"strings"

	"github.com/KRousselFr/EmulatorAVR8/decode"
)

// Source is the minimal program-memory read capability the disassembler
// needs. Any cpu.MemorySpace satisfies it.
type Source interface {
	ReadProgramMemory(addr uint32) (word uint16, ok bool)
}

// Disassembler formats decoded instructions. It holds no state of its own
// — every method takes the Source and address it needs — so a single
// instance can be shared freely, including by a tracer that must not
// retain any per-step state between calls.
type Disassembler struct{}

// New returns a ready-to-use Disassembler.
func New() *Disassembler {
	return &Disassembler{}
}

// IsLongOpcode is a pure static helper mirroring decode.IsLong, exposed on
// the disassembler surface per its external contract.
func IsLongOpcode(word uint16) bool {
	return decode.IsLong(word)
}

// DisassembleInstructionAt reads and formats the single instruction at
// program address pc, returning the formatted line and the address of the
// next instruction.
func (d *Disassembler) DisassembleInstructionAt(src Source, pc uint32) (string, uint32) {
	op1, ok := src.ReadProgramMemory(pc)
	if !ok {
		return fmt.Sprintf("%05X : ---- unreadable", pc), pc + 1
	}

	var op2 uint16
	words := uint32(1)
	if decode.IsLong(op1) {
		op2, _ = src.ReadProgramMemory(pc + 1)
		words = 2
	}

	inst := decode.Decode(op1, op2)
	pcAfter := pc + words
	mnemonic, operands := format(inst, pcAfter)

	var hexWords string
	if words == 2 {
		hexWords = fmt.Sprintf("%04X %04X", op1, op2)
	} else {
		hexWords = fmt.Sprintf("%04X", op1)
	}

	line := fmt.Sprintf("%05X : %-9s : %s", pc, hexWords, strings.TrimRight(mnemonic+" "+operands, " "))
	return line, pc + words
}

// DisassembleManyInstructionsAt formats n consecutive instructions
// starting at pc, one per line.
func (d *Disassembler) DisassembleManyInstructionsAt(src Source, pc uint32, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		var line string
		line, pc = d.DisassembleInstructionAt(src, pc)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// DisassembleMemory formats every instruction between from and to
// inclusive. If the final instruction is long it may read one word past
// to, matching the reference disassembler's own documented behavior.
func (d *Disassembler) DisassembleMemory(src Source, from, to uint32) string {
	var b strings.Builder
	pc := from
	for pc <= to {
		var line string
		line, pc = d.DisassembleInstructionAt(src, pc)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
