package disasm

import (
	"strings"
	"testing"
)

type mockSource map[uint32]uint16

func (m mockSource) ReadProgramMemory(addr uint32) (uint16, bool) {
	w, ok := m[addr]
	return w, ok
}

func newMockSource(words ...uint16) mockSource {
	m := mockSource{}
	for i, w := range words {
		m[uint32(i)] = w
	}
	return m
}

func TestDisassembleNOP(t *testing.T) {
	src := newMockSource(0x0000)
	d := New()
	line, next := d.DisassembleInstructionAt(src, 0)
	if next != 1 {
		t.Fatalf("next = %d, want 1", next)
	}
	if !strings.Contains(line, "NOP") {
		t.Fatalf("line = %q, want it to contain NOP", line)
	}
}

func TestDisassembleLongOpcodeAdvancesTwo(t *testing.T) {
	src := newMockSource(0x9100, 0x1234) // LDS R16, 0x1234
	d := New()
	line, next := d.DisassembleInstructionAt(src, 0)
	if next != 2 {
		t.Fatalf("next = %d, want 2", next)
	}
	if !strings.Contains(line, "LDS") || !strings.Contains(line, "1234") {
		t.Fatalf("line = %q", line)
	}
}

func TestDisassembleAliases(t *testing.T) {
	d := New()

	src := newMockSource(0x0C00) // ADD R0,R0 -> LSL R0
	line, _ := d.DisassembleInstructionAt(src, 0)
	if !strings.Contains(line, "LSL") {
		t.Fatalf("line = %q, want LSL alias", line)
	}

	src = newMockSource(0x1C00) // ADC R0,R0 -> ROL R0
	line, _ = d.DisassembleInstructionAt(src, 0)
	if !strings.Contains(line, "ROL") {
		t.Fatalf("line = %q, want ROL alias", line)
	}

	src = newMockSource(0x2000) // AND R0,R0 -> TST R0
	line, _ = d.DisassembleInstructionAt(src, 0)
	if !strings.Contains(line, "TST") {
		t.Fatalf("line = %q, want TST alias", line)
	}

	src = newMockSource(0x2400) // EOR R0,R0 -> CLR R0
	line, _ = d.DisassembleInstructionAt(src, 0)
	if !strings.Contains(line, "CLR") {
		t.Fatalf("line = %q, want CLR alias", line)
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	// 0x0003 falls in the reserved "0x00xx, bits9-8=00" region with op1 != 0.
	src := newMockSource(0x0003)
	d := New()
	line, _ := d.DisassembleInstructionAt(src, 0)
	if !strings.Contains(line, "?!?") {
		t.Fatalf("line = %q, want unknown marker", line)
	}
}

func TestDisassembleManyInstructionsAt(t *testing.T) {
	src := newMockSource(0x0000, 0x0000, 0x0000)
	d := New()
	out := d.DisassembleManyInstructionsAt(src, 0, 3)
	if strings.Count(out, "\n") != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
}

func TestDisassembleMemoryOverrunsForFinalLongOpcode(t *testing.T) {
	// LDS at word 0 (long) followed by its data-address word.
	src := newMockSource(0x9100, 0x1234)
	d := New()
	out := d.DisassembleMemory(src, 0, 0)
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected 1 line, got %q", out)
	}
	if !strings.Contains(out, "1234") {
		t.Fatalf("expected the word past 'to' to be read, got %q", out)
	}
}
