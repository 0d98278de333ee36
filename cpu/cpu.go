// Package cpu implements the AVR8 register file, status flags, and the
// fetch-decode-execute engine that drives them against an external
// MemorySpace.
package cpu

import (
	"fmt"
	"strings"

	"github.com/KRousselFr/EmulatorAVR8/disasm"
)

// UnknownOpcodePolicy governs what Step does when the decoder cannot
// classify an opcode word.
type UnknownOpcodePolicy uint8

const (
	// ThrowException raises ErrUnknownOpcode.
	ThrowException UnknownOpcodePolicy = iota
	// DoNop silently treats the opcode as a one-word no-op.
	DoNop
	// Emulate is reserved. It is not distinguished from ThrowException.
	Emulate
)

const dataMemoryIOBase = 0x0020

// CPU is the AVR8 execution engine: the register file, status flags and
// extended-pointer registers, plus the cycle counter and the policy
// governing unrecognized opcodes. All fields are mutated only from inside
// Step, Run, Reset and the exported register/flag setters — there is no
// internal concurrency.
type CPU struct {
	mem MemorySpace

	largePC bool
	pcMask  uint32

	R  [32]uint8
	PC uint32
	SP uint16

	EIND  uint8
	RAMPX uint8
	RAMPY uint8
	RAMPZ uint8

	flagC bool
	flagZ bool
	flagN bool
	flagV bool
	flagH bool
	flagT bool
	flagI bool

	cycles uint64
	asleep bool

	UnknownOpcodePolicy UnknownOpcodePolicy

	trace *Tracer
}

// New binds a CPU to mem. largePC selects a 22-bit program counter (large
// program space, EIND/RAMPZ meaningful); false selects a 16-bit PC. The PC
// width is immutable once constructed.
func New(mem MemorySpace, largePC bool) *CPU {
	c := &CPU{mem: mem, largePC: largePC}
	if largePC {
		c.pcMask = 0x3FFFFF
	} else {
		c.pcMask = 0xFFFF
	}
	return c
}

// Reset restores PC, SP and all flags to zero, clears the cycle counter
// and the asleep flag. General registers and the extended pointer
// registers are left untouched — their post-reset state is unspecified on
// real hardware, and the core does not invent a value for them.
func (c *CPU) Reset() {
	c.PC = 0
	c.SP = 0
	c.flagC, c.flagZ, c.flagN, c.flagV, c.flagH, c.flagT, c.flagI = false, false, false, false, false, false, false
	c.cycles = 0
	c.asleep = false
	if c.trace != nil {
		c.trace.markReset()
	}
}

// LargePC reports whether this CPU was constructed with a 22-bit program
// counter.
func (c *CPU) LargePC() bool { return c.largePC }

// ElapsedCycles returns the total number of machine cycles charged so far.
func (c *CPU) ElapsedCycles() uint64 { return c.cycles }

// IsAsleep reports whether the CPU is currently halted by SLEEP.
func (c *CPU) IsAsleep() bool { return c.asleep }

// Wake clears the asleep flag, as an external interrupt controller would.
// The core does not model interrupts itself; this is the hook a caller
// uses to resume a sleeping CPU.
func (c *CPU) Wake() { c.asleep = false }

// RegPair reads register pair R[i+1]:R[i] as a 16-bit value, high byte
// first.
func (c *CPU) RegPair(i int) uint16 {
	return uint16(c.R[i+1])<<8 | uint16(c.R[i])
}

// SetRegPair writes register pair R[i+1]:R[i] from a 16-bit value.
func (c *CPU) SetRegPair(i int, v uint16) {
	c.R[i] = uint8(v)
	c.R[i+1] = uint8(v >> 8)
}

// X, Y, Z return the 16-bit pointer-register pairs R27:R26, R29:R28 and
// R31:R30.
func (c *CPU) X() uint16 { return c.RegPair(26) }
func (c *CPU) Y() uint16 { return c.RegPair(28) }
func (c *CPU) Z() uint16 { return c.RegPair(30) }

// SetX, SetY, SetZ write the pointer-register pairs.
func (c *CPU) SetX(v uint16) { c.SetRegPair(26, v) }
func (c *CPU) SetY(v uint16) { c.SetRegPair(28, v) }
func (c *CPU) SetZ(v uint16) { c.SetRegPair(30, v) }

// SREG returns the composite status byte: bit0=C, bit1=Z, bit2=N, bit3=V,
// bit4=S, bit5=H, bit6=T, bit7=I.
func (c *CPU) SREG() uint8 {
	var v uint8
	if c.flagC {
		v |= 0x01
	}
	if c.flagZ {
		v |= 0x02
	}
	if c.flagN {
		v |= 0x04
	}
	if c.flagV {
		v |= 0x08
	}
	if c.Sign() {
		v |= 0x10
	}
	if c.flagH {
		v |= 0x20
	}
	if c.flagT {
		v |= 0x40
	}
	if c.flagI {
		v |= 0x80
	}
	return v
}

// SetSREG assigns C, Z, N, V, H, T and I atomically from a composite byte.
// Bit 4 (S) is not stored: S always reads back as N xor V, so SREG returns
// the written byte only when its bit 4 equals bit 2 xor bit 3.
func (c *CPU) SetSREG(v uint8) {
	c.flagC = v&0x01 != 0
	c.flagZ = v&0x02 != 0
	c.flagN = v&0x04 != 0
	c.flagV = v&0x08 != 0
	c.flagH = v&0x20 != 0
	c.flagT = v&0x40 != 0
	c.flagI = v&0x80 != 0
}

// Sign returns S = N xor V. It is always derived, never stored.
func (c *CPU) Sign() bool { return c.flagN != c.flagV }

func (c *CPU) Carry() bool            { return c.flagC }
func (c *CPU) SetCarry(v bool)        { c.flagC = v }
func (c *CPU) Zero() bool             { return c.flagZ }
func (c *CPU) SetZero(v bool)         { c.flagZ = v }
func (c *CPU) Negative() bool         { return c.flagN }
func (c *CPU) SetNegative(v bool)     { c.flagN = v }
func (c *CPU) Overflow() bool         { return c.flagV }
func (c *CPU) SetOverflow(v bool)     { c.flagV = v }
func (c *CPU) HalfCarry() bool        { return c.flagH }
func (c *CPU) SetHalfCarry(v bool)    { c.flagH = v }
func (c *CPU) TransferBit() bool      { return c.flagT }
func (c *CPU) SetTransferBit(v bool)  { c.flagT = v }
func (c *CPU) InterruptEnable() bool  { return c.flagI }
func (c *CPU) SetInterruptEnable(v bool) { c.flagI = v }

// FlagString renders the eight flags as a fixed-width "ITHSVNZC" dump, one
// letter per flag, uppercase when set and lowercase when clear. String uses
// it; the tracer prints its own "I=... C=..." form instead.
func (c *CPU) FlagString() string {
	s := strings.Builder{}
	letter := func(set bool, up, low rune) {
		if set {
			s.WriteRune(up)
		} else {
			s.WriteRune(low)
		}
	}
	letter(c.flagI, 'I', 'i')
	letter(c.flagT, 'T', 't')
	letter(c.flagH, 'H', 'h')
	letter(c.Sign(), 'S', 's')
	letter(c.flagV, 'V', 'v')
	letter(c.flagN, 'N', 'n')
	letter(c.flagZ, 'Z', 'z')
	letter(c.flagC, 'C', 'c')
	return s.String()
}

// String renders a compact one-line dump of PC, SP, SREG and flags.
func (c *CPU) String() string {
	return fmt.Sprintf("PC=%#06x SP=%#04x SREG=%#02x (%s)", c.PC, c.SP, c.SREG(), c.FlagString())
}

// SetTraceOutput attaches a tracer writing to w; passing nil detaches and
// releases any previously attached tracer. There is no configuration
// surface beyond enabled/disabled.
func (c *CPU) SetTraceOutput(w traceWriter) {
	if w == nil {
		c.trace = nil
		return
	}
	c.trace = newTracer(w, disasm.New())
}

// maskPC masks v to the configured PC width.
func (c *CPU) maskPC(v uint32) uint32 { return v & c.pcMask }
