package decode

// PtrReg names which 16-bit pointer register an indirect addressing mode
// uses.
type PtrReg uint8

const (
	PtrNone PtrReg = iota
	PtrX
	PtrY
	PtrZ
)

func (p PtrReg) String() string {
	switch p {
	case PtrX:
		return "X"
	case PtrY:
		return "Y"
	case PtrZ:
		return "Z"
	default:
		return ""
	}
}

// PtrMode names how an indirect addressing mode modifies its pointer
// register around the access.
type PtrMode uint8

const (
	ModeNone PtrMode = iota
	ModePreDec
	ModePostInc
	ModeDisplaced
)

// Addressing describes an indirect-addressing operand: which pointer
// register, whether it is pre-decremented, post-incremented or displaced,
// and the displacement when Mode is ModeDisplaced.
type Addressing struct {
	Reg  PtrReg
	Mode PtrMode
	Disp uint8
}

// Instruction is the result of classifying one or two opcode words. Fields
// not used by a given Mnemonic are left at their zero value.
type Instruction struct {
	Mnemonic Mnemonic
	Words    uint8 // 1 or 2
	Op1, Op2 uint16

	Rd, Rr uint8 // register indices
	K      uint32 // generic immediate: K8, K6, data16 address, or Abs22 destination
	Bit    uint8  // bit index 0..7, or SREG-bit index for BSET/BCLR/BRBS/BRBC
	Rel    int32  // signed word displacement for RJMP/RCALL/branches
	Addr   Addressing
	IOAddr uint16 // resolved data-memory address (0x0020+raw) for IN/OUT/CBI/SBI/SBIC/SBIS
}

// IsLong reports whether op is the first word of a two-word opcode: LDS,
// STS, JMP or CALL. It is a pure function of the opcode word, used both by
// the decoder and by callers needing to know, before decoding, whether a
// second word must be fetched.
func IsLong(op uint16) bool {
	if (op & 0xFC0F) == 0x9000 {
		return true
	}
	if (op & 0xFE0C) == 0x940C {
		return true
	}
	return false
}
