package cpu

import (
	"github.com/KRousselFr/EmulatorAVR8/decode"
	"github.com/KRousselFr/EmulatorAVR8/internal/alog"
)

// Step performs one fetch-decode-execute cycle and returns the number of
// machine cycles it consumed. If the CPU is asleep, Step does nothing and
// returns 0. Errors propagate from memory access failures, an unrecognized
// opcode under ThrowException, InvalidOperation, NotImplemented, or
// BreakInterrupt.
func (c *CPU) Step() (int, error) {
	if c.asleep {
		return 0, nil
	}

	before := c.cycles
	fetchPC := c.PC

	if c.trace != nil {
		c.trace.emitBefore(c.mem, fetchPC)
	}

	op1, err := c.readProgWord(fetchPC)
	if err != nil {
		return 0, err
	}
	c.PC = c.maskPC(c.PC + 1)

	var op2 uint16
	if decode.IsLong(op1) {
		op2, err = c.readProgWord(c.PC)
		if err != nil {
			return 0, err
		}
		c.PC = c.maskPC(c.PC + 1)
	}

	inst := decode.Decode(op1, op2)
	if inst.Mnemonic == decode.Unknown {
		if c.UnknownOpcodePolicy == DoNop {
			// PC has already advanced past the opcode word(s); nothing
			// more to do.
		} else {
			return 0, &OpError{Kind: KindUnknownOpcode, PC: fetchPC, Opcode: op1, Opcode2: op2}
		}
	} else {
		if err := c.execute(inst, fetchPC); err != nil {
			return 0, err
		}
	}

	if c.trace != nil {
		c.trace.emitAfter(c)
	}

	return int(c.cycles - before), nil
}

// Run repeats Step until at least n cycles have elapsed or the CPU falls
// asleep, returning the actual number of cycles consumed.
func (c *CPU) Run(n uint64) (uint64, error) {
	before := c.cycles
	for c.cycles-before < n && !c.asleep {
		if _, err := c.Step(); err != nil {
			return c.cycles - before, err
		}
	}
	return c.cycles - before, nil
}

// execute mutates CPU state and MemorySpace per inst's semantics. opPC is
// the address the opcode word(s) were fetched from, reported by BREAK and by
// the errors raised here; relative control-flow targets use c.PC instead.
func (c *CPU) execute(inst *decode.Instruction, opPC uint32) error {
	switch inst.Mnemonic {
	case decode.NOP:
		return nil

	case decode.MOVW:
		c.R[inst.Rd] = c.R[inst.Rr]
		c.R[inst.Rd+1] = c.R[inst.Rr+1]
		return nil

	case decode.MUL, decode.MULS, decode.MULSU, decode.FMUL, decode.FMULS, decode.FMULSU:
		return c.execMultiply(inst)

	case decode.CPC, decode.SBC, decode.ADD, decode.CP, decode.SUB, decode.ADC,
		decode.AND, decode.EOR, decode.OR, decode.MOV,
		decode.CPI, decode.SBCI, decode.SUBI, decode.ORI, decode.ANDI, decode.LDI,
		decode.COM, decode.NEG, decode.SWAP, decode.INC, decode.DEC,
		decode.ASR, decode.LSR, decode.ROR:
		return c.execALU(inst)

	case decode.CPSE, decode.SBRC, decode.SBRS, decode.SBIC, decode.SBIS:
		return c.execSkip(inst)

	case decode.RJMP, decode.RCALL, decode.JMP, decode.CALL,
		decode.IJMP, decode.EIJMP, decode.ICALL, decode.EICALL,
		decode.RET, decode.RETI, decode.BRBS, decode.BRBC:
		return c.execControlFlow(inst, opPC)

	case decode.LD, decode.ST, decode.LDS, decode.STS, decode.LPM, decode.ELPM,
		decode.XCH, decode.LAS, decode.LAC, decode.LAT,
		decode.PUSH, decode.POP, decode.IN, decode.OUT:
		return c.execMemory(inst)

	case decode.ADIW, decode.SBIW:
		return c.execWordArith(inst)

	case decode.BLD, decode.BST, decode.BSET, decode.BCLR, decode.CBI, decode.SBI:
		return c.execBits(inst)

	case decode.SLEEP:
		c.asleep = true
		alog.Logf("cpu", "sleep entered at pc=%#06x", opPC)
		return nil

	case decode.BREAK:
		alog.Logf("cpu", "break hit at pc=%#06x", opPC)
		return &OpError{Kind: KindBreakInterrupt, PC: opPC}

	case decode.WDR:
		return nil

	case decode.SPM, decode.DES:
		return &OpError{Kind: KindNotImplemented, PC: opPC, Detail: inst.Mnemonic.String()}
	}

	return &OpError{Kind: KindUnknownOpcode, PC: opPC, Opcode: inst.Op1, Opcode2: inst.Op2}
}
