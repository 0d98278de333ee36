package disasm

import (
	"fmt"

	"github.com/KRousselFr/EmulatorAVR8/decode"
)

func ptrOperand(a decode.Addressing) string {
	switch a.Mode {
	case decode.ModePreDec:
		return "-" + a.Reg.String()
	case decode.ModePostInc:
		return a.Reg.String() + "+"
	case decode.ModeDisplaced:
		if a.Disp == 0 {
			return a.Reg.String()
		}
		return fmt.Sprintf("%s+%d", a.Reg.String(), a.Disp)
	default:
		return a.Reg.String()
	}
}

func reg(n uint8) string { return fmt.Sprintf("R%d", n) }

func branchTarget(pcAfter uint32, rel int32) string {
	target := int64(pcAfter) + int64(rel)
	return fmt.Sprintf("%d ->$%05X", rel, target)
}

// format renders the mnemonic and operand text for inst. pcAfter is the
// program address immediately following the instruction's words, used to
// resolve relative branch/call targets to an absolute address.
func format(inst *decode.Instruction, pcAfter uint32) (string, string) {
	switch inst.Mnemonic {
	case decode.Unknown:
		return "***", "?!?"

	case decode.NOP, decode.RET, decode.RETI, decode.ICALL, decode.EICALL,
		decode.IJMP, decode.EIJMP, decode.SLEEP, decode.BREAK, decode.WDR:
		return inst.Mnemonic.String(), ""

	case decode.SPM:
		if inst.Addr.Reg == decode.PtrNone {
			return "SPM", ""
		}
		return "SPM", ptrOperand(inst.Addr)

	case decode.LPM, decode.ELPM:
		if inst.Addr.Reg == decode.PtrNone {
			return inst.Mnemonic.String(), ""
		}
		return inst.Mnemonic.String(), fmt.Sprintf("%s,%s", reg(inst.Rd), ptrOperand(inst.Addr))

	case decode.ADD:
		if inst.Rd == inst.Rr {
			return "LSL", reg(inst.Rd)
		}
		return "ADD", fmt.Sprintf("%s,%s", reg(inst.Rd), reg(inst.Rr))

	case decode.ADC:
		if inst.Rd == inst.Rr {
			return "ROL", reg(inst.Rd)
		}
		return "ADC", fmt.Sprintf("%s,%s", reg(inst.Rd), reg(inst.Rr))

	case decode.AND:
		if inst.Rd == inst.Rr {
			return "TST", reg(inst.Rd)
		}
		return "AND", fmt.Sprintf("%s,%s", reg(inst.Rd), reg(inst.Rr))

	case decode.EOR:
		if inst.Rd == inst.Rr {
			return "CLR", reg(inst.Rd)
		}
		return "EOR", fmt.Sprintf("%s,%s", reg(inst.Rd), reg(inst.Rr))

	case decode.CPC, decode.SBC, decode.CPSE, decode.CP, decode.SUB,
		decode.OR, decode.MOV, decode.MUL, decode.MULS, decode.MULSU,
		decode.FMUL, decode.FMULS, decode.FMULSU:
		return inst.Mnemonic.String(), fmt.Sprintf("%s,%s", reg(inst.Rd), reg(inst.Rr))

	case decode.CPI, decode.SBCI, decode.SUBI, decode.ORI, decode.ANDI, decode.LDI:
		return inst.Mnemonic.String(), fmt.Sprintf("%s,#$%02X", reg(inst.Rd), inst.K)

	case decode.MOVW:
		return "MOVW", fmt.Sprintf("R%d:%s,R%d:%s", inst.Rd+1, reg(inst.Rd), inst.Rr+1, reg(inst.Rr))

	case decode.ADIW, decode.SBIW:
		return inst.Mnemonic.String(), fmt.Sprintf("R%d:%s,#$%02X", inst.Rd+1, reg(inst.Rd), inst.K)

	case decode.COM, decode.NEG, decode.SWAP, decode.INC, decode.ASR,
		decode.LSR, decode.ROR, decode.DEC, decode.POP:
		return inst.Mnemonic.String(), reg(inst.Rd)

	case decode.PUSH:
		return "PUSH", reg(inst.Rr)

	case decode.LD:
		return "LD", fmt.Sprintf("%s,%s", reg(inst.Rd), ptrOperand(inst.Addr))

	case decode.ST:
		return "ST", fmt.Sprintf("%s,%s", ptrOperand(inst.Addr), reg(inst.Rr))

	case decode.XCH, decode.LAS, decode.LAC, decode.LAT:
		return inst.Mnemonic.String(), fmt.Sprintf("%s,%s", ptrOperand(inst.Addr), reg(inst.Rr))

	case decode.LDS:
		return "LDS", fmt.Sprintf("%s,$%04X", reg(inst.Rd), inst.K)

	case decode.STS:
		return "STS", fmt.Sprintf("$%04X,%s", inst.K, reg(inst.Rr))

	case decode.IN:
		return "IN", fmt.Sprintf("%s,$%02X", reg(inst.Rd), inst.IOAddr)

	case decode.OUT:
		return "OUT", fmt.Sprintf("$%02X,%s", inst.IOAddr, reg(inst.Rr))

	case decode.CBI, decode.SBI, decode.SBIC, decode.SBIS:
		return inst.Mnemonic.String(), fmt.Sprintf("$%02X,%d", inst.IOAddr, inst.Bit)

	case decode.BLD, decode.BST:
		return inst.Mnemonic.String(), fmt.Sprintf("%s,%d", reg(inst.Rd), inst.Bit)

	case decode.SBRC, decode.SBRS:
		return inst.Mnemonic.String(), fmt.Sprintf("%s,%d", reg(inst.Rr), inst.Bit)

	case decode.BSET:
		return decode.FlagBitName(inst.Bit, true), ""

	case decode.BCLR:
		return decode.FlagBitName(inst.Bit, false), ""

	case decode.BRBS:
		return decode.BranchName(inst.Bit, true), branchTarget(pcAfter, inst.Rel)

	case decode.BRBC:
		return decode.BranchName(inst.Bit, false), branchTarget(pcAfter, inst.Rel)

	case decode.RJMP, decode.RCALL:
		return inst.Mnemonic.String(), fmt.Sprintf("->$%05X", int64(pcAfter)+int64(inst.Rel))

	case decode.JMP, decode.CALL:
		return inst.Mnemonic.String(), fmt.Sprintf("->$%05X", inst.K)

	case decode.DES:
		return "DES", fmt.Sprintf("#$%02X", inst.K)

	default:
		return inst.Mnemonic.String(), ""
	}
}
