package cpu

import "github.com/KRousselFr/EmulatorAVR8/decode"

// execALU implements every instruction whose entire cost is the base fetch
// charged by Step: two-register and immediate arithmetic/logic, compares,
// and the single-register ALU family.
func (c *CPU) execALU(inst *decode.Instruction) error {
	switch inst.Mnemonic {
	case decode.ADD:
		rd, rr := c.R[inst.Rd], c.R[inst.Rr]
		res := rd + rr
		h, v, cy := addFlags(rd, rr, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.ADC:
		rd, rr := c.R[inst.Rd], c.R[inst.Rr]
		carryIn := uint8(0)
		if c.flagC {
			carryIn = 1
		}
		res := rd + rr + carryIn
		h, v, cy := addFlags(rd, rr, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.SUB:
		rd, rr := c.R[inst.Rd], c.R[inst.Rr]
		res := rd - rr
		h, v, cy := subFlags(rd, rr, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.SUBI:
		rd, k := c.R[inst.Rd], uint8(inst.K)
		res := rd - k
		h, v, cy := subFlags(rd, k, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.CP:
		rd, rr := c.R[inst.Rd], c.R[inst.Rr]
		res := rd - rr
		h, v, cy := subFlags(rd, rr, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)

	case decode.CPI:
		rd, k := c.R[inst.Rd], uint8(inst.K)
		res := rd - k
		h, v, cy := subFlags(rd, k, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)

	case decode.SBC:
		rd, rr := c.R[inst.Rd], c.R[inst.Rr]
		carryIn := uint8(0)
		if c.flagC {
			carryIn = 1
		}
		res := rd - rr - carryIn
		h, v, cy := subFlags(rd, rr, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.flagN = bit(res, 7)
		c.flagZ = res == 0 && c.flagZ
		c.R[inst.Rd] = res

	case decode.SBCI:
		rd, k := c.R[inst.Rd], uint8(inst.K)
		carryIn := uint8(0)
		if c.flagC {
			carryIn = 1
		}
		res := rd - k - carryIn
		h, v, cy := subFlags(rd, k, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.flagN = bit(res, 7)
		c.flagZ = res == 0 && c.flagZ
		c.R[inst.Rd] = res

	case decode.CPC:
		rd, rr := c.R[inst.Rd], c.R[inst.Rr]
		carryIn := uint8(0)
		if c.flagC {
			carryIn = 1
		}
		res := rd - rr - carryIn
		h, v, cy := subFlags(rd, rr, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.flagN = bit(res, 7)
		c.flagZ = res == 0 && c.flagZ

	case decode.AND:
		res := c.R[inst.Rd] & c.R[inst.Rr]
		c.flagV = false
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.ANDI:
		res := c.R[inst.Rd] & uint8(inst.K)
		c.flagV = false
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.OR:
		res := c.R[inst.Rd] | c.R[inst.Rr]
		c.flagV = false
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.ORI:
		res := c.R[inst.Rd] | uint8(inst.K)
		c.flagV = false
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.EOR:
		res := c.R[inst.Rd] ^ c.R[inst.Rr]
		c.flagV = false
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.MOV:
		c.R[inst.Rd] = c.R[inst.Rr]

	case decode.LDI:
		c.R[inst.Rd] = uint8(inst.K)

	case decode.COM:
		res := 0xFF - c.R[inst.Rd]
		c.flagV = false
		c.flagC = true
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.NEG:
		rd := c.R[inst.Rd]
		res := uint8(0) - rd
		h, v, cy := subFlags(0, rd, res)
		c.flagH, c.flagV, c.flagC = h, v, cy
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.INC:
		res := c.R[inst.Rd] + 1
		c.flagV = res == 0x80
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.DEC:
		res := c.R[inst.Rd] - 1
		c.flagV = res == 0x7F
		c.setNZ(res)
		c.R[inst.Rd] = res

	case decode.ASR:
		rd := c.R[inst.Rd]
		c.flagC = bit(rd, 0)
		res := (rd >> 1) | (rd & 0x80)
		c.flagN = bit(res, 7)
		c.flagV = c.flagN != c.flagC
		c.flagZ = res == 0
		c.R[inst.Rd] = res

	case decode.LSR:
		rd := c.R[inst.Rd]
		c.flagC = bit(rd, 0)
		res := rd >> 1
		c.flagN = false
		c.flagV = c.flagN != c.flagC
		c.flagZ = res == 0
		c.R[inst.Rd] = res

	case decode.ROR:
		rd := c.R[inst.Rd]
		oldC := c.flagC
		c.flagC = bit(rd, 0)
		res := rd >> 1
		if oldC {
			res |= 0x80
		}
		c.flagN = bit(res, 7)
		c.flagV = c.flagN != c.flagC
		c.flagZ = res == 0
		c.R[inst.Rd] = res

	case decode.SWAP:
		rd := c.R[inst.Rd]
		c.R[inst.Rd] = (rd << 4) | (rd >> 4)
	}

	return nil
}

// execMultiply implements MUL, MULS, MULSU and the fractional-multiply
// family, each costing one extra cycle beyond the base fetch.
func (c *CPU) execMultiply(inst *decode.Instruction) error {
	rd, rr := c.R[inst.Rd], c.R[inst.Rr]

	var res uint16
	switch inst.Mnemonic {
	case decode.MUL:
		res = uint16(rd) * uint16(rr)
	case decode.MULS:
		res = uint16(int16(int8(rd)) * int16(int8(rr)))
	case decode.MULSU:
		res = uint16(int16(int8(rd)) * int16(rr))
	case decode.FMUL:
		res = uint16(rd) * uint16(rr)
	case decode.FMULS:
		res = uint16(int16(int8(rd)) * int16(int8(rr)))
	case decode.FMULSU:
		res = uint16(int16(int8(rd)) * int16(rr))
	}

	c.flagC = bit(uint8(res>>8), 7)

	if inst.Mnemonic == decode.FMUL || inst.Mnemonic == decode.FMULS || inst.Mnemonic == decode.FMULSU {
		res <<= 1
	}
	c.flagZ = res == 0

	c.R[0] = uint8(res)
	c.R[1] = uint8(res >> 8)
	c.cycles++
	return nil
}

// execWordArith implements ADIW and SBIW, each an atomic 16-bit update to
// a register pair plus one extra cycle beyond the base fetch.
func (c *CPU) execWordArith(inst *decode.Instruction) error {
	old := c.RegPair(int(inst.Rd))
	oldHigh7 := bit(uint8(old>>8), 7)

	var res uint16
	if inst.Mnemonic == decode.ADIW {
		res = old + uint16(inst.K)
	} else {
		res = old - uint16(inst.K)
	}

	n := bit(uint8(res>>8), 7)
	c.flagN = n
	c.flagZ = res == 0
	if inst.Mnemonic == decode.ADIW {
		c.flagV = n && !oldHigh7
		c.flagC = !n && oldHigh7
	} else {
		c.flagV = !n && oldHigh7
		c.flagC = n && !oldHigh7
	}

	c.SetRegPair(int(inst.Rd), res)
	c.cycles++
	return nil
}
