package cpu

import "github.com/KRousselFr/EmulatorAVR8/decode"

func (c *CPU) readPtr(reg decode.PtrReg) uint16 {
	switch reg {
	case decode.PtrX:
		return c.X()
	case decode.PtrY:
		return c.Y()
	case decode.PtrZ:
		return c.Z()
	default:
		return 0
	}
}

func (c *CPU) writePtr(reg decode.PtrReg, v uint16) {
	switch reg {
	case decode.PtrX:
		c.SetX(v)
	case decode.PtrY:
		c.SetY(v)
	case decode.PtrZ:
		c.SetZ(v)
	}
}

// resolvePtr returns the effective data address for an indirect-addressing
// operand and a commit closure that applies any pre-decrement or
// post-increment side effect. Real hardware retires the pointer update
// regardless of whether the access it guards succeeds, so callers must
// invoke the closure unconditionally, before or after checking the access
// error.
func (c *CPU) resolvePtr(a decode.Addressing) (uint16, func()) {
	ptr := c.readPtr(a.Reg)
	switch a.Mode {
	case decode.ModePreDec:
		addr := ptr - 1
		return addr, func() { c.writePtr(a.Reg, addr) }
	case decode.ModePostInc:
		return ptr, func() { c.writePtr(a.Reg, ptr+1) }
	case decode.ModeDisplaced:
		return ptr + uint16(a.Disp), func() {}
	default:
		return ptr, func() {}
	}
}

// execMemory implements every load/store form: direct and indirect LD/ST,
// LDS/STS, LPM/ELPM, the atomic read-modify-write family XCH/LAS/LAC/LAT,
// PUSH/POP, and IN/OUT.
func (c *CPU) execMemory(inst *decode.Instruction) error {
	switch inst.Mnemonic {
	case decode.LD:
		addr, commit := c.resolvePtr(inst.Addr)
		v, err := c.readDataByte(addr)
		commit()
		if err != nil {
			return err
		}
		c.R[inst.Rd] = v
		return nil

	case decode.ST:
		addr, commit := c.resolvePtr(inst.Addr)
		err := c.writeDataByte(addr, c.R[inst.Rr])
		commit()
		if err != nil {
			return err
		}
		return nil

	case decode.LDS:
		v, err := c.readDataByte(uint16(inst.K))
		if err != nil {
			return err
		}
		c.R[inst.Rd] = v
		return nil

	case decode.STS:
		return c.writeDataByte(uint16(inst.K), c.R[inst.Rr])

	case decode.LPM, decode.ELPM:
		return c.execLPM(inst)

	case decode.XCH:
		addr := c.readPtr(inst.Addr.Reg)
		old, err := c.readDataByte(addr)
		if err != nil {
			return err
		}
		if err := c.writeDataByte(addr, c.R[inst.Rr]); err != nil {
			return err
		}
		c.R[inst.Rr] = old
		return nil

	case decode.LAS:
		addr := c.readPtr(inst.Addr.Reg)
		old, err := c.readDataByte(addr)
		if err != nil {
			return err
		}
		if err := c.writeDataByte(addr, old|c.R[inst.Rr]); err != nil {
			return err
		}
		c.R[inst.Rr] = old
		return nil

	case decode.LAC:
		addr := c.readPtr(inst.Addr.Reg)
		old, err := c.readDataByte(addr)
		if err != nil {
			return err
		}
		if err := c.writeDataByte(addr, old&^c.R[inst.Rr]); err != nil {
			return err
		}
		c.R[inst.Rr] = old
		return nil

	case decode.LAT:
		addr := c.readPtr(inst.Addr.Reg)
		old, err := c.readDataByte(addr)
		if err != nil {
			return err
		}
		if err := c.writeDataByte(addr, old^c.R[inst.Rr]); err != nil {
			return err
		}
		c.R[inst.Rr] = old
		return nil

	case decode.PUSH:
		if err := c.writeDataByte(c.SP, c.R[inst.Rr]); err != nil {
			return err
		}
		c.SP--
		return nil

	case decode.POP:
		c.SP++
		v, err := c.readDataByte(c.SP)
		if err != nil {
			return err
		}
		c.R[inst.Rd] = v
		return nil

	case decode.IN:
		v, err := c.readIOByte(inst.IOAddr)
		if err != nil {
			return err
		}
		c.R[inst.Rd] = v
		return nil

	case decode.OUT:
		return c.writeIOByte(inst.IOAddr, c.R[inst.Rr])
	}

	return nil
}

// execLPM implements LPM and ELPM. Both read one byte out of the word-
// addressed program space, selected by Z's low bit; ELPM additionally
// folds RAMPZ in as the address's high byte.
func (c *CPU) execLPM(inst *decode.Instruction) error {
	if inst.Mnemonic == decode.ELPM && !c.largePC {
		return &OpError{Kind: KindInvalidOperation, PC: c.PC, Detail: "ELPM requires a 22-bit PC"}
	}

	z := c.Z()
	byteAddr := uint32(z)
	if inst.Mnemonic == decode.ELPM {
		byteAddr |= uint32(c.RAMPZ) << 16
	}

	w, err := c.readProgWord(byteAddr >> 1)
	if err != nil {
		return err
	}

	if byteAddr&1 != 0 {
		c.R[inst.Rd] = uint8(w >> 8)
	} else {
		c.R[inst.Rd] = uint8(w)
	}

	if inst.Addr.Mode == decode.ModePostInc {
		c.SetZ(z + 1)
	}

	c.cycles++
	return nil
}
