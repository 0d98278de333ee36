package cpu

import "github.com/KRousselFr/EmulatorAVR8/decode"

func (c *CPU) pushByte(v uint8) error {
	if err := c.writeDataByte(c.SP, v); err != nil {
		return err
	}
	c.SP--
	return nil
}

func (c *CPU) popByte() (uint8, error) {
	c.SP++
	return c.readDataByte(c.SP)
}

// pushReturnAddr pushes addr low byte first, then high byte, then (on a
// 22-bit-PC core) the extended byte — the order popReturnAddr unwinds in
// reverse.
func (c *CPU) pushReturnAddr(addr uint32) error {
	if err := c.pushByte(uint8(addr)); err != nil {
		return err
	}
	if err := c.pushByte(uint8(addr >> 8)); err != nil {
		return err
	}
	if c.largePC {
		if err := c.pushByte(uint8(addr >> 16)); err != nil {
			return err
		}
	}
	return nil
}

func (c *CPU) popReturnAddr() (uint32, error) {
	var ext uint8
	if c.largePC {
		var err error
		ext, err = c.popByte()
		if err != nil {
			return 0, err
		}
	}
	hi, err := c.popByte()
	if err != nil {
		return 0, err
	}
	lo, err := c.popByte()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<8 | uint32(ext)<<16, nil
}

func (c *CPU) relTarget(rel int32) uint32 {
	return c.maskPC(uint32(int64(c.PC) + int64(rel)))
}

// execControlFlow implements every jump, call, return and conditional
// branch. opPC only serves as the PC reported by the EIJMP/EICALL errors;
// control-flow targets are all computed relative to c.PC, which Step has
// already advanced past the opcode word(s) by the time execute is called.
func (c *CPU) execControlFlow(inst *decode.Instruction, opPC uint32) error {
	switch inst.Mnemonic {
	case decode.RJMP:
		c.PC = c.relTarget(inst.Rel)
		c.cycles++

	case decode.RCALL:
		target := c.relTarget(inst.Rel)
		if err := c.pushReturnAddr(c.PC); err != nil {
			return err
		}
		c.PC = target

	case decode.JMP:
		c.PC = c.maskPC(inst.K)
		c.cycles++

	case decode.CALL:
		target := c.maskPC(inst.K)
		if err := c.pushReturnAddr(c.PC); err != nil {
			return err
		}
		c.PC = target

	case decode.IJMP:
		c.PC = c.maskPC(uint32(c.Z()))
		c.cycles++

	case decode.EIJMP:
		if !c.largePC {
			return &OpError{Kind: KindInvalidOperation, PC: opPC, Detail: "EIJMP requires a 22-bit PC"}
		}
		c.PC = c.maskPC(uint32(c.EIND)<<16 | uint32(c.Z()))
		c.cycles++

	case decode.ICALL:
		target := c.maskPC(uint32(c.Z()))
		if err := c.pushReturnAddr(c.PC); err != nil {
			return err
		}
		c.PC = target

	case decode.EICALL:
		if !c.largePC {
			return &OpError{Kind: KindInvalidOperation, PC: opPC, Detail: "EICALL requires a 22-bit PC"}
		}
		target := c.maskPC(uint32(c.EIND)<<16 | uint32(c.Z()))
		if err := c.pushReturnAddr(c.PC); err != nil {
			return err
		}
		c.PC = target

	case decode.RET:
		addr, err := c.popReturnAddr()
		if err != nil {
			return err
		}
		c.PC = c.maskPC(addr)
		c.cycles++

	case decode.RETI:
		addr, err := c.popReturnAddr()
		if err != nil {
			return err
		}
		c.PC = c.maskPC(addr)
		c.flagI = true
		c.cycles++

	case decode.BRBS:
		if c.testSREGBit(inst.Bit) {
			c.PC = c.relTarget(inst.Rel)
			c.cycles++
		}

	case decode.BRBC:
		if !c.testSREGBit(inst.Bit) {
			c.PC = c.relTarget(inst.Rel)
			c.cycles++
		}
	}

	return nil
}
