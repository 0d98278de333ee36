package cpu

import "github.com/KRousselFr/EmulatorAVR8/decode"

// execSkip implements CPSE, SBRC, SBRS, SBIC and SBIS. When the condition
// holds, the following instruction's word(s) are fetched and discarded
// rather than executed; reading them charges the same per-word cost a
// normal fetch would, which is what gives the two- and three-cycle skip
// costs without any extra bookkeeping.
func (c *CPU) execSkip(inst *decode.Instruction) error {
	var shouldSkip bool

	switch inst.Mnemonic {
	case decode.CPSE:
		shouldSkip = c.R[inst.Rd] == c.R[inst.Rr]

	case decode.SBRC:
		shouldSkip = !bit(c.R[inst.Rr], uint(inst.Bit))

	case decode.SBRS:
		shouldSkip = bit(c.R[inst.Rr], uint(inst.Bit))

	case decode.SBIC:
		v, err := c.readIOByte(inst.IOAddr)
		if err != nil {
			return err
		}
		shouldSkip = !bit(v, uint(inst.Bit))

	case decode.SBIS:
		v, err := c.readIOByte(inst.IOAddr)
		if err != nil {
			return err
		}
		shouldSkip = bit(v, uint(inst.Bit))
	}

	if !shouldSkip {
		return nil
	}

	op1, err := c.readProgWord(c.PC)
	if err != nil {
		return err
	}
	c.PC = c.maskPC(c.PC + 1)

	if decode.IsLong(op1) {
		if _, err := c.readProgWord(c.PC); err != nil {
			return err
		}
		c.PC = c.maskPC(c.PC + 1)
	}

	return nil
}
