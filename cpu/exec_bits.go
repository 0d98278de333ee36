package cpu

import "github.com/KRousselFr/EmulatorAVR8/decode"

// setSREGBit assigns one SREG bit directly, as BSET/BCLR do. Bit 4 is S,
// which this core never stores independently — it is always derived as N
// xor V, so a direct BSET/BCLR on it is a no-op.
func (c *CPU) setSREGBit(n uint8, val bool) {
	switch n {
	case 0:
		c.flagC = val
	case 1:
		c.flagZ = val
	case 2:
		c.flagN = val
	case 3:
		c.flagV = val
	case 5:
		c.flagH = val
	case 6:
		c.flagT = val
	case 7:
		c.flagI = val
	}
}

func (c *CPU) testSREGBit(n uint8) bool { return bit(c.SREG(), uint(n)) }

// execBits implements BLD, BST, BSET, BCLR, CBI and SBI.
func (c *CPU) execBits(inst *decode.Instruction) error {
	switch inst.Mnemonic {
	case decode.BLD:
		if c.flagT {
			c.R[inst.Rd] |= 1 << inst.Bit
		} else {
			c.R[inst.Rd] &^= 1 << inst.Bit
		}

	case decode.BST:
		c.flagT = bit(c.R[inst.Rd], uint(inst.Bit))

	case decode.BSET:
		c.setSREGBit(inst.Bit, true)

	case decode.BCLR:
		c.setSREGBit(inst.Bit, false)

	case decode.CBI:
		// The I/O correction applies once per instruction, not once per
		// internal access: readIOByte absorbs it, writeDataByte is plain.
		v, err := c.readIOByte(inst.IOAddr)
		if err != nil {
			return err
		}
		return c.writeDataByte(inst.IOAddr, v&^(1<<inst.Bit))

	case decode.SBI:
		v, err := c.readIOByte(inst.IOAddr)
		if err != nil {
			return err
		}
		return c.writeDataByte(inst.IOAddr, v|(1<<inst.Bit))
	}

	return nil
}
