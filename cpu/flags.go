package cpu

func bit(v uint8, n uint) bool { return v&(1<<n) != 0 }

// setNZ sets N and Z from an 8-bit result. S is never stored; it is always
// derived as N xor V by Sign().
func (c *CPU) setNZ(res uint8) {
	c.flagN = bit(res, 7)
	c.flagZ = res == 0
}

// addFlags computes H, V and C for ADD/ADC given the operands and the
// 8-bit result, per the half-carry/overflow/carry truth tables in the
// instruction-set manual.
func addFlags(rd, rr, res uint8) (h, v, cy bool) {
	rd3, rr3, res3 := bit(rd, 3), bit(rr, 3), bit(res, 3)
	rd7, rr7, res7 := bit(rd, 7), bit(rr, 7), bit(res, 7)
	h = (rd3 && rr3) || (rr3 && !res3) || (!res3 && rd3)
	v = (rd7 && rr7 && !res7) || (!rd7 && !rr7 && res7)
	cy = (rd7 && rr7) || (rr7 && !res7) || (!res7 && rd7)
	return
}

// subFlags computes H, V and C for SUB/SUBI/CP/CPI/SBC/SBCI/CPC/NEG given
// the operands (rd is 0 for NEG) and the 8-bit result.
func subFlags(rd, rr, res uint8) (h, v, cy bool) {
	rd3, rr3, res3 := bit(rd, 3), bit(rr, 3), bit(res, 3)
	rd7, rr7, res7 := bit(rd, 7), bit(rr, 7), bit(res, 7)
	h = (!rd3 && rr3) || (rr3 && res3) || (res3 && !rd3)
	v = (rd7 && !rr7 && !res7) || (!rd7 && rr7 && res7)
	cy = (!rd7 && rr7) || (rr7 && res7) || (res7 && !rd7)
	return
}
