package decode

// Decode classifies op1 (and op2, when IsLong(op1) holds) into an
// Instruction. Decode never fails: an opcode the table does not recognize
// comes back as Mnemonic Unknown with Words set from IsLong(op1), so a
// caller can still advance past it correctly.
//
// The dispatch follows the high nibble first, then narrower fields, mirroring
// the instruction-set manual's own layout rather than a flat lookup table —
// the table is large enough that the hierarchy is what keeps it readable.
func Decode(op1, op2 uint16) *Instruction {
	words := uint8(1)
	if IsLong(op1) {
		words = 2
	}
	inst := &Instruction{Mnemonic: Unknown, Words: words, Op1: op1, Op2: op2}

	switch op1 >> 12 {
	case 0x0:
		decode0(op1, inst)
	case 0x1:
		decode1(op1, inst)
	case 0x2:
		decode2(op1, inst)
	case 0x3:
		inst.Mnemonic = CPI
		inst.Rd = RdShort(op1)
		inst.K = uint32(K8(op1))
	case 0x4:
		inst.Mnemonic = SBCI
		inst.Rd = RdShort(op1)
		inst.K = uint32(K8(op1))
	case 0x5:
		inst.Mnemonic = SUBI
		inst.Rd = RdShort(op1)
		inst.K = uint32(K8(op1))
	case 0x6:
		inst.Mnemonic = ORI
		inst.Rd = RdShort(op1)
		inst.K = uint32(K8(op1))
	case 0x7:
		inst.Mnemonic = ANDI
		inst.Rd = RdShort(op1)
		inst.K = uint32(K8(op1))
	case 0x8, 0xA:
		decode8A(op1, inst)
	case 0x9:
		decode9(op1, op2, inst)
	case 0xB:
		decodeB(op1, inst)
	case 0xC:
		inst.Mnemonic = RJMP
		inst.Rel = Rel12(op1)
	case 0xD:
		inst.Mnemonic = RCALL
		inst.Rel = Rel12(op1)
	case 0xE:
		inst.Mnemonic = LDI
		inst.Rd = RdShort(op1)
		inst.K = uint32(K8(op1))
	case 0xF:
		decodeF(op1, inst)
	}

	return inst
}

func decode0(op1 uint16, inst *Instruction) {
	switch op1 & 0xFC00 {
	case 0x0000:
		switch op1 & 0x0300 {
		case 0x0000:
			if op1 == 0x0000 {
				inst.Mnemonic = NOP
			}
		case 0x0100:
			inst.Mnemonic = MOVW
			inst.Rd = RdPairEven(op1)
			inst.Rr = RrPairEven(op1)
		case 0x0200:
			inst.Mnemonic = MULS
			inst.Rd = RdShort(op1)
			inst.Rr = RrShort(op1)
		case 0x0300:
			inst.Rd = RdTiny(op1)
			inst.Rr = RrTiny(op1)
			switch {
			case op1&0x0088 == 0x0000:
				inst.Mnemonic = MULSU
			case op1&0x0088 == 0x0008:
				inst.Mnemonic = FMUL
			case op1&0x0088 == 0x0080:
				inst.Mnemonic = FMULS
			default:
				inst.Mnemonic = FMULSU
			}
		}
	case 0x0400:
		inst.Mnemonic = CPC
		inst.Rd = RdFull(op1)
		inst.Rr = RrFull(op1)
	case 0x0800:
		inst.Mnemonic = SBC
		inst.Rd = RdFull(op1)
		inst.Rr = RrFull(op1)
	case 0x0C00:
		inst.Mnemonic = ADD
		inst.Rd = RdFull(op1)
		inst.Rr = RrFull(op1)
	}
}

func decode1(op1 uint16, inst *Instruction) {
	inst.Rd = RdFull(op1)
	inst.Rr = RrFull(op1)
	switch op1 & 0xFC00 {
	case 0x1000:
		inst.Mnemonic = CPSE
	case 0x1400:
		inst.Mnemonic = CP
	case 0x1800:
		inst.Mnemonic = SUB
	case 0x1C00:
		inst.Mnemonic = ADC
	}
}

func decode2(op1 uint16, inst *Instruction) {
	inst.Rd = RdFull(op1)
	inst.Rr = RrFull(op1)
	switch op1 & 0xFC00 {
	case 0x2000:
		inst.Mnemonic = AND
	case 0x2400:
		inst.Mnemonic = EOR
	case 0x2800:
		inst.Mnemonic = OR
	case 0x2C00:
		inst.Mnemonic = MOV
	}
}

// decode8A handles the LDD/STD-via-Y-or-Z-with-displacement group, which
// spans high nibbles 0x8 and 0xA (bit 13, part of the displacement field,
// is what separates the two nibbles).
func decode8A(op1 uint16, inst *Instruction) {
	reg := PtrZ
	if op1&0x0008 != 0 {
		reg = PtrY
	}
	disp := Displacement(op1)
	addr := Addressing{Reg: reg, Mode: ModeDisplaced, Disp: disp}
	if op1&0x0200 != 0 {
		inst.Mnemonic = ST
		inst.Rr = RdFull(op1)
		inst.Addr = addr
	} else {
		inst.Mnemonic = LD
		inst.Rd = RdFull(op1)
		inst.Addr = addr
	}
}

func decode9(op1, op2 uint16, inst *Instruction) {
	// LDS/STS (long) and JMP/CALL (long) are identified by IsLong, checked
	// by the caller via inst.Words; here we still need to tell them apart.
	if op1&0xFC0F == 0x9000 {
		inst.K = uint32(op2)
		if op1&0x0200 != 0 {
			inst.Mnemonic = STS
			inst.Rr = RdFull(op1)
		} else {
			inst.Mnemonic = LDS
			inst.Rd = RdFull(op1)
		}
		return
	}
	if op1&0xFE0C == 0x940C {
		inst.K = Abs22(op1, op2)
		if op1&0x0002 != 0 {
			inst.Mnemonic = CALL
		} else {
			inst.Mnemonic = JMP
		}
		return
	}

	switch {
	case op1&0xFE00 == 0x9000:
		decode9Load(op1, inst)
	case op1&0xFE00 == 0x9200:
		decode9Store(op1, inst)
	case op1&0xFE00 == 0x9400:
		decode9ALUAndFixed(op1, inst)
	case op1&0xFF00 == 0x9600:
		inst.Mnemonic = ADIW
		inst.Rd = RdPairTiny(op1)
		inst.K = uint32(K6(op1))
	case op1&0xFF00 == 0x9700:
		inst.Mnemonic = SBIW
		inst.Rd = RdPairTiny(op1)
		inst.K = uint32(K6(op1))
	case op1&0xFF00 == 0x9800:
		inst.Mnemonic = CBI
		inst.IOAddr = 0x0020 + uint16(IOAddr5(op1))
		inst.Bit = BitNo(op1)
	case op1&0xFF00 == 0x9900:
		inst.Mnemonic = SBIC
		inst.IOAddr = 0x0020 + uint16(IOAddr5(op1))
		inst.Bit = BitNo(op1)
	case op1&0xFF00 == 0x9A00:
		inst.Mnemonic = SBI
		inst.IOAddr = 0x0020 + uint16(IOAddr5(op1))
		inst.Bit = BitNo(op1)
	case op1&0xFF00 == 0x9B00:
		inst.Mnemonic = SBIS
		inst.IOAddr = 0x0020 + uint16(IOAddr5(op1))
		inst.Bit = BitNo(op1)
	case op1&0xFC00 == 0x9C00:
		inst.Mnemonic = MUL
		inst.Rd = RdFull(op1)
		inst.Rr = RrFull(op1)
	}
}

func decode9Load(op1 uint16, inst *Instruction) {
	rd := RdFull(op1)
	switch op1 & 0x000F {
	case 0x1:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePostInc}
	case 0x2:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePreDec}
	case 0x4:
		inst.Mnemonic = LPM
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModeNone}
	case 0x5:
		inst.Mnemonic = LPM
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePostInc}
	case 0x6:
		inst.Mnemonic = ELPM
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModeNone}
	case 0x7:
		inst.Mnemonic = ELPM
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePostInc}
	case 0x9:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrY, Mode: ModePostInc}
	case 0xA:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrY, Mode: ModePreDec}
	case 0xC:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrX, Mode: ModeNone}
	case 0xD:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrX, Mode: ModePostInc}
	case 0xE:
		inst.Mnemonic = LD
		inst.Rd = rd
		inst.Addr = Addressing{Reg: PtrX, Mode: ModePreDec}
	case 0xF:
		inst.Mnemonic = POP
		inst.Rd = rd
	}
}

func decode9Store(op1 uint16, inst *Instruction) {
	rr := RdFull(op1)
	switch op1 & 0x000F {
	case 0x1:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePostInc}
	case 0x2:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePreDec}
	case 0x4:
		inst.Mnemonic = XCH
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModeNone}
	case 0x5:
		inst.Mnemonic = LAS
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModeNone}
	case 0x6:
		inst.Mnemonic = LAC
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModeNone}
	case 0x7:
		inst.Mnemonic = LAT
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModeNone}
	case 0x9:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrY, Mode: ModePostInc}
	case 0xA:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrY, Mode: ModePreDec}
	case 0xC:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrX, Mode: ModeNone}
	case 0xD:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrX, Mode: ModePostInc}
	case 0xE:
		inst.Mnemonic = ST
		inst.Rr = rr
		inst.Addr = Addressing{Reg: PtrX, Mode: ModePreDec}
	case 0xF:
		inst.Mnemonic = PUSH
		inst.Rr = rr
	}
}

// decode9ALUAndFixed covers opcodes 0x9400-0x95FF: the operand-less fixed
// instructions, DES, BSET/BCLR, and the single-register ALU family
// (COM/NEG/SWAP/INC/ASR/LSR/ROR/DEC).
func decode9ALUAndFixed(op1 uint16, inst *Instruction) {
	switch op1 {
	case 0x9409:
		inst.Mnemonic = IJMP
		return
	case 0x9419:
		inst.Mnemonic = EIJMP
		return
	case 0x9508:
		inst.Mnemonic = RET
		return
	case 0x9509:
		inst.Mnemonic = ICALL
		return
	case 0x9518:
		inst.Mnemonic = RETI
		return
	case 0x9519:
		inst.Mnemonic = EICALL
		return
	case 0x9588:
		inst.Mnemonic = SLEEP
		return
	case 0x9598:
		inst.Mnemonic = BREAK
		return
	case 0x95A8:
		inst.Mnemonic = WDR
		return
	case 0x95C8:
		inst.Mnemonic = LPM
		return
	case 0x95D8:
		inst.Mnemonic = ELPM
		return
	case 0x95E8:
		inst.Mnemonic = SPM
		return
	case 0x95F8:
		inst.Mnemonic = SPM
		inst.Addr = Addressing{Reg: PtrZ, Mode: ModePostInc}
		return
	}

	if op1&0xFF0F == 0x940B {
		inst.Mnemonic = DES
		inst.K = uint32((op1 >> 4) & 0x0F)
		return
	}
	if op1&0xFF8F == 0x9408 {
		inst.Mnemonic = BSET
		inst.Bit = uint8((op1 >> 4) & 0x07)
		return
	}
	if op1&0xFF8F == 0x9488 {
		inst.Mnemonic = BCLR
		inst.Bit = uint8((op1 >> 4) & 0x07)
		return
	}

	rd := RdFull(op1)
	switch op1 & 0x000F {
	case 0x0:
		inst.Mnemonic = COM
		inst.Rd = rd
	case 0x1:
		inst.Mnemonic = NEG
		inst.Rd = rd
	case 0x2:
		inst.Mnemonic = SWAP
		inst.Rd = rd
	case 0x3:
		inst.Mnemonic = INC
		inst.Rd = rd
	case 0x5:
		inst.Mnemonic = ASR
		inst.Rd = rd
	case 0x6:
		inst.Mnemonic = LSR
		inst.Rd = rd
	case 0x7:
		inst.Mnemonic = ROR
		inst.Rd = rd
	case 0xA:
		inst.Mnemonic = DEC
		inst.Rd = rd
	}
}

func decodeB(op1 uint16, inst *Instruction) {
	addr := 0x0020 + uint16(IOAddr6(op1))
	if op1&0x0800 != 0 {
		inst.Mnemonic = OUT
		inst.Rr = RdFull(op1)
		inst.IOAddr = addr
	} else {
		inst.Mnemonic = IN
		inst.Rd = RdFull(op1)
		inst.IOAddr = addr
	}
}

func decodeF(op1 uint16, inst *Instruction) {
	switch (op1 >> 10) & 0x03 {
	case 0x0:
		inst.Mnemonic = BRBS
		inst.Bit = BitNo(op1)
		inst.Rel = Rel7(op1)
	case 0x1:
		inst.Mnemonic = BRBC
		inst.Bit = BitNo(op1)
		inst.Rel = Rel7(op1)
	case 0x2:
		inst.Rd = RdFull(op1)
		inst.Bit = BitNo(op1)
		if op1&0x0200 != 0 {
			inst.Mnemonic = BST
		} else {
			inst.Mnemonic = BLD
		}
	case 0x3:
		inst.Rr = RdFull(op1)
		inst.Bit = BitNo(op1)
		if op1&0x0200 != 0 {
			inst.Mnemonic = SBRS
		} else {
			inst.Mnemonic = SBRC
		}
	}
}
