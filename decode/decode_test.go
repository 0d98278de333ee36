package decode

import "testing"

func TestBitFieldExtractors(t *testing.T) {
	cases := []struct {
		name string
		op   uint16
		want uint8
		got  func(uint16) uint8
	}{
		{"RdFull", 0x0F01, 16, RdFull},
		{"RrFull", 0x0F01, 17, RrFull},
		{"RdShort", 0xE0F0, 31, RdShort},
		{"RdTiny", 0x0300, 16, RdTiny},
		{"RrTiny", 0x0300, 16, RrTiny},
	}
	for _, c := range cases {
		if got := c.got(c.op); got != c.want {
			t.Errorf("%s(%#04x) = %d, want %d", c.name, c.op, got, c.want)
		}
	}
}

func TestK8RoundTrip(t *testing.T) {
	// LDI R16, 0xAB -> 0xE00B | (0xA<<8) = 0xEA0B; build every K directly from the formula.
	for k := 0; k < 256; k++ {
		op := uint16(0xE000) | uint16((k&0xF0)<<4) | uint16(k&0x0F)
		if got := K8(op); got != uint8(k) {
			t.Fatalf("K8 round trip failed for k=%#02x: got %#02x", k, got)
		}
	}
}

func TestRel12SignExtension(t *testing.T) {
	if got := Rel12(0xC000); got != 0 {
		t.Errorf("Rel12(0xC000) = %d, want 0", got)
	}
	if got := Rel12(0xCFFF); got != -1 {
		t.Errorf("Rel12(0xCFFF) = %d, want -1", got)
	}
	if got := Rel12(0xC800); got != -2048 {
		t.Errorf("Rel12(0xC800) = %d, want -2048", got)
	}
	if got := Rel12(0xC7FF); got != 2047 {
		t.Errorf("Rel12(0xC7FF) = %d, want 2047", got)
	}
}

func TestIsLong(t *testing.T) {
	cases := map[uint16]bool{
		0x9000: true,  // LDS R0, k
		0x91F0: true,  // LDS R31, k
		0x9200: true,  // STS k, R0
		0x940C: true,  // JMP
		0x940D: true,  // JMP (address bit 16 set)
		0x0000: false, // NOP
		0x9001: false, // LD R0, Z+ (not long: low nibble != 0)
		0x9508: false, // RET
	}
	for op, want := range cases {
		if got := IsLong(op); got != want {
			t.Errorf("IsLong(%#04x) = %v, want %v", op, got, want)
		}
	}
}

func TestDecodeNOP(t *testing.T) {
	inst := Decode(0x0000, 0)
	if inst.Mnemonic != NOP || inst.Words != 1 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeADD(t *testing.T) {
	// ADD R16,R17 -> 0000 11rd dddd rrrr with Rd=16,Rr=17.
	inst := Decode(0x0F01, 0)
	if inst.Mnemonic != ADD {
		t.Fatalf("mnemonic = %v, want ADD", inst.Mnemonic)
	}
	if inst.Rd != 16 || inst.Rr != 17 {
		t.Fatalf("Rd=%d Rr=%d, want 16,17", inst.Rd, inst.Rr)
	}
}

func TestDecodeADIW(t *testing.T) {
	inst := Decode(0x9601, 0)
	if inst.Mnemonic != ADIW {
		t.Fatalf("mnemonic = %v, want ADIW", inst.Mnemonic)
	}
	if inst.Rd != 24 || inst.K != 1 {
		t.Fatalf("Rd=%d K=%d, want 24,1", inst.Rd, inst.K)
	}
}

func TestDecodeLDSLong(t *testing.T) {
	inst := Decode(0x9100, 0x1234)
	if inst.Mnemonic != LDS || inst.Words != 2 {
		t.Fatalf("got %+v", inst)
	}
	if inst.Rd != 16 || inst.K != 0x1234 {
		t.Fatalf("Rd=%d K=%#04x, want 16,0x1234", inst.Rd, inst.K)
	}
}

func TestDecodeJMPCALL(t *testing.T) {
	jmp := Decode(0x940C, 0x0000)
	if jmp.Mnemonic != JMP || jmp.Words != 2 {
		t.Fatalf("got %+v", jmp)
	}
	call := Decode(0x940E, 0x0000)
	if call.Mnemonic != CALL {
		t.Fatalf("got %+v", call)
	}
}

func TestDecodeFixedOpcodes(t *testing.T) {
	cases := map[uint16]Mnemonic{
		0x9409: IJMP, 0x9419: EIJMP,
		0x9508: RET, 0x9509: ICALL, 0x9518: RETI, 0x9519: EICALL,
		0x9588: SLEEP, 0x9598: BREAK, 0x95A8: WDR,
		0x95C8: LPM, 0x95D8: ELPM, 0x95E8: SPM, 0x95F8: SPM,
	}
	for op, want := range cases {
		inst := Decode(op, 0)
		if inst.Mnemonic != want {
			t.Errorf("Decode(%#04x) = %v, want %v", op, inst.Mnemonic, want)
		}
	}
}

func TestDecodeBSETBCLR(t *testing.T) {
	// SEC = BSET 0
	inst := Decode(0x9408, 0)
	if inst.Mnemonic != BSET || inst.Bit != 0 {
		t.Fatalf("got %+v", inst)
	}
	// CLI = BCLR 7
	inst = Decode(0x94F8, 0)
	if inst.Mnemonic != BCLR || inst.Bit != 7 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeSingleOperandALU(t *testing.T) {
	cases := map[uint16]Mnemonic{
		0x9400: COM, 0x9401: NEG, 0x9402: SWAP, 0x9403: INC,
		0x9405: ASR, 0x9406: LSR, 0x9407: ROR, 0x940A: DEC,
	}
	for op, want := range cases {
		inst := Decode(op, 0)
		if inst.Mnemonic != want {
			t.Errorf("Decode(%#04x) = %v, want %v", op, inst.Mnemonic, want)
		}
	}
}

func TestDecodeLoadStoreIndirect(t *testing.T) {
	// LD R0, X+ -> 1001 000d dddd 1101, d=0
	inst := Decode(0x900D, 0)
	if inst.Mnemonic != LD || inst.Addr.Reg != PtrX || inst.Addr.Mode != ModePostInc {
		t.Fatalf("got %+v", inst)
	}
	// ST -Y, R0 -> 1001 001r rrrr 1010
	inst = Decode(0x920A, 0)
	if inst.Mnemonic != ST || inst.Addr.Reg != PtrY || inst.Addr.Mode != ModePreDec {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeDisplacedLoadStore(t *testing.T) {
	// LDD R0, Y+0 -> 1000 0000 0000 1000 = 0x8008
	inst := Decode(0x8008, 0)
	if inst.Mnemonic != LD || inst.Addr.Reg != PtrY || inst.Addr.Mode != ModeDisplaced || inst.Addr.Disp != 0 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeBranchAndBitInstructions(t *testing.T) {
	inst := Decode(0xF001, 0) // BRBS 1, +0
	if inst.Mnemonic != BRBS || inst.Bit != 1 {
		t.Fatalf("got %+v", inst)
	}
	inst = Decode(0xF401, 0) // BRBC 1, +0
	if inst.Mnemonic != BRBC {
		t.Fatalf("got %+v", inst)
	}
	inst = Decode(0xF800, 0) // BLD R0, 0
	if inst.Mnemonic != BLD {
		t.Fatalf("got %+v", inst)
	}
	inst = Decode(0xFA00, 0) // BST R0, 0
	if inst.Mnemonic != BST {
		t.Fatalf("got %+v", inst)
	}
	inst = Decode(0xFC00, 0) // SBRC R0, 0
	if inst.Mnemonic != SBRC {
		t.Fatalf("got %+v", inst)
	}
	inst = Decode(0xFE00, 0) // SBRS R0, 0
	if inst.Mnemonic != SBRS {
		t.Fatalf("got %+v", inst)
	}
}

// TestDecodeFullTableNeverPanics sweeps every possible opcode word and
// confirms Decode returns an Instruction with a consistent Words field
// for every one of the 65,536 possibilities, mirroring the reference
// disassembly-table exercise.
func TestDecodeFullTableNeverPanics(t *testing.T) {
	count := 0
	for op := 0; op <= 0xFFFF; op++ {
		inst := Decode(uint16(op), 0xABCD)
		if IsLong(uint16(op)) && inst.Words != 2 {
			t.Fatalf("opcode %#04x: IsLong true but Words=%d", op, inst.Words)
		}
		if !IsLong(uint16(op)) && inst.Words != 1 {
			t.Fatalf("opcode %#04x: IsLong false but Words=%d", op, inst.Words)
		}
		if inst.Mnemonic != Unknown {
			count++
		}
	}
	if count == 0 {
		t.Fatal("no opcode in the full sweep was recognized")
	}
}
