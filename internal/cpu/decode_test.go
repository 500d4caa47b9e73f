package cpu

import "testing"

func TestDecode_UndefinedSet(t *testing.T) {
	undefined := map[uint8]bool{
		0x76: true, 0xCB: true,
		0xD3: true, 0xDB: true, 0xDD: true,
		0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
		0xF4: true, 0xFC: true, 0xFD: true,
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		_, ok := Decode(opcode, false)
		if ok == undefined[opcode] {
			t.Errorf("unprefixed 0x%02X: expected defined=%t, got %t", opcode, !undefined[opcode], ok)
		}
		if _, ok := Decode(opcode, true); !ok {
			t.Errorf("prefixed 0x%02X: expected instruction, got undefined", opcode)
		}
	}
}

func TestDecode_Instructions(t *testing.T) {
	tests := []struct {
		opcode   uint8
		prefixed bool
		want     Instruction
	}{
		{0x00, false, Instruction{Op: OpNOP}},
		{0x10, false, Instruction{Op: OpStop}},
		{0x07, false, Instruction{Op: OpLeftShift, Shift: ShiftRotateZ, R: RegA}},
		{0x1F, false, Instruction{Op: OpRightShift, Shift: ShiftCarryZ, R: RegA}},
		{0x22, false, Instruction{Op: OpLoadMemR, Pair: PairHL, R: RegA, Post: PostIncrement}},
		{0x3A, false, Instruction{Op: OpLoadRMem, R: RegA, Pair: PairHL, Post: PostDecrement}},
		{0x36, false, Instruction{Op: OpLoadMemN, Pair: PairHL}},
		{0x41, false, Instruction{Op: OpLoadRR, R: RegB, R2: RegC}},
		{0x46, false, Instruction{Op: OpLoadRMem, R: RegB, Pair: PairHL}},
		{0x77, false, Instruction{Op: OpLoadMemR, Pair: PairHL, R: RegA}},
		{0x8E, false, Instruction{Op: OpADDMem, Pair: PairHL, Carry: true}},
		{0x9A, false, Instruction{Op: OpSUB, R: RegD, Carry: true}},
		{0xBF, false, Instruction{Op: OpCP, R: RegA}},
		{0xC0, false, Instruction{Op: OpReturn, Cond: CondNZ}},
		{0xD8, false, Instruction{Op: OpReturn, Cond: CondC}},
		{0xD9, false, Instruction{Op: OpReturnInterrupt}},
		{0xDA, false, Instruction{Op: OpJumpNN, Cond: CondC}},
		{0xCC, false, Instruction{Op: OpCallNN, Cond: CondZ}},
		{0x30, false, Instruction{Op: OpJumpRN, Cond: CondNC}},
		{0xDF, false, Instruction{Op: OpCallI, Vector: 0x18}},
		{0xDE, false, Instruction{Op: OpSUBN, Carry: true}},
		{0xE2, false, Instruction{Op: OpLoadHighRR, R: RegC, R2: RegA}},
		{0xF2, false, Instruction{Op: OpLoadRHighR, R: RegA, R2: RegC}},
		{0xF1, false, Instruction{Op: OpPopRR, Pair: PairAF}},
		{0xF5, false, Instruction{Op: OpPushRR, Pair: PairAF}},
		{0xF8, false, Instruction{Op: OpLoadRRSPN, Pair: PairHL}},
		{0xFB, false, Instruction{Op: OpEI}},
		{0x00, true, Instruction{Op: OpLeftShift, Shift: ShiftRotate, R: RegB}},
		{0x1E, true, Instruction{Op: OpRightShiftMem, Shift: ShiftCarry, Pair: PairHL}},
		{0x2F, true, Instruction{Op: OpRightShift, Shift: ShiftArithmetic, R: RegA}},
		{0x36, true, Instruction{Op: OpSwapMem, Pair: PairHL}},
		{0x3F, true, Instruction{Op: OpRightShift, Shift: ShiftLogical, R: RegA}},
		{0x46, true, Instruction{Op: OpBitCopyMem, Bit: 0, Pair: PairHL}},
		{0x7C, true, Instruction{Op: OpBitCopy, Bit: 7, R: RegH}},
		{0x9D, true, Instruction{Op: OpReset, Bit: 3, R: RegL}},
		{0xFE, true, Instruction{Op: OpSetMem, Bit: 7, Pair: PairHL}},
	}
	for _, tt := range tests {
		got, ok := Decode(tt.opcode, tt.prefixed)
		if !ok {
			t.Errorf("0x%02X (prefixed %t): expected %s, got undefined", tt.opcode, tt.prefixed, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("0x%02X (prefixed %t): expected %s, got %s", tt.opcode, tt.prefixed, tt.want, got)
		}
	}
}

func TestHandlers(t *testing.T) {
	for op := opUndefined + 1; op < opCount; op++ {
		if handlers[op] == nil {
			t.Errorf("no handler for %s", op)
		}
	}
}

func TestInstruction_String(t *testing.T) {
	tests := map[Instruction]string{
		{Op: OpLoadRR, R: RegB, R2: RegC}:                                  "LoadRR(B, C)",
		{Op: OpJumpRN, Cond: CondNZ}:                                       "JumpRn(NZ)",
		{Op: OpJumpRN}:                                                     "JumpRn",
		{Op: OpLoadMemR, Pair: PairHL, R: RegA, Post: PostDecrement}:       "LoadMemR(HL-, A)",
		{Op: OpCallI, Vector: 0x38}:                                        "CallI(38H)",
		{Op: OpBitCopyMem, Bit: 3, Pair: PairHL}:                           "BitCopyMem(3, HL)",
		{Op: OpADD, R: RegE, Carry: true}:                                  "ADD(E, true)",
	}
	for ins, want := range tests {
		if got := ins.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
