package cpu

// Prefix is the opcode that selects the prefixed table for
// the following byte.
const Prefix uint8 = 0xCB

var (
	// InstructionSet holds the unprefixed instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// Decode returns the instruction for the given opcode, and
// false if the opcode is undefined. The HALT opcode (0x76)
// and the prefix byte itself are undefined.
func Decode(opcode uint8, prefixed bool) (Instruction, bool) {
	var ins Instruction
	if prefixed {
		ins = InstructionSetCB[opcode]
	} else {
		ins = InstructionSet[opcode]
	}
	return ins, ins.Op != opUndefined
}

// operand order of the 3-bit register field, index 6 is (HL)
var registerField = [8]Reg{RegB, RegC, RegD, RegE, RegH, RegL, 0xFF, RegA}

const hlField = 6

// DefineInstruction defines the instruction for an unprefixed opcode.
func DefineInstruction(opcode uint8, ins Instruction) {
	InstructionSet[opcode] = ins
}

// DefineInstructionCB defines the instruction for a prefixed opcode.
func DefineInstructionCB(opcode uint8, ins Instruction) {
	InstructionSetCB[opcode] = ins
}

func init() {
	defineLoads()
	defineArithmetic()
	defineControl()
	definePrefixed()
}

func defineLoads() {
	// 0x40 - 0x7F - LD r, r'
	for opcode := 0x40; opcode < 0x80; opcode++ {
		dst, src := (opcode>>3)&7, opcode&7
		switch {
		case dst == hlField && src == hlField:
			// HALT
		case src == hlField:
			DefineInstruction(uint8(opcode), Instruction{Op: OpLoadRMem, R: registerField[dst], Pair: PairHL})
		case dst == hlField:
			DefineInstruction(uint8(opcode), Instruction{Op: OpLoadMemR, Pair: PairHL, R: registerField[src]})
		default:
			DefineInstruction(uint8(opcode), Instruction{Op: OpLoadRR, R: registerField[dst], R2: registerField[src]})
		}
	}

	// 0x06, 0x0E ... 0x3E - LD r, d8
	for field := 0; field < 8; field++ {
		opcode := uint8(0x06 + field<<3)
		if field == hlField {
			DefineInstruction(opcode, Instruction{Op: OpLoadMemN, Pair: PairHL})
			continue
		}
		DefineInstruction(opcode, Instruction{Op: OpLoadRN, R: registerField[field]})
	}

	DefineInstruction(0x01, Instruction{Op: OpLoadRRNN, Pair: PairBC})
	DefineInstruction(0x11, Instruction{Op: OpLoadRRNN, Pair: PairDE})
	DefineInstruction(0x21, Instruction{Op: OpLoadRRNN, Pair: PairHL})
	DefineInstruction(0x31, Instruction{Op: OpLoadSPNN})

	DefineInstruction(0x02, Instruction{Op: OpLoadMemR, Pair: PairBC, R: RegA})
	DefineInstruction(0x12, Instruction{Op: OpLoadMemR, Pair: PairDE, R: RegA})
	DefineInstruction(0x22, Instruction{Op: OpLoadMemR, Pair: PairHL, R: RegA, Post: PostIncrement})
	DefineInstruction(0x32, Instruction{Op: OpLoadMemR, Pair: PairHL, R: RegA, Post: PostDecrement})
	DefineInstruction(0x0A, Instruction{Op: OpLoadRMem, R: RegA, Pair: PairBC})
	DefineInstruction(0x1A, Instruction{Op: OpLoadRMem, R: RegA, Pair: PairDE})
	DefineInstruction(0x2A, Instruction{Op: OpLoadRMem, R: RegA, Pair: PairHL, Post: PostIncrement})
	DefineInstruction(0x3A, Instruction{Op: OpLoadRMem, R: RegA, Pair: PairHL, Post: PostDecrement})

	DefineInstruction(0x08, Instruction{Op: OpLoadNNSP})
	DefineInstruction(0xE0, Instruction{Op: OpLoadHighNR, R: RegA})
	DefineInstruction(0xF0, Instruction{Op: OpLoadRHighN, R: RegA})
	DefineInstruction(0xE2, Instruction{Op: OpLoadHighRR, R: RegC, R2: RegA})
	DefineInstruction(0xF2, Instruction{Op: OpLoadRHighR, R: RegA, R2: RegC})
	DefineInstruction(0xEA, Instruction{Op: OpLoadNNR, R: RegA})
	DefineInstruction(0xFA, Instruction{Op: OpLoadRNN, R: RegA})
	DefineInstruction(0xF8, Instruction{Op: OpLoadRRSPN, Pair: PairHL})
	DefineInstruction(0xF9, Instruction{Op: OpLoadSPRR, Pair: PairHL})

	for i, pair := range []Pair{PairBC, PairDE, PairHL, PairAF} {
		DefineInstruction(uint8(0xC1+i<<4), Instruction{Op: OpPopRR, Pair: pair})
		DefineInstruction(uint8(0xC5+i<<4), Instruction{Op: OpPushRR, Pair: pair})
	}
}

func defineArithmetic() {
	// 0x80 - 0xBF - ALU A, r
	type alu struct {
		reg, mem, imm Op
		carry         bool
	}
	ops := [8]alu{
		{OpADD, OpADDMem, OpADDN, false},
		{OpADD, OpADDMem, OpADDN, true},
		{OpSUB, OpSUBMem, OpSUBN, false},
		{OpSUB, OpSUBMem, OpSUBN, true},
		{OpAND, OpANDMem, OpANDN, false},
		{OpXOR, OpXORMem, OpXORN, false},
		{OpOR, OpORMem, OpORN, false},
		{OpCP, OpCPMem, OpCPN, false},
	}
	for opcode := 0x80; opcode < 0xC0; opcode++ {
		op, src := ops[(opcode>>3)&7], opcode&7
		if src == hlField {
			DefineInstruction(uint8(opcode), Instruction{Op: op.mem, Pair: PairHL, Carry: op.carry})
		} else {
			DefineInstruction(uint8(opcode), Instruction{Op: op.reg, R: registerField[src], Carry: op.carry})
		}
	}
	// 0xC6, 0xCE ... 0xFE - ALU A, d8
	for i, op := range ops {
		DefineInstruction(uint8(0xC6+i<<3), Instruction{Op: op.imm, Carry: op.carry})
	}

	// 0x04/0x05, 0x0C/0x0D ... - INC r, DEC r
	for field := 0; field < 8; field++ {
		inc, dec := uint8(0x04+field<<3), uint8(0x05+field<<3)
		if field == hlField {
			DefineInstruction(inc, Instruction{Op: OpINCMem, Pair: PairHL})
			DefineInstruction(dec, Instruction{Op: OpDECMem, Pair: PairHL})
			continue
		}
		DefineInstruction(inc, Instruction{Op: OpINC, R: registerField[field]})
		DefineInstruction(dec, Instruction{Op: OpDEC, R: registerField[field]})
	}

	for i, pair := range []Pair{PairBC, PairDE, PairHL} {
		DefineInstruction(uint8(0x03+i<<4), Instruction{Op: OpINC16, Pair: pair})
		DefineInstruction(uint8(0x0B+i<<4), Instruction{Op: OpDEC16, Pair: pair})
		DefineInstruction(uint8(0x09+i<<4), Instruction{Op: OpADD16, Pair: pair})
	}
	DefineInstruction(0x33, Instruction{Op: OpINCSP})
	DefineInstruction(0x3B, Instruction{Op: OpDECSP})
	DefineInstruction(0x39, Instruction{Op: OpADD16SP})
	DefineInstruction(0xE8, Instruction{Op: OpADDSPN})

	DefineInstruction(0x07, Instruction{Op: OpLeftShift, Shift: ShiftRotateZ, R: RegA})
	DefineInstruction(0x0F, Instruction{Op: OpRightShift, Shift: ShiftRotateZ, R: RegA})
	DefineInstruction(0x17, Instruction{Op: OpLeftShift, Shift: ShiftCarryZ, R: RegA})
	DefineInstruction(0x1F, Instruction{Op: OpRightShift, Shift: ShiftCarryZ, R: RegA})

	DefineInstruction(0x27, Instruction{Op: OpDAA})
	DefineInstruction(0x2F, Instruction{Op: OpCPL})
	DefineInstruction(0x37, Instruction{Op: OpSCF})
	DefineInstruction(0x3F, Instruction{Op: OpCCF})
}

func defineControl() {
	DefineInstruction(0x00, Instruction{Op: OpNOP})
	DefineInstruction(0x10, Instruction{Op: OpStop})
	DefineInstruction(0xF3, Instruction{Op: OpDI})
	DefineInstruction(0xFB, Instruction{Op: OpEI})

	DefineInstruction(0x18, Instruction{Op: OpJumpRN})
	DefineInstruction(0xC3, Instruction{Op: OpJumpNN})
	DefineInstruction(0xCD, Instruction{Op: OpCallNN})
	DefineInstruction(0xC9, Instruction{Op: OpReturn})
	DefineInstruction(0xD9, Instruction{Op: OpReturnInterrupt})
	DefineInstruction(0xE9, Instruction{Op: OpJumpHL})

	// NZ, Z, NC, C in encoding order
	for i, cond := range []Cond{CondNZ, CondZ, CondNC, CondC} {
		DefineInstruction(uint8(0x20+i<<3), Instruction{Op: OpJumpRN, Cond: cond})
		DefineInstruction(uint8(0xC0+i<<3), Instruction{Op: OpReturn, Cond: cond})
		DefineInstruction(uint8(0xC2+i<<3), Instruction{Op: OpJumpNN, Cond: cond})
		DefineInstruction(uint8(0xC4+i<<3), Instruction{Op: OpCallNN, Cond: cond})
	}

	// RST 00H ... RST 38H
	for i := 0; i < 8; i++ {
		DefineInstruction(uint8(0xC7+i<<3), Instruction{Op: OpCallI, Vector: uint16(i << 3)})
	}
}

func definePrefixed() {
	type shift struct {
		op, mem Op
		shift   ShiftOp
	}
	shifts := [8]shift{
		{OpLeftShift, OpLeftShiftMem, ShiftRotate},       // RLC
		{OpRightShift, OpRightShiftMem, ShiftRotate},     // RRC
		{OpLeftShift, OpLeftShiftMem, ShiftCarry},        // RL
		{OpRightShift, OpRightShiftMem, ShiftCarry},      // RR
		{OpLeftShift, OpLeftShiftMem, ShiftArithmetic},   // SLA
		{OpRightShift, OpRightShiftMem, ShiftArithmetic}, // SRA
		{OpSwap, OpSwapMem, 0},                           // SWAP
		{OpRightShift, OpRightShiftMem, ShiftLogical},    // SRL
	}
	bits := [4]shift{
		1: {op: OpBitCopy, mem: OpBitCopyMem},
		2: {op: OpReset, mem: OpResetMem},
		3: {op: OpSet, mem: OpSetMem},
	}

	for opcode := 0; opcode < 0x100; opcode++ {
		group, y, z := opcode>>6, uint8(opcode>>3)&7, opcode&7

		var s shift
		ins := Instruction{}
		if group == 0 {
			s = shifts[y]
			ins.Shift = s.shift
		} else {
			s = bits[group]
			ins.Bit = y
		}

		if z == hlField {
			ins.Op, ins.Pair = s.mem, PairHL
		} else {
			ins.Op, ins.R = s.op, registerField[z]
		}
		DefineInstructionCB(uint8(opcode), ins)
	}
}
