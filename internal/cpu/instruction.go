package cpu

import "fmt"

// Op identifies an instruction family. Each family is
// executed by exactly one handler (see handlers).
type Op uint8

const (
	opUndefined Op = iota

	OpNOP
	OpADD     // ADD/ADC A, r
	OpADDMem  // ADD/ADC A, (rr)
	OpADDN    // ADD/ADC A, d8
	OpADD16   // ADD HL, rr
	OpADD16SP // ADD HL, SP
	OpSUB     // SUB/SBC A, r
	OpSUBMem  // SUB/SBC A, (rr)
	OpSUBN    // SUB/SBC A, d8
	OpCP
	OpCPMem
	OpCPN
	OpINC
	OpINCMem
	OpINC16
	OpINCSP
	OpDEC
	OpDECMem
	OpDEC16
	OpDECSP
	OpAND
	OpANDMem
	OpANDN
	OpXOR
	OpXORMem
	OpXORN
	OpOR
	OpORMem
	OpORN
	OpCCF
	OpSCF
	OpCPL
	OpDAA
	OpJumpNN          // JP cc, a16
	OpJumpHL          // JP HL
	OpJumpRN          // JR cc, r8
	OpCallNN          // CALL cc, a16
	OpReturn          // RET cc
	OpReturnInterrupt // RETI
	OpCallI           // RST vec
	OpLoadRR          // LD r, r'
	OpLoadRN          // LD r, d8
	OpLoadRMem        // LD r, (rr) with optional post inc/dec
	OpLoadMemR        // LD (rr), r with optional post inc/dec
	OpLoadMemN        // LD (HL), d8
	OpLoadRNN         // LD r, (a16)
	OpLoadNNR         // LD (a16), r
	OpLoadRHighR      // LD r, (0xFF00 + r')
	OpLoadHighRR      // LD (0xFF00 + r), r'
	OpLoadRHighN      // LDH r, (a8)
	OpLoadHighNR      // LDH (a8), r
	OpLoadRRNN        // LD rr, d16
	OpLoadNNSP        // LD (a16), SP
	OpLoadSPNN        // LD SP, d16
	OpLoadSPRR        // LD SP, rr
	OpLoadRRSPN       // LD rr, SP + r8
	OpADDSPN          // ADD SP, r8
	OpPushRR
	OpPopRR
	OpDI
	OpEI
	OpStop

	// prefixed
	OpReset
	OpResetMem
	OpSet
	OpSetMem
	OpBitCopy
	OpBitCopyMem
	OpLeftShift
	OpLeftShiftMem
	OpRightShift
	OpRightShiftMem
	OpSwap
	OpSwapMem

	opCount
)

var opNames = [opCount]string{
	opUndefined: "undefined",
	OpNOP:       "NOP", OpADD: "ADD", OpADDMem: "ADDmem", OpADDN: "ADDn", OpADD16: "ADD16", OpADD16SP: "ADD16SP",
	OpSUB: "SUB", OpSUBMem: "SUBmem", OpSUBN: "SUBn", OpCP: "CP", OpCPMem: "CPmem", OpCPN: "CPn",
	OpINC: "INC", OpINCMem: "INCmem", OpINC16: "INC16", OpINCSP: "INCSP",
	OpDEC: "DEC", OpDECMem: "DECmem", OpDEC16: "DEC16", OpDECSP: "DECSP",
	OpAND: "AND", OpANDMem: "ANDmem", OpANDN: "ANDn", OpXOR: "XOR", OpXORMem: "XORmem", OpXORN: "XORn",
	OpOR: "OR", OpORMem: "ORmem", OpORN: "ORn", OpCCF: "CCF", OpSCF: "SCF", OpCPL: "CPL", OpDAA: "DAA",
	OpJumpNN: "JumpNN", OpJumpHL: "JumpHL", OpJumpRN: "JumpRn", OpCallNN: "CallNN", OpReturn: "Return",
	OpReturnInterrupt: "ReturnInterrupt", OpCallI: "CallI",
	OpLoadRR: "LoadRR", OpLoadRN: "LoadRN", OpLoadRMem: "LoadRMem", OpLoadMemR: "LoadMemR", OpLoadMemN: "LoadMemN",
	OpLoadRNN: "LoadRNN", OpLoadNNR: "LoadNNR", OpLoadRHighR: "LoadRHighR", OpLoadHighRR: "LoadHighRR",
	OpLoadRHighN: "LoadRHighN", OpLoadHighNR: "LoadHighNR", OpLoadRRNN: "LoadRRNN", OpLoadNNSP: "LoadNNSP",
	OpLoadSPNN: "LoadSPNN", OpLoadSPRR: "LoadSPRR", OpLoadRRSPN: "LoadRRSPn", OpADDSPN: "ADDSPn",
	OpPushRR: "PushRR", OpPopRR: "PopRR", OpDI: "DI", OpEI: "EI", OpStop: "Stop",
	OpReset: "Reset", OpResetMem: "ResetMem", OpSet: "Set", OpSetMem: "SetMem",
	OpBitCopy: "BitCopy", OpBitCopyMem: "BitCopyMem", OpLeftShift: "LeftShift", OpLeftShiftMem: "LeftShiftMem",
	OpRightShift: "RightShift", OpRightShiftMem: "RightShiftMem", OpSwap: "Swap", OpSwapMem: "SwapMem",
}

func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Cond is the condition of a conditional jump, call or return.
type Cond uint8

const (
	CondAlways Cond = iota
	CondZ
	CondNZ
	CondC
	CondNC
)

var condNames = [...]string{"", "Z", "NZ", "C", "NC"}

func (c Cond) String() string {
	if int(c) < len(condNames) {
		return condNames[c]
	}
	return fmt.Sprintf("Cond(%d)", uint8(c))
}

// PostOp is applied to the address register pair after a
// memory load or store, as in LD (HL+), A.
type PostOp uint8

const (
	PostNone PostOp = iota
	PostIncrement
	PostDecrement
)

// ShiftOp selects the behaviour of the shift and rotate
// instructions.
type ShiftOp uint8

const (
	// ShiftRotate rotates circularly (RLC, RRC).
	ShiftRotate ShiftOp = iota
	// ShiftRotateZ is ShiftRotate with the zero flag
	// forced clear (RLCA, RRCA).
	ShiftRotateZ
	// ShiftCarry rotates through the carry flag (RL, RR).
	ShiftCarry
	// ShiftCarryZ is ShiftCarry with the zero flag forced
	// clear (RLA, RRA).
	ShiftCarryZ
	// ShiftArithmetic shifts, preserving bit 7 when shifting
	// right (SLA, SRA).
	ShiftArithmetic
	// ShiftLogical shifts in a zero (SRL).
	ShiftLogical
)

var shiftNames = [...]string{"Rotate", "RotateZ", "IncludeCarry", "IncludeCarryZ", "Arithmetic", "Logical"}

func (s ShiftOp) String() string {
	if int(s) < len(shiftNames) {
		return shiftNames[s]
	}
	return fmt.Sprintf("ShiftOp(%d)", uint8(s))
}

// Instruction is a decoded instruction. Op selects the
// family, the remaining fields are the operands that family
// uses; the rest are left zero.
type Instruction struct {
	Op Op

	// R is the register operand, or the destination of a
	// register to register load.
	R Reg
	// R2 is the source of a register to register load.
	R2 Reg
	// Pair is the register pair operand.
	Pair Pair
	// Cond is the branch condition.
	Cond Cond
	// Post is applied to Pair after a memory access.
	Post PostOp
	// Bit is the bit index of the bit instructions (0-7).
	Bit uint8
	// Shift selects the shift/rotate behaviour.
	Shift ShiftOp
	// Carry includes the carry flag in ADD and SUB (ADC, SBC).
	Carry bool
	// Vector is the call target of RST.
	Vector uint16
}

// String returns the instruction in the form Op(operands),
// e.g. LoadRR(B, C) or JumpRn(NZ).
func (i Instruction) String() string {
	switch i.Op {
	case OpADD, OpSUB:
		return fmt.Sprintf("%s(%s, %t)", i.Op, i.R, i.Carry)
	case OpADDMem, OpSUBMem:
		return fmt.Sprintf("%s(%s, %t)", i.Op, i.Pair, i.Carry)
	case OpADDN, OpSUBN:
		return fmt.Sprintf("%s(%t)", i.Op, i.Carry)
	case OpCP, OpINC, OpDEC, OpAND, OpXOR, OpOR, OpLoadRN, OpLoadRNN, OpLoadNNR,
		OpLoadRHighN, OpLoadHighNR, OpSwap:
		return fmt.Sprintf("%s(%s)", i.Op, i.R)
	case OpCPMem, OpINCMem, OpDECMem, OpANDMem, OpXORMem, OpORMem, OpINC16, OpDEC16, OpADD16,
		OpLoadMemN, OpLoadRRNN, OpLoadSPRR, OpLoadRRSPN, OpPushRR, OpPopRR, OpSwapMem:
		return fmt.Sprintf("%s(%s)", i.Op, i.Pair)
	case OpJumpNN, OpJumpRN, OpCallNN, OpReturn:
		if i.Cond == CondAlways {
			return i.Op.String()
		}
		return fmt.Sprintf("%s(%s)", i.Op, i.Cond)
	case OpCallI:
		return fmt.Sprintf("%s(%02XH)", i.Op, i.Vector)
	case OpLoadRR, OpLoadRHighR, OpLoadHighRR:
		return fmt.Sprintf("%s(%s, %s)", i.Op, i.R, i.R2)
	case OpLoadRMem:
		return fmt.Sprintf("%s(%s, %s%s)", i.Op, i.R, i.Pair, postSuffix(i.Post))
	case OpLoadMemR:
		return fmt.Sprintf("%s(%s%s, %s)", i.Op, i.Pair, postSuffix(i.Post), i.R)
	case OpReset, OpSet, OpBitCopy:
		return fmt.Sprintf("%s(%d, %s)", i.Op, i.Bit, i.R)
	case OpResetMem, OpSetMem, OpBitCopyMem:
		return fmt.Sprintf("%s(%d, %s)", i.Op, i.Bit, i.Pair)
	case OpLeftShift, OpRightShift:
		return fmt.Sprintf("%s(%s, %s)", i.Op, i.Shift, i.R)
	case OpLeftShiftMem, OpRightShiftMem:
		return fmt.Sprintf("%s(%s, %s)", i.Op, i.Shift, i.Pair)
	}
	return i.Op.String()
}

func postSuffix(p PostOp) string {
	switch p {
	case PostIncrement:
		return "+"
	case PostDecrement:
		return "-"
	}
	return ""
}
