package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// shiftLeft shifts or rotates n left by 1 bit, according to op.
//
//	RLC n, RLCA - bit 7 is copied to carry and to bit 0.
//	RL n, RLA   - bit 7 is copied to carry, carry is copied to bit 0.
//	SLA n       - bit 7 is copied to carry, bit 0 is reset.
//
// Flags affected:
//
//	Z - Set if result is zero, reset for RLCA and RLA.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeft(op ShiftOp, n uint8) uint8 {
	out := n&types.Bit7 != 0
	var in uint8
	switch op {
	case ShiftRotate, ShiftRotateZ:
		in = n >> 7
	case ShiftCarry, ShiftCarryZ:
		if c.F.Carry {
			in = 1
		}
	case ShiftArithmetic, ShiftLogical:
	default:
		panic(fmt.Sprintf("cpu: invalid shift %d", op))
	}
	computed := n<<1 | in
	c.setFlags(computed == 0 && !clearsZero(op), false, false, out)
	return computed
}

// shiftRight shifts or rotates n right by 1 bit, according to op.
//
//	RRC n, RRCA - bit 0 is copied to carry and to bit 7.
//	RR n, RRA   - bit 0 is copied to carry, carry is copied to bit 7.
//	SRA n       - bit 0 is copied to carry, bit 7 is unchanged.
//	SRL n       - bit 0 is copied to carry, bit 7 is reset.
//
// Flags affected:
//
//	Z - Set if result is zero, reset for RRCA and RRA.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRight(op ShiftOp, n uint8) uint8 {
	out := n&types.Bit0 != 0
	var in uint8
	switch op {
	case ShiftRotate, ShiftRotateZ:
		in = n << 7
	case ShiftCarry, ShiftCarryZ:
		if c.F.Carry {
			in = types.Bit7
		}
	case ShiftArithmetic:
		in = n & types.Bit7
	case ShiftLogical:
	default:
		panic(fmt.Sprintf("cpu: invalid shift %d", op))
	}
	computed := n>>1 | in
	c.setFlags(computed == 0 && !clearsZero(op), false, false, out)
	return computed
}

func clearsZero(op ShiftOp) bool {
	return op == ShiftRotateZ || op == ShiftCarryZ
}

// swap swaps the upper and lower nibbles of n.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	computed := n<<4 | n>>4
	c.setFlags(computed == 0, false, false, false)
	return computed
}

// shiftCycles returns the cost of a register shift. The
// accumulator forms (RLCA, RRCA, RLA, RRA) are not prefixed.
func shiftCycles(op ShiftOp) int {
	if clearsZero(op) {
		return 1
	}
	return 2
}

func opLeftShift(c *CPU, ins Instruction) int {
	r := c.register(ins.R)
	*r = c.shiftLeft(ins.Shift, *r)
	return shiftCycles(ins.Shift)
}

func opLeftShiftMem(c *CPU, ins Instruction) int {
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, c.shiftLeft(ins.Shift, c.bus.Read(addr)))
	return 4
}

func opRightShift(c *CPU, ins Instruction) int {
	r := c.register(ins.R)
	*r = c.shiftRight(ins.Shift, *r)
	return shiftCycles(ins.Shift)
}

func opRightShiftMem(c *CPU, ins Instruction) int {
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, c.shiftRight(ins.Shift, c.bus.Read(addr)))
	return 4
}

func opSwap(c *CPU, ins Instruction) int {
	r := c.register(ins.R)
	*r = c.swap(*r)
	return 2
}

func opSwapMem(c *CPU, ins Instruction) int {
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, c.swap(c.bus.Read(addr)))
	return 4
}
