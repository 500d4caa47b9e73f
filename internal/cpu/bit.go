package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// checkBit panics if n is not a valid bit index. Decoding
// never produces one.
func checkBit(n uint8) {
	if n > 7 {
		panic(fmt.Sprintf("cpu: bit index %d out of range", n))
	}
}

// testBit copies the complement of bit n of value into the
// zero flag.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, value uint8) {
	checkBit(n)
	c.setFlags(!types.TestBit(value, n), false, true, c.F.Carry)
}

func opBitCopy(c *CPU, ins Instruction) int {
	c.testBit(ins.Bit, *c.register(ins.R))
	return 2
}

func opBitCopyMem(c *CPU, ins Instruction) int {
	c.testBit(ins.Bit, c.bus.Read(c.Pair(ins.Pair)))
	return 3
}

func opSet(c *CPU, ins Instruction) int {
	checkBit(ins.Bit)
	r := c.register(ins.R)
	*r = types.SetBit(*r, ins.Bit)
	return 2
}

func opSetMem(c *CPU, ins Instruction) int {
	checkBit(ins.Bit)
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, types.SetBit(c.bus.Read(addr), ins.Bit))
	return 4
}

func opReset(c *CPU, ins Instruction) int {
	checkBit(ins.Bit)
	r := c.register(ins.R)
	*r = types.ResetBit(*r, ins.Bit)
	return 2
}

func opResetMem(c *CPU, ins Instruction) int {
	checkBit(ins.Bit)
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, types.ResetBit(c.bus.Read(addr), ins.Bit))
	return 4
}
