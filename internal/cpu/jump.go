package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// opJumpNN jumps to the immediate address if the condition holds.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
func opJumpNN(c *CPU, ins Instruction) int {
	addr := c.readOperand16()
	if !c.condition(ins.Cond) {
		return 3
	}
	c.PC = addr
	return 4
}

func opJumpHL(c *CPU, _ Instruction) int {
	c.PC = c.HL()
	return 1
}

// opJumpRN jumps relative to the address following the offset
// byte if the condition holds. The offset is signed.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func opJumpRN(c *CPU, ins Instruction) int {
	offset := int8(c.readOperand())
	if !c.condition(ins.Cond) {
		return 2
	}
	c.PC = uint16(int32(c.PC) + int32(offset))
	return 3
}

// opCallNN pushes the address of the next instruction onto the
// stack and jumps to the immediate address if the condition holds.
func opCallNN(c *CPU, ins Instruction) int {
	addr := c.readOperand16()
	if !c.condition(ins.Cond) {
		return 3
	}
	c.Call(addr)
	return 6
}

// opReturn pops PC off the stack. A conditional return takes
// one more cycle than an unconditional one when taken.
func opReturn(c *CPU, ins Instruction) int {
	if ins.Cond == CondAlways {
		c.PC = c.Pop()
		return 4
	}
	if !c.condition(ins.Cond) {
		return 2
	}
	c.PC = c.Pop()
	return 5
}

// opReturnInterrupt returns and enables interrupts immediately.
func opReturnInterrupt(c *CPU, _ Instruction) int {
	c.PC = c.Pop()
	c.ime = true
	c.imePending = false
	return 4
}

// opCallI calls one of the fixed RST vectors.
func opCallI(c *CPU, ins Instruction) int {
	c.Call(ins.Vector)
	return 4
}

func opDI(c *CPU, _ Instruction) int {
	c.DisableInterrupts()
	return 1
}

// opEI enables interrupts once the next instruction has run.
func opEI(c *CPU, _ Instruction) int {
	c.imePending = true
	return 1
}

// opStop stops the CPU until an enabled interrupt is requested.
// The byte following STOP is skipped and the divider is reset.
func opStop(c *CPU, _ Instruction) int {
	c.PC++
	c.bus.Write(types.DIV, 0)
	c.stopped = true
	return 1
}
