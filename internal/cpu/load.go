package cpu

// highAddress returns the address of an offset into the
// hardware register page (0xFF00 + offset).
func highAddress(offset uint8) uint16 {
	return 0xFF00 | uint16(offset)
}

func opLoadRR(c *CPU, ins Instruction) int {
	*c.register(ins.R) = *c.register(ins.R2)
	return 1
}

func opLoadRN(c *CPU, ins Instruction) int {
	*c.register(ins.R) = c.readOperand()
	return 2
}

func opLoadRMem(c *CPU, ins Instruction) int {
	*c.register(ins.R) = c.bus.Read(c.address(ins.Pair, ins.Post))
	return 2
}

func opLoadMemR(c *CPU, ins Instruction) int {
	// read the register first, LD (HL+), H must store the
	// value before the increment
	value := *c.register(ins.R)
	c.bus.Write(c.address(ins.Pair, ins.Post), value)
	return 2
}

func opLoadMemN(c *CPU, ins Instruction) int {
	c.bus.Write(c.Pair(ins.Pair), c.readOperand())
	return 3
}

func opLoadRNN(c *CPU, ins Instruction) int {
	*c.register(ins.R) = c.bus.Read(c.readOperand16())
	return 4
}

func opLoadNNR(c *CPU, ins Instruction) int {
	c.bus.Write(c.readOperand16(), *c.register(ins.R))
	return 4
}

func opLoadRHighR(c *CPU, ins Instruction) int {
	*c.register(ins.R) = c.bus.Read(highAddress(*c.register(ins.R2)))
	return 2
}

func opLoadHighRR(c *CPU, ins Instruction) int {
	c.bus.Write(highAddress(*c.register(ins.R)), *c.register(ins.R2))
	return 2
}

func opLoadRHighN(c *CPU, ins Instruction) int {
	*c.register(ins.R) = c.bus.Read(highAddress(c.readOperand()))
	return 3
}

func opLoadHighNR(c *CPU, ins Instruction) int {
	c.bus.Write(highAddress(c.readOperand()), *c.register(ins.R))
	return 3
}

func opLoadRRNN(c *CPU, ins Instruction) int {
	c.SetPair(ins.Pair, c.readOperand16())
	return 3
}

// opLoadNNSP stores SP at the immediate address, low byte first.
func opLoadNNSP(c *CPU, _ Instruction) int {
	addr := c.readOperand16()
	c.bus.Write(addr, uint8(c.SP))
	c.bus.Write(addr+1, uint8(c.SP>>8))
	return 5
}

func opLoadSPNN(c *CPU, _ Instruction) int {
	c.SP = c.readOperand16()
	return 3
}

func opLoadSPRR(c *CPU, ins Instruction) int {
	c.SP = c.Pair(ins.Pair)
	return 2
}

func opLoadRRSPN(c *CPU, ins Instruction) int {
	c.SetPair(ins.Pair, c.addSPSigned(c.readOperand()))
	return 3
}

func opPushRR(c *CPU, ins Instruction) int {
	c.Push(c.Pair(ins.Pair))
	return 4
}

// opPopRR pops into a register pair. Popping into AF drops
// the low nibble of F.
func opPopRR(c *CPU, ins Instruction) int {
	c.SetPair(ins.Pair, c.Pop())
	return 3
}
