package cpu

func opADD(c *CPU, ins Instruction) int {
	c.A = c.add(c.A, *c.register(ins.R), ins.Carry)
	return 1
}

func opADDMem(c *CPU, ins Instruction) int {
	c.A = c.add(c.A, c.bus.Read(c.Pair(ins.Pair)), ins.Carry)
	return 2
}

func opADDN(c *CPU, ins Instruction) int {
	c.A = c.add(c.A, c.readOperand(), ins.Carry)
	return 2
}

func opADD16(c *CPU, ins Instruction) int {
	c.addHL(c.Pair(ins.Pair))
	return 2
}

func opADD16SP(c *CPU, _ Instruction) int {
	c.addHL(c.SP)
	return 2
}

func opADDSPN(c *CPU, _ Instruction) int {
	c.SP = c.addSPSigned(c.readOperand())
	return 4
}

func opSUB(c *CPU, ins Instruction) int {
	c.A = c.sub(c.A, *c.register(ins.R), ins.Carry)
	return 1
}

func opSUBMem(c *CPU, ins Instruction) int {
	c.A = c.sub(c.A, c.bus.Read(c.Pair(ins.Pair)), ins.Carry)
	return 2
}

func opSUBN(c *CPU, ins Instruction) int {
	c.A = c.sub(c.A, c.readOperand(), ins.Carry)
	return 2
}

// compare instructions subtract without storing the result

func opCP(c *CPU, ins Instruction) int {
	c.sub(c.A, *c.register(ins.R), false)
	return 1
}

func opCPMem(c *CPU, ins Instruction) int {
	c.sub(c.A, c.bus.Read(c.Pair(ins.Pair)), false)
	return 2
}

func opCPN(c *CPU, _ Instruction) int {
	c.sub(c.A, c.readOperand(), false)
	return 2
}

func opINC(c *CPU, ins Instruction) int {
	r := c.register(ins.R)
	*r = c.increment(*r)
	return 1
}

func opINCMem(c *CPU, ins Instruction) int {
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, c.increment(c.bus.Read(addr)))
	return 3
}

func opINC16(c *CPU, ins Instruction) int {
	c.SetPair(ins.Pair, c.Pair(ins.Pair)+1)
	return 2
}

func opINCSP(c *CPU, _ Instruction) int {
	c.SP++
	return 2
}

func opDEC(c *CPU, ins Instruction) int {
	r := c.register(ins.R)
	*r = c.decrement(*r)
	return 1
}

func opDECMem(c *CPU, ins Instruction) int {
	addr := c.Pair(ins.Pair)
	c.bus.Write(addr, c.decrement(c.bus.Read(addr)))
	return 3
}

func opDEC16(c *CPU, ins Instruction) int {
	c.SetPair(ins.Pair, c.Pair(ins.Pair)-1)
	return 2
}

func opDECSP(c *CPU, _ Instruction) int {
	c.SP--
	return 2
}

func opAND(c *CPU, ins Instruction) int {
	c.and(*c.register(ins.R))
	return 1
}

func opANDMem(c *CPU, ins Instruction) int {
	c.and(c.bus.Read(c.Pair(ins.Pair)))
	return 2
}

func opANDN(c *CPU, _ Instruction) int {
	c.and(c.readOperand())
	return 2
}

func opXOR(c *CPU, ins Instruction) int {
	c.xor(*c.register(ins.R))
	return 1
}

func opXORMem(c *CPU, ins Instruction) int {
	c.xor(c.bus.Read(c.Pair(ins.Pair)))
	return 2
}

func opXORN(c *CPU, _ Instruction) int {
	c.xor(c.readOperand())
	return 2
}

func opOR(c *CPU, ins Instruction) int {
	c.or(*c.register(ins.R))
	return 1
}

func opORMem(c *CPU, ins Instruction) int {
	c.or(c.bus.Read(c.Pair(ins.Pair)))
	return 2
}

func opORN(c *CPU, _ Instruction) int {
	c.or(c.readOperand())
	return 2
}

// opCCF complements the carry flag.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func opCCF(c *CPU, _ Instruction) int {
	c.setFlags(c.F.Zero, false, false, !c.F.Carry)
	return 1
}

// opSCF sets the carry flag.
func opSCF(c *CPU, _ Instruction) int {
	c.setFlags(c.F.Zero, false, false, true)
	return 1
}

// opCPL complements the A register.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func opCPL(c *CPU, _ Instruction) int {
	c.A = ^c.A
	c.F.Subtract = true
	c.F.HalfCarry = true
	return 1
}

func opDAA(c *CPU, _ Instruction) int {
	c.daa()
	return 1
}
