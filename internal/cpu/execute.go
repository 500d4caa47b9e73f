package cpu

import "fmt"

// handler executes a decoded instruction and returns the
// number of M-cycles it took.
type handler func(c *CPU, ins Instruction) int

// handlers holds the handler of every Op. Building the table
// panics if an Op is left without one.
var handlers = func() [opCount]handler {
	var table [opCount]handler
	for op, fn := range map[Op]handler{
		OpNOP: func(*CPU, Instruction) int { return 1 },

		OpADD: opADD, OpADDMem: opADDMem, OpADDN: opADDN, OpADD16: opADD16, OpADD16SP: opADD16SP,
		OpSUB: opSUB, OpSUBMem: opSUBMem, OpSUBN: opSUBN,
		OpCP: opCP, OpCPMem: opCPMem, OpCPN: opCPN,
		OpINC: opINC, OpINCMem: opINCMem, OpINC16: opINC16, OpINCSP: opINCSP,
		OpDEC: opDEC, OpDECMem: opDECMem, OpDEC16: opDEC16, OpDECSP: opDECSP,
		OpAND: opAND, OpANDMem: opANDMem, OpANDN: opANDN,
		OpXOR: opXOR, OpXORMem: opXORMem, OpXORN: opXORN,
		OpOR: opOR, OpORMem: opORMem, OpORN: opORN,
		OpCCF: opCCF, OpSCF: opSCF, OpCPL: opCPL, OpDAA: opDAA,
		OpADDSPN: opADDSPN,

		OpJumpNN: opJumpNN, OpJumpHL: opJumpHL, OpJumpRN: opJumpRN, OpCallNN: opCallNN,
		OpReturn: opReturn, OpReturnInterrupt: opReturnInterrupt, OpCallI: opCallI,
		OpDI: opDI, OpEI: opEI, OpStop: opStop,

		OpLoadRR: opLoadRR, OpLoadRN: opLoadRN, OpLoadRMem: opLoadRMem, OpLoadMemR: opLoadMemR,
		OpLoadMemN: opLoadMemN, OpLoadRNN: opLoadRNN, OpLoadNNR: opLoadNNR,
		OpLoadRHighR: opLoadRHighR, OpLoadHighRR: opLoadHighRR, OpLoadRHighN: opLoadRHighN, OpLoadHighNR: opLoadHighNR,
		OpLoadRRNN: opLoadRRNN, OpLoadNNSP: opLoadNNSP, OpLoadSPNN: opLoadSPNN, OpLoadSPRR: opLoadSPRR,
		OpLoadRRSPN: opLoadRRSPN, OpPushRR: opPushRR, OpPopRR: opPopRR,

		OpReset: opReset, OpResetMem: opResetMem, OpSet: opSet, OpSetMem: opSetMem,
		OpBitCopy: opBitCopy, OpBitCopyMem: opBitCopyMem,
		OpLeftShift: opLeftShift, OpLeftShiftMem: opLeftShiftMem,
		OpRightShift: opRightShift, OpRightShiftMem: opRightShiftMem,
		OpSwap: opSwap, OpSwapMem: opSwapMem,
	} {
		table[op] = fn
	}

	for op := opUndefined + 1; op < opCount; op++ {
		if table[op] == nil {
			panic(fmt.Sprintf("cpu: no handler for %s", op))
		}
	}
	return table
}()

// address returns the address held by the given pair, then
// applies the post operation to the pair.
func (c *CPU) address(p Pair, post PostOp) uint16 {
	addr := c.Pair(p)
	switch post {
	case PostIncrement:
		c.SetPair(p, addr+1)
	case PostDecrement:
		c.SetPair(p, addr-1)
	}
	return addr
}
