// Package cpu implements the Sharp LR35902 CPU of the Game Boy.
// The CPU fetches, decodes and executes one instruction per Step,
// reporting the number of M-cycles the instruction took.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in M-cycles per second.
	ClockSpeed = 4194304 / 4

	// InitialPC is the value of PC after the boot ROM has run.
	InitialPC uint16 = 0x0100
	// InitialSP is the value of SP after the boot ROM has run.
	InitialSP uint16 = 0xFFFE
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// Sentinels enables the PC and SP sanity checks, which
	// fail the step with ErrSentinel.
	Sentinels bool
	// History records the executed instructions, if set.
	History *History

	bus mmu.Bus

	ime        bool // interrupt master enable
	imePending bool // set by EI, promoted at the start of the next step
	stopped    bool

	steps uint64
}

// New creates a new CPU reading and writing through the given bus.
func New(bus mmu.Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset sets the CPU to its post boot state.
func (c *CPU) Reset() {
	c.Registers = Registers{}
	c.PC = InitialPC
	c.SP = InitialSP
	c.ime, c.imePending, c.stopped = false, false, false
	c.steps = 0
}

// Step executes a single instruction and returns the number of
// M-cycles it took. Fetching the prefix byte of a prefixed
// instruction is included in its cost.
func (c *CPU) Step() (int, error) {
	// EI takes effect after the instruction that follows it
	if c.imePending {
		c.ime = true
		c.imePending = false
	}

	// the waking step executes nothing, the waking interrupt
	// is dispatched before the next instruction
	if c.stopped {
		if c.hasInterrupts() {
			c.stopped = false
		}
		return 1, nil
	}

	if c.Sentinels {
		if err := c.checkSentinels(); err != nil {
			return 0, err
		}
	}

	pc := c.PC
	opcode := c.readOperand()
	prefixed := opcode == Prefix
	if prefixed {
		opcode = c.readOperand()
	}

	ins, ok := Decode(opcode, prefixed)
	if !ok {
		return 0, &UndefinedOpcodeError{Opcode: opcode, Prefixed: prefixed, PC: pc}
	}

	if c.History != nil {
		c.History.Add(Entry{PC: pc, Opcode: opcode, Prefixed: prefixed, Instruction: ins, Step: c.steps})
	}
	c.steps++

	return handlers[ins.Op](c, ins), nil
}

// Steps returns the number of instructions executed.
func (c *CPU) Steps() uint64 {
	return c.steps
}

func (c *CPU) checkSentinels() error {
	if c.PC >= 0xFFFD {
		return fmt.Errorf("%w: PC=0x%04X", ErrSentinel, c.PC)
	}
	if c.SP == 0 {
		return fmt.Errorf("%w: SP=0x%04X", ErrSentinel, c.SP)
	}
	return nil
}

func (c *CPU) hasInterrupts() bool {
	return c.bus.Read(types.IE)&c.bus.Read(types.IF)&0x1F != 0
}

// InterruptsEnabled returns true if the interrupt master
// enable is set.
func (c *CPU) InterruptsEnabled() bool {
	return c.ime
}

// DisableInterrupts clears the interrupt master enable.
func (c *CPU) DisableInterrupts() {
	c.ime = false
	c.imePending = false
}

// Stopped returns true if the CPU has executed STOP and
// has not yet been woken by an interrupt.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Call pushes PC onto the stack and jumps to the given address.
func (c *CPU) Call(address uint16) {
	c.Push(c.PC)
	c.PC = address
}

// Push pushes a 16-bit value onto the stack, high byte first.
func (c *CPU) Push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// Pop pops a 16-bit value off the stack, low byte first.
func (c *CPU) Pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// readOperand reads the byte at PC and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the little endian word at PC and advances PC.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// String returns the register state of the CPU.
func (c *CPU) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X IME: %t",
		c.A, c.F.Byte(), c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC, c.ime)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = FlagsFromByte(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.ime = s.ReadBool()
	c.imePending = s.ReadBool()
	c.stopped = s.ReadBool()
	c.steps = s.Read64()
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F.Byte())
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.ime)
	s.WriteBool(c.imePending)
	s.WriteBool(c.stopped)
	s.Write64(c.steps)
}
