package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

// newTestCPU returns a CPU with the given program placed at
// InitialPC.
func newTestCPU(t *testing.T, program ...uint8) (*CPU, *mmu.MMU) {
	t.Helper()
	rom := make([]byte, int(InitialPC)+len(program)+1)
	copy(rom[InitialPC:], program)
	m, err := mmu.New(rom)
	if err != nil {
		t.Fatalf("unexpected error creating mmu: %v", err)
	}
	return New(m), m
}

// step executes a single instruction, failing the test on error.
func step(t *testing.T, c *CPU) int {
	t.Helper()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected error at 0x%04X: %v", c.PC, err)
	}
	return cycles
}

func TestCPU_Reset(t *testing.T) {
	c, _ := newTestCPU(t)
	if c.PC != 0x0100 {
		t.Errorf("expected PC 0x0100, got 0x%04X", c.PC)
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP 0xFFFE, got 0x%04X", c.SP)
	}
	if c.InterruptsEnabled() {
		t.Errorf("expected IME to be disabled")
	}
}

func TestCPU_PushPop(t *testing.T) {
	c, _ := newTestCPU(t)
	values := []uint16{0x0000, 0x0001, 0x00FF, 0x1234, 0x8000, 0xBEEF, 0xFFFF}
	for sp := 0; sp <= 0xFFFF; sp += 0x0FF1 {
		// the stack would overlap DIV, which is reset on write
		if sp == int(types.DIV)+1 || sp == int(types.DIV)+2 {
			continue
		}
		for _, v := range values {
			c.SP = uint16(sp)
			c.Push(v)
			if got := c.Pop(); got != v {
				t.Errorf("SP 0x%04X: expected 0x%04X, got 0x%04X", sp, v, got)
			}
			if c.SP != uint16(sp) {
				t.Errorf("expected SP 0x%04X after pop, got 0x%04X", sp, c.SP)
			}
		}
	}

	// wraps around the bottom of the address space
	c.SP = 0x0001
	c.Push(0xCAFE)
	if c.SP != 0xFFFF {
		t.Errorf("expected SP 0xFFFF, got 0x%04X", c.SP)
	}
	if got := c.Pop(); got != 0xCAFE {
		t.Errorf("expected 0xCAFE, got 0x%04X", got)
	}
}

func TestCPU_PushOrder(t *testing.T) {
	c, m := newTestCPU(t)
	c.SP = 0xD000
	c.Push(0x1234)
	if m.Read(0xCFFF) != 0x12 || m.Read(0xCFFE) != 0x34 {
		t.Errorf("expected high byte at SP-1 and low byte at SP-2, got 0x%02X 0x%02X", m.Read(0xCFFF), m.Read(0xCFFE))
	}
	if c.SP != 0xCFFE {
		t.Errorf("expected SP 0xCFFE, got 0x%04X", c.SP)
	}
}

func TestCPU_Cycles(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   func(c *CPU)
		cycles  int
	}{
		{"NOP", []uint8{0x00}, nil, 1},
		{"LD B, C", []uint8{0x41}, nil, 1},
		{"LD B, (HL)", []uint8{0x46}, nil, 2},
		{"LD (HL), d8", []uint8{0x36, 0x12}, nil, 3},
		{"LD BC, d16", []uint8{0x01, 0x34, 0x12}, nil, 3},
		{"LD (a16), SP", []uint8{0x08, 0x00, 0xC0}, nil, 5},
		{"LD A, (a16)", []uint8{0xFA, 0x00, 0xC0}, nil, 4},
		{"LDH (a8), A", []uint8{0xE0, 0x80}, nil, 3},
		{"LD (C), A", []uint8{0xE2}, nil, 2},
		{"INC (HL)", []uint8{0x34}, func(c *CPU) { c.SetHL(0xC000) }, 3},
		{"INC BC", []uint8{0x03}, nil, 2},
		{"ADD HL, BC", []uint8{0x09}, nil, 2},
		{"ADD A, d8", []uint8{0xC6, 0x01}, nil, 2},
		{"ADD SP, r8", []uint8{0xE8, 0x01}, nil, 4},
		{"LD HL, SP+r8", []uint8{0xF8, 0x01}, nil, 3},
		{"RLCA", []uint8{0x07}, nil, 1},
		{"JR r8", []uint8{0x18, 0x00}, nil, 3},
		{"JR NZ, r8 (taken)", []uint8{0x20, 0x00}, nil, 3},
		{"JR Z, r8 (not taken)", []uint8{0x28, 0x00}, nil, 2},
		{"JP a16", []uint8{0xC3, 0x00, 0x02}, nil, 4},
		{"JP Z, a16 (not taken)", []uint8{0xCA, 0x00, 0x02}, nil, 3},
		{"JP HL", []uint8{0xE9}, nil, 1},
		{"CALL a16", []uint8{0xCD, 0x00, 0x02}, nil, 6},
		{"CALL C, a16 (not taken)", []uint8{0xDC, 0x00, 0x02}, nil, 3},
		{"CALL NC, a16 (taken)", []uint8{0xD4, 0x00, 0x02}, nil, 6},
		{"RET", []uint8{0xC9}, nil, 4},
		{"RETI", []uint8{0xD9}, nil, 4},
		{"RET NZ (taken)", []uint8{0xC0}, nil, 5},
		{"RET Z (not taken)", []uint8{0xC8}, nil, 2},
		{"RST 38H", []uint8{0xFF}, nil, 4},
		{"PUSH BC", []uint8{0xC5}, nil, 4},
		{"POP BC", []uint8{0xC1}, nil, 3},
		{"DI", []uint8{0xF3}, nil, 1},
		{"EI", []uint8{0xFB}, nil, 1},
		{"RLC B", []uint8{0xCB, 0x00}, nil, 2},
		{"RLC (HL)", []uint8{0xCB, 0x06}, func(c *CPU) { c.SetHL(0xC000) }, 4},
		{"BIT 0, (HL)", []uint8{0xCB, 0x46}, nil, 3},
		{"RES 0, (HL)", []uint8{0xCB, 0x86}, func(c *CPU) { c.SetHL(0xC000) }, 4},
		{"SET 7, A", []uint8{0xCB, 0xFF}, nil, 2},
		{"SWAP A", []uint8{0xCB, 0x37}, nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, tt.program...)
			if tt.setup != nil {
				tt.setup(c)
			}
			if cycles := step(t, c); cycles != tt.cycles {
				t.Errorf("expected %d cycles, got %d", tt.cycles, cycles)
			}
		})
	}
}

func TestCPU_UndefinedOpcode(t *testing.T) {
	for _, opcode := range []uint8{0x76, 0xD3, 0xFD} {
		c, _ := newTestCPU(t, opcode)
		_, err := c.Step()

		var undefined *UndefinedOpcodeError
		if !errors.As(err, &undefined) {
			t.Fatalf("expected UndefinedOpcodeError, got %v", err)
		}
		if undefined.Opcode != opcode || undefined.Prefixed || undefined.PC != 0x0100 {
			t.Errorf("unexpected error contents: %+v", *undefined)
		}
	}
}

func TestCPU_JumpRelative(t *testing.T) {
	t.Run("backwards to self", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x18, 0xFE)
		step(t, c)
		if c.PC != 0x0100 {
			t.Errorf("expected PC 0x0100, got 0x%04X", c.PC)
		}
	})
	t.Run("most negative offset", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x18, 0x80)
		step(t, c)
		if c.PC != 0x0082 {
			t.Errorf("expected PC 0x0082, got 0x%04X", c.PC)
		}
	})
	t.Run("most positive offset", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x18, 0x7F)
		step(t, c)
		if c.PC != 0x0181 {
			t.Errorf("expected PC 0x0181, got 0x%04X", c.PC)
		}
	})
	t.Run("wraps around", func(t *testing.T) {
		c, m := newTestCPU(t)
		c.PC = 0x0000
		m.Write(0x0000, 0x18)
		m.Write(0x0001, 0xF0)
		step(t, c)
		if c.PC != 0xFFF2 {
			t.Errorf("expected PC 0xFFF2, got 0x%04X", c.PC)
		}
	})
}

func TestCPU_CallReturn(t *testing.T) {
	c, m := newTestCPU(t, 0xCD, 0x00, 0x02)
	m.Write(0x0200, 0xC9)

	step(t, c)
	if c.PC != 0x0200 || c.SP != 0xFFFC {
		t.Fatalf("expected PC 0x0200 SP 0xFFFC, got PC 0x%04X SP 0x%04X", c.PC, c.SP)
	}
	step(t, c)
	if c.PC != 0x0103 || c.SP != 0xFFFE {
		t.Errorf("expected PC 0x0103 SP 0xFFFE, got PC 0x%04X SP 0x%04X", c.PC, c.SP)
	}
}

func TestCPU_RST(t *testing.T) {
	for i, vector := range []uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		c, _ := newTestCPU(t, uint8(0xC7+i*8))
		step(t, c)
		if c.PC != vector {
			t.Errorf("expected PC 0x%04X, got 0x%04X", vector, c.PC)
		}
		if ret := c.Pop(); ret != 0x0101 {
			t.Errorf("expected return address 0x0101, got 0x%04X", ret)
		}
	}
}

func TestCPU_EnableInterrupts(t *testing.T) {
	c, _ := newTestCPU(t, 0xFB, 0x00, 0xF3)

	step(t, c) // EI
	if c.InterruptsEnabled() {
		t.Errorf("expected IME to be disabled directly after EI")
	}
	step(t, c) // NOP
	if !c.InterruptsEnabled() {
		t.Errorf("expected IME to be enabled after the instruction following EI")
	}
	step(t, c) // DI
	if c.InterruptsEnabled() {
		t.Errorf("expected IME to be disabled after DI")
	}
}

func TestCPU_ReturnInterrupt(t *testing.T) {
	c, _ := newTestCPU(t, 0xD9)
	c.Push(0x1234)
	step(t, c)
	if c.PC != 0x1234 {
		t.Errorf("expected PC 0x1234, got 0x%04X", c.PC)
	}
	if !c.InterruptsEnabled() {
		t.Errorf("expected RETI to enable IME immediately")
	}
}

func TestCPU_Stop(t *testing.T) {
	c, m := newTestCPU(t, 0x10, 0x00, 0x3C)
	m.Set(types.DIV, 0x55)

	step(t, c)
	if !c.Stopped() {
		t.Fatalf("expected CPU to be stopped")
	}
	if m.Read(types.DIV) != 0 {
		t.Errorf("expected STOP to reset DIV, got 0x%02X", m.Read(types.DIV))
	}
	for i := 0; i < 3; i++ {
		if cycles := step(t, c); cycles != 1 || c.PC != 0x0102 {
			t.Errorf("expected idle step, got %d cycles at PC 0x%04X", cycles, c.PC)
		}
	}

	// any enabled & requested interrupt wakes the CPU, even with IME clear
	m.Write(types.IE, types.Bit2)
	m.Write(types.IF, types.Bit2)
	if cycles := step(t, c); cycles != 1 {
		t.Errorf("expected waking to take 1 cycle, got %d", cycles)
	}
	if c.Stopped() {
		t.Errorf("expected CPU to be woken")
	}
	if c.A != 0 || c.PC != 0x0102 {
		t.Errorf("expected no instruction on the waking step, A = 0x%02X PC = 0x%04X", c.A, c.PC)
	}

	step(t, c)
	if c.A != 1 {
		t.Errorf("expected INC A to run after waking, A = 0x%02X", c.A)
	}
}

func TestCPU_Sentinels(t *testing.T) {
	c, _ := newTestCPU(t, 0x00)
	c.Sentinels = true
	c.SP = 0
	if _, err := c.Step(); !errors.Is(err, ErrSentinel) {
		t.Errorf("expected ErrSentinel for SP 0, got %v", err)
	}

	c.SP = InitialSP
	c.PC = 0xFFFD
	if _, err := c.Step(); !errors.Is(err, ErrSentinel) {
		t.Errorf("expected ErrSentinel for PC 0xFFFD, got %v", err)
	}

	c.Sentinels = false
	if _, err := c.Step(); err != nil {
		t.Errorf("expected no error with sentinels disabled, got %v", err)
	}
}

func TestCPU_State(t *testing.T) {
	c, m := newTestCPU(t, 0xFB, 0x00)
	c.SetBC(0x1234)
	c.SetAF(0xABF0)
	step(t, c)

	s := types.NewState()
	c.Save(s)

	restored := New(m)
	restored.Load(types.StateFromBytes(s.Bytes()))
	if restored.BC() != 0x1234 || restored.AF() != 0xABF0 || restored.PC != 0x0101 {
		t.Errorf("unexpected restored state: %s", restored)
	}
	if restored.Steps() != 1 {
		t.Errorf("expected 1 step, got %d", restored.Steps())
	}
	step(t, restored)
	if !restored.InterruptsEnabled() {
		t.Errorf("expected pending EI to survive a save state")
	}
}

func TestHistory(t *testing.T) {
	c, _ := newTestCPU(t, 0x00, 0x04, 0xCB, 0x37)
	c.History = NewHistory(2)

	step(t, c)
	step(t, c)
	step(t, c)

	entries := c.History.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Step != 1 || entries[0].Instruction.Op != OpINC {
		t.Errorf("unexpected oldest entry: %s", entries[0])
	}
	if entries[1].Step != 2 || !entries[1].Prefixed || entries[1].PC != 0x0102 {
		t.Errorf("unexpected newest entry: %s", entries[1])
	}
}
