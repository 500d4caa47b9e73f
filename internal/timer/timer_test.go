package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

func newTestController(t *testing.T) (*Controller, *mmu.MMU) {
	t.Helper()
	m, err := mmu.New([]byte{0x00})
	require.NoError(t, err)
	return NewController(m), m
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name                    string
		before, elapsed, period uint64
		expected                uint64
	}{
		{"crosses boundary", 60, 8, 64, 1},
		{"within period", 10, 4, 64, 0},
		{"lands on boundary", 60, 4, 64, 1},
		{"starts on boundary", 64, 4, 64, 0},
		{"exactly one period", 60, 64, 64, 1},
		{"more than one period", 60, 68, 64, 2},
		{"zero elapsed", 63, 0, 64, 0},
		{"fast period", 2, 6, 4, 2},
		{"slow period", 250, 5, 256, 0},
		{"slow period crossing", 250, 7, 256, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ticks(tt.before, tt.elapsed, tt.period))
		})
	}
}

func TestTicks_MatchesSingleSteps(t *testing.T) {
	for _, period := range []uint64{4, 16, 64, 256} {
		var clock, total uint64
		for i := 0; i < 2000; i++ {
			elapsed := uint64(1 + i%6)
			total += Ticks(clock, elapsed, period)
			clock += elapsed
		}
		assert.Equal(t, clock/period, total, "period %d", period)
	}
}

func TestParseControl(t *testing.T) {
	assert.Equal(t, Control{Enabled: true, Speed: 3}, ParseControl(0b0000_0111))
	assert.Equal(t, Control{Enabled: false, Speed: 1}, ParseControl(0b1111_1001))

	for speed, period := range []uint64{256, 4, 16, 64} {
		assert.Equal(t, period, ParseControl(uint8(speed)).Period())
	}
}

func TestController_Divider(t *testing.T) {
	c, m := newTestController(t)

	c.Step(60, 8, false)
	assert.Equal(t, uint8(1), m.Read(types.DIV))

	c.Step(10, 4, false)
	assert.Equal(t, uint8(1), m.Read(types.DIV))

	// stopped
	c.Step(120, 16, true)
	assert.Equal(t, uint8(1), m.Read(types.DIV))

	// wraps
	m.Set(types.DIV, 0xFF)
	c.Step(0, 64, false)
	assert.Equal(t, uint8(0), m.Read(types.DIV))
}

func TestController_Disabled(t *testing.T) {
	c, m := newTestController(t)
	m.Write(types.TAC, 0b011)

	c.Step(0, 1024, false)
	assert.Equal(t, uint8(0), m.Read(types.TIMA))
}

func TestController_BoundaryScenario(t *testing.T) {
	c, m := newTestController(t)
	m.Write(types.TAC, 0b111) // enabled, 64 M-cycles

	c.Step(60, 8, false)
	assert.Equal(t, uint8(1), m.Read(types.TIMA))

	c.Step(10, 4, false)
	assert.Equal(t, uint8(1), m.Read(types.TIMA))
}

func TestController_Overflow(t *testing.T) {
	c, m := newTestController(t)
	m.Write(types.TAC, 0b101) // enabled, 4 M-cycles
	m.Write(types.TMA, 0xF0)
	m.Write(types.TIMA, 0xFF)

	c.Step(0, 4, false)
	assert.Equal(t, uint8(0xF0), m.Read(types.TIMA))
	assert.Equal(t, uint8(interrupts.TimerFlag), m.Read(types.IF)&interrupts.TimerFlag)
}

func TestController_OverflowZeroModulo(t *testing.T) {
	c, m := newTestController(t)
	m.Write(types.TAC, 0b101) // enabled, 4 M-cycles
	m.Write(types.TMA, 0x00)
	m.Write(types.TIMA, 0xFF)

	c.Step(0, 4, false)
	assert.Equal(t, uint8(0x00), m.Read(types.TIMA))
	assert.Zero(t, m.Read(types.IF)&interrupts.TimerFlag, "interrupt should be deferred")

	// the next tick reloads instead of incrementing
	c.Step(4, 4, false)
	assert.Equal(t, uint8(0x00), m.Read(types.TIMA))
	assert.Equal(t, uint8(interrupts.TimerFlag), m.Read(types.IF)&interrupts.TimerFlag)

	c.Step(8, 4, false)
	assert.Equal(t, uint8(0x01), m.Read(types.TIMA))
}

func TestController_MultipleTicks(t *testing.T) {
	c, m := newTestController(t)
	m.Write(types.TAC, 0b101) // enabled, 4 M-cycles
	m.Write(types.TMA, 0x10)
	m.Write(types.TIMA, 0xFE)

	// three ticks: 0xFF, overflow to TMA, TMA + 1
	c.Step(1, 12, false)
	assert.Equal(t, uint8(0x11), m.Read(types.TIMA))
	assert.NotZero(t, m.Read(types.IF)&interrupts.TimerFlag)
}

func TestController_State(t *testing.T) {
	c, m := newTestController(t)
	m.Write(types.TAC, 0b101)
	m.Write(types.TIMA, 0xFF)
	c.Step(0, 4, false)

	s := types.NewState()
	c.Save(s)

	restored := NewController(m)
	restored.Load(types.StateFromBytes(s.Bytes()))
	restored.Step(4, 4, false)
	assert.NotZero(t, m.Read(types.IF)&interrupts.TimerFlag)
}
