// Package timer provides an implementation of the Game Boy
// timer. It increments types.DIV at a fixed rate and types.TIMA
// at the rate selected by types.TAC, requesting the timer
// interrupt when TIMA overflows.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Memory is the view of the address space the timer needs.
// Set must store without side effects, so that incrementing
// types.DIV is not mistaken for a write resetting it.
type Memory interface {
	Read(address uint16) uint8
	Set(address uint16, value uint8)
}

// Controller is a timer controller. Its registers live in
// the address space, and are updated after every instruction
// from the number of M-cycles the instruction took.
type Controller struct {
	mem Memory

	// overflow is set when TIMA overflowed with TMA holding 0,
	// the reload and interrupt then happen on the next tick.
	overflow bool
}

// NewController returns a new timer controller.
func NewController(mem Memory) *Controller {
	return &Controller{mem: mem}
}

// Step advances the timer registers by elapsed M-cycles,
// where before is the value of the running clock before
// the instruction executed. types.DIV is not incremented
// while the CPU is stopped.
func (c *Controller) Step(before, elapsed uint64, stopped bool) {
	if !stopped {
		if ticks := Ticks(before, elapsed, DividerPeriod); ticks > 0 {
			c.mem.Set(types.DIV, c.mem.Read(types.DIV)+uint8(ticks))
		}
	}

	control := ParseControl(c.mem.Read(types.TAC))
	if !control.Enabled {
		return
	}
	for n := Ticks(before, elapsed, control.Period()); n > 0; n-- {
		c.tick()
	}
}

// tick increments TIMA once.
func (c *Controller) tick() {
	if c.overflow {
		c.overflow = false
		c.reload()
		return
	}

	tima := c.mem.Read(types.TIMA) + 1
	if tima != 0 {
		c.mem.Set(types.TIMA, tima)
		return
	}

	// overflowed, a zero TMA delays the reload by a tick
	if c.mem.Read(types.TMA) == 0 {
		c.mem.Set(types.TIMA, 0)
		c.overflow = true
		return
	}
	c.reload()
}

// reload loads TMA into TIMA and requests the timer interrupt.
func (c *Controller) reload() {
	c.mem.Set(types.TIMA, c.mem.Read(types.TMA))
	c.mem.Set(types.IF, c.mem.Read(types.IF)|interrupts.TimerFlag)
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.overflow = s.ReadBool()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.WriteBool(c.overflow)
}
