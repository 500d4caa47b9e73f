package timer

import "fmt"

// DividerPeriod is the number of M-cycles between increments
// of types.DIV (16384Hz).
const DividerPeriod uint64 = 64

// periods maps the TAC clock select to the number of M-cycles
// between increments of types.TIMA.
//
//	00 - 4096Hz   (256 M-cycles)
//	01 - 262144Hz (4 M-cycles)
//	10 - 65536Hz  (16 M-cycles)
//	11 - 16384Hz  (64 M-cycles)
var periods = [4]uint64{256, 4, 16, 64}

// Control is the decoded value of the types.TAC register.
type Control struct {
	// Enabled is bit 2 of TAC.
	Enabled bool
	// Speed is bits 0-1 of TAC.
	Speed uint8
}

// ParseControl decodes a TAC value. Bits 3-7 are ignored.
func ParseControl(tac uint8) Control {
	return Control{
		Enabled: tac&0b100 != 0,
		Speed:   tac & 0b11,
	}
}

// Period returns the number of M-cycles between increments
// of types.TIMA.
func (c Control) Period() uint64 {
	return periods[c.Speed&0b11]
}

func (c Control) String() string {
	return fmt.Sprintf("enabled=%t period=%d", c.Enabled, c.Period())
}

// Ticks returns how many multiples of period are crossed when
// a clock advances from before to before+elapsed. The clock is
// treated as a saw-tooth counter modulo period, so a crossing
// in the middle of a multi-cycle instruction is never missed.
func Ticks(before, elapsed, period uint64) uint64 {
	from := before % period
	to := (before + elapsed) % period

	ticks := elapsed / period
	if to < from {
		ticks++
	}
	return ticks
}
