package gameboy

import (
	"io"

	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithSerialWriter adds a writer receiving every byte transferred
// over the serial port. It may be given more than once.
func WithSerialWriter(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.writers = append(gb.writers, w)
	}
}

// WithHistory records the last n executed instructions, which are
// logged when execution fails.
func WithHistory(n int) Opt {
	return func(gb *GameBoy) {
		gb.CPU.History = cpu.NewHistory(n)
	}
}

// WithSentinels enables the PC and SP sanity checks.
func WithSentinels() Opt {
	return func(gb *GameBoy) {
		gb.CPU.Sentinels = true
	}
}

// WithState restores the given save state once the GameBoy
// has been created.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// MaxSteps stops Run after n steps.
func MaxSteps(n uint64) Opt {
	return func(gb *GameBoy) {
		gb.maxSteps = n
	}
}

// Until stops Run once the serial output contains s.
func Until(s string) Opt {
	return func(gb *GameBoy) {
		gb.watch.until = []byte(s)
	}
}

// WithCheats patches the Game Genie codes of s into the ROM, and
// applies its GameShark codes once per frame.
func WithCheats(s *cheats.Set) Opt {
	return func(gb *GameBoy) {
		gb.cheats = s
	}
}
