// Package gameboy ties the CPU, memory, timer, interrupts and serial
// port together into a runnable Game Boy core.
package gameboy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// CyclesPerFrame is the number of M-cycles in a frame, the
// interval GameShark codes are applied at.
const CyclesPerFrame = 70224 / 4

// stateMagic prefixes every uncompressed save state.
var stateMagic = []byte("GBCS")

var (
	// ErrStateMismatch is returned by LoadState when the state was
	// saved from a different ROM.
	ErrStateMismatch = errors.New("gameboy: state belongs to a different rom")
	// ErrInvalidState is returned by LoadState when the state
	// cannot be decoded.
	ErrInvalidState = errors.New("gameboy: invalid state")
)

// GameBoy represents a Game Boy. It contains all the components of
// the Game Boy, and is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller

	log.Logger

	fingerprint uint64
	clock       uint64 // elapsed M-cycles

	writers  []io.Writer
	watch    *watcher
	maxSteps uint64
	state    []byte
	cheats   *cheats.Set
}

// NewGameBoy returns a new GameBoy running the given ROM image,
// with the CPU in its post boot state.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	memBus, err := mmu.New(rom)
	if err != nil {
		return nil, err
	}
	c := cpu.New(memBus)

	g := &GameBoy{
		CPU:        c,
		MMU:        memBus,
		Interrupts: interrupts.NewService(memBus, c),
		Timer:      timer.NewController(memBus),
		Serial:     serial.NewController(memBus, nil),

		Logger:      log.NewNullLogger(),
		fingerprint: utils.Fingerprint(rom),
		watch:       &watcher{},
	}

	for _, opt := range opts {
		opt(g)
	}

	g.Serial.Attach(io.MultiWriter(append(g.writers, g.watch)...))

	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			return nil, err
		}
		g.state = nil
	}

	if g.cheats != nil {
		patched := g.cheats.Patch(g.MMU)
		g.Debugf("gameboy: %d of %d game genie codes patched", patched, len(g.cheats.Genie))
	}

	g.Debugf("gameboy: loaded rom %016x (%d bytes)", g.fingerprint, len(rom))
	return g, nil
}

// Step executes a single instruction, advancing the timer by its
// cycles and then dispatching any pending interrupt and serial
// transfer. It returns the M-cycles taken, dispatch included.
func (g *GameBoy) Step() (int, error) {
	cycles, err := g.CPU.Step()
	if err != nil {
		return 0, g.fatal(err)
	}
	g.advance(cycles)

	if dispatched := g.Interrupts.Dispatch(); dispatched > 0 {
		g.advance(dispatched)
		cycles += dispatched
	}

	if err := g.Serial.Poll(); err != nil {
		return cycles, fmt.Errorf("gameboy: serial: %w", err)
	}
	return cycles, nil
}

func (g *GameBoy) advance(cycles int) {
	g.Timer.Step(g.clock, uint64(cycles), g.CPU.Stopped())
	if g.cheats != nil && timer.Ticks(g.clock, uint64(cycles), CyclesPerFrame) > 0 {
		g.cheats.Apply(g.MMU)
	}
	g.clock += uint64(cycles)
}

// Run steps the GameBoy until an error occurs, the step limit is
// reached, the serial output contains the stop string, or ctx is
// cancelled. Reaching the step limit or the stop string is not an
// error.
func (g *GameBoy) Run(ctx context.Context) error {
	for steps := uint64(0); ; steps++ {
		if g.watch.matched {
			g.Infof("gameboy: serial output matched %q after %d steps", g.watch.until, steps)
			return nil
		}
		if g.maxSteps > 0 && steps >= g.maxSteps {
			g.Infof("gameboy: reached step limit of %d", g.maxSteps)
			return nil
		}
		if steps%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if _, err := g.Step(); err != nil {
			return err
		}
	}
}

// Matched returns true if the serial output has contained the
// string given to Until.
func (g *GameBoy) Matched() bool {
	return g.watch.matched
}

// Clock returns the number of M-cycles elapsed.
func (g *GameBoy) Clock() uint64 {
	return g.clock
}

// History returns the most recently executed instructions, oldest
// first, or nil if history is disabled.
func (g *GameBoy) History() []cpu.Entry {
	if g.CPU.History == nil {
		return nil
	}
	return g.CPU.History.Entries()
}

// fatal logs err along with the CPU state and history, and returns
// it wrapped with the current step.
func (g *GameBoy) fatal(err error) error {
	g.Fatal(err.Error())
	g.Errorf("%s", g.CPU)
	if g.CPU.History != nil {
		var b strings.Builder
		g.CPU.History.WriteTo(&b)
		g.Errorf("last %d instructions:\n%s", len(g.History()), b.String())
	}
	return fmt.Errorf("gameboy: step %d: %w", g.CPU.Steps(), err)
}

// SaveState returns the compressed state of the GameBoy.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	s.WriteData(stateMagic)
	s.Write64(g.fingerprint)
	s.Write64(g.clock)
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.Timer.Save(s)

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(s.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadState restores a state returned by SaveState. The state must
// have been saved while running the same ROM.
func (g *GameBoy) LoadState(b []byte) error {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	s := types.StateFromBytes(raw)
	magic := make([]byte, len(stateMagic))
	s.ReadData(magic)
	if !bytes.Equal(magic, stateMagic) {
		return ErrInvalidState
	}
	if fingerprint := s.Read64(); fingerprint != g.fingerprint {
		return fmt.Errorf("%w: %016x", ErrStateMismatch, fingerprint)
	}

	// decode into scratch components first, so that a bad state
	// leaves the GameBoy untouched
	body := raw[len(raw)-s.Remaining():]
	mem := &mmu.MMU{}
	loadComponents(s, cpu.New(mem), mem, timer.NewController(mem))
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if n := s.Remaining(); n != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidState, n)
	}

	g.clock = loadComponents(types.StateFromBytes(body), g.CPU, g.MMU, g.Timer)
	return nil
}

// loadComponents reads the clock followed by the state of each
// component, in the order SaveState writes them.
func loadComponents(s *types.State, c *cpu.CPU, m *mmu.MMU, t *timer.Controller) uint64 {
	clock := s.Read64()
	c.Load(s)
	m.Load(s)
	t.Load(s)
	return clock
}

// watcher looks for a string in the serial output.
type watcher struct {
	until   []byte
	tail    []byte
	matched bool
}

func (w *watcher) Write(p []byte) (int, error) {
	if len(w.until) == 0 || w.matched {
		return len(p), nil
	}

	w.tail = append(w.tail, p...)
	if bytes.Contains(w.tail, w.until) {
		w.matched = true
	}
	if keep := len(w.until) - 1; len(w.tail) > keep {
		copy(w.tail, w.tail[len(w.tail)-keep:])
		w.tail = w.tail[:keep]
	}
	return len(p), nil
}
