// Package config loads the runtime configuration of gbcore from a
// YAML file and the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/thelolagemann/gbcore/pkg/utils"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultHistory is the number of instructions kept for
	// diagnostics when execution fails.
	DefaultHistory = 32
	// MaxHistory is the largest history that may be configured.
	MaxHistory = 1 << 16
)

// ErrNoROM is returned by Validate when no ROM has been given.
var ErrNoROM = errors.New("config: no rom given")

// Config is the runtime configuration.
type Config struct {
	// ROM is the path of the ROM image, optionally compressed.
	ROM string `yaml:"rom"`
	// State is the path of a save state to load on start.
	State string `yaml:"state"`
	// SaveState is the path the state is written to on exit.
	SaveState string `yaml:"save_state"`
	// Cheats is the path of a cheat file to apply.
	Cheats string `yaml:"cheats"`

	MaxSteps  uint64        `yaml:"max_steps"`
	Until     string        `yaml:"until"`
	Timeout   time.Duration `yaml:"timeout"`
	History   int           `yaml:"history"`
	Sentinels bool          `yaml:"sentinels"`

	Debug bool `yaml:"debug"`
	Quiet bool `yaml:"quiet"`

	// Serve is the address the websocket hub listens on, if set.
	Serve string `yaml:"serve"`
	// StatsView launches the runtime stats server.
	StatsView bool `yaml:"statsview"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		History: DefaultHistory,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}

// RegisterFlags registers the configuration fields on fs, using the
// current values as defaults so that flags override a loaded file.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ROM, "rom", c.ROM, "The rom file to load")
	fs.StringVar(&c.State, "state", c.State, "The state file to load")
	fs.StringVar(&c.SaveState, "save-state", c.SaveState, "The file to save the state to on exit")
	fs.StringVar(&c.Cheats, "cheats", c.Cheats, "The cheat file to apply")
	fs.Uint64Var(&c.MaxSteps, "max-steps", c.MaxSteps, "Stop after this many steps (0 for no limit)")
	fs.StringVar(&c.Until, "until", c.Until, "Stop once the serial output contains this string")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Stop after this long (0 for no limit)")
	fs.IntVar(&c.History, "history", c.History, "The number of instructions to keep for diagnostics")
	fs.BoolVar(&c.Sentinels, "sentinels", c.Sentinels, "Fail when PC or SP leave their sane range")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "Do not echo serial output to stdout")
	fs.StringVar(&c.Serve, "serve", c.Serve, "Serve serial output over websockets on this address")
	fs.BoolVar(&c.StatsView, "statsview", c.StatsView, "Launch the runtime stats server")
}

// Validate checks the configuration, clamping the history size
// into range.
func (c *Config) Validate() error {
	if c.ROM == "" {
		return ErrNoROM
	}
	c.History = utils.Clamp(0, c.History, MaxHistory)
	return nil
}
