package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/config"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/statsview"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
	"github.com/thelolagemann/gbcore/pkg/web"
	"golang.org/x/sync/errgroup"
)

const usage = `Usage: gbcore [flags] <rom>

Runs a Game Boy ROM on the CPU core, echoing its serial output.
The ROM may be raw or compressed (.gz, .zip, .7z, .xz, .zst, .lz4).

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := log.NewWithWriter(stderr, cfg.Debug)

	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		logger.Fatal(err.Error())
		return 1
	}
	logger.Infof("loaded %s (%d bytes, %s)", filepath.Base(cfg.ROM), len(rom), utils.FingerprintString(rom))

	title := filepath.Base(cfg.ROM)
	if header, err := cartridge.ParseHeader(rom); err != nil {
		logger.Debugf("%v", err)
	} else {
		logger.Infof("%s", header)
		if !header.Valid() {
			logger.Errorf("header checksum mismatch: 0x%02X != 0x%02X", header.HeaderChecksum, header.ComputedChecksum)
		}
		if header.CartridgeType.Banked() {
			logger.Errorf("%s cartridges are not supported, bank switching writes will land in ROM", header.CartridgeType)
		}
		if header.Title != "" {
			title = header.Title
		}
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.MaxSteps(cfg.MaxSteps),
	}
	if !cfg.Quiet {
		opts = append(opts, gameboy.WithSerialWriter(stdout))
	}
	if cfg.History > 0 {
		opts = append(opts, gameboy.WithHistory(cfg.History))
	}
	if cfg.Sentinels {
		opts = append(opts, gameboy.WithSentinels())
	}
	if cfg.Until != "" {
		opts = append(opts, gameboy.Until(cfg.Until))
	}
	if cfg.State != "" {
		state, err := os.ReadFile(cfg.State)
		if err != nil {
			logger.Fatal(err.Error())
			return 1
		}
		opts = append(opts, gameboy.WithState(state))
	}

	if cfg.Cheats != "" {
		set, err := cheats.ParseFile(cfg.Cheats)
		if err != nil {
			logger.Fatal(err.Error())
			return 1
		}
		logger.Infof("loaded %d cheats from %s", set.Len(), cfg.Cheats)
		opts = append(opts, gameboy.WithCheats(set))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	serveCtx, cancelServe := context.WithCancel(groupCtx)
	defer cancelServe()

	if cfg.Serve != "" {
		hub := web.NewHub(title, logger)
		opts = append(opts, gameboy.WithSerialWriter(hub))
		group.Go(func() error { return hub.Run(serveCtx) })
		group.Go(func() error { return hub.ListenAndServe(serveCtx, cfg.Serve) })
	}
	if cfg.StatsView {
		group.Go(func() error { return statsview.Run(serveCtx, "", stderr) })
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		cancelServe()
		group.Wait()
		logger.Fatal(err.Error())
		return 1
	}

	var runErr error
	group.Go(func() error {
		defer cancelServe()
		runErr = gb.Run(serveCtx)
		return nil
	})
	waitErr := group.Wait()

	code := exitCode(gb, cfg, runErr, logger)
	if waitErr != nil {
		logger.Errorf("%v", waitErr)
		code = 1
	}

	if cfg.SaveState != "" {
		if err := saveState(gb, cfg.SaveState); err != nil {
			logger.Errorf("saving state: %v", err)
			code = 1
		} else {
			logger.Infof("state saved to %s", cfg.SaveState)
		}
	}
	return code
}

// exitCode reports the outcome of the run and returns the exit code.
func exitCode(gb *gameboy.GameBoy, cfg *config.Config, err error, logger log.Logger) int {
	var undefined *cpu.UndefinedOpcodeError
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Infof("interrupted after %d steps", gb.CPU.Steps())
		return 130
	case errors.Is(err, context.DeadlineExceeded):
		logger.Errorf("timed out after %s", cfg.Timeout)
		return 1
	case errors.As(err, &undefined), errors.Is(err, cpu.ErrSentinel):
		var b strings.Builder
		if dumpErr := gb.MMU.Dump(&b, 0xFF00, 0x100); dumpErr == nil {
			logger.Debugf("high memory:\n%s", b.String())
		}
		return 1
	default:
		logger.Fatal(err.Error())
		return 1
	}

	if cfg.Until != "" && !gb.Matched() {
		logger.Errorf("serial output never contained %q", cfg.Until)
		return 1
	}
	return 0
}

func saveState(gb *gameboy.GameBoy, path string) error {
	state, err := gb.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, state, 0o644)
}

// loadConfig parses args, loading the file named by -config first so
// that the remaining flags override it. A trailing argument is taken
// as the ROM.
func loadConfig(args []string, output io.Writer) (*config.Config, error) {
	var path string
	cfg := config.Default()
	fs := newFlagSet(cfg, &path, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		fs = newFlagSet(cfg, &path, output)
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	if fs.NArg() > 0 {
		cfg.ROM = fs.Arg(0)
	}
	return cfg, cfg.Validate()
}

func newFlagSet(cfg *config.Config, path *string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("gbcore", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(path, "config", *path, "A YAML file to load the configuration from")
	cfg.RegisterFlags(fs)
	return fs
}
