package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/akmonengine/hop"
	"github.com/akmonengine/hop/internal/config"
	"github.com/akmonengine/hop/internal/logger"
	"github.com/akmonengine/hop/internal/watch"
)

type options struct {
	configPath string
	ticks      int
	jumpAt     map[uint64]bool
	releaseAt  map[uint64]bool
	realtime   bool
	watch      bool
	logLevel   string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Invalid arguments", "error", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", opts.configPath, "error", err)
		os.Exit(1)
	}
	initLogger(cfg, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		err = watchAndRun(ctx, cfg, opts)
	} else {
		err = run(ctx, cfg, opts)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("hop", flag.ContinueOnError)

	opts := options{}
	var jumpAt, releaseAt string
	fs.StringVar(&opts.configPath, "config", "configs/hop.yaml", "path of the YAML configuration, defaults are used when missing")
	fs.IntVar(&opts.ticks, "ticks", 300, "number of ticks to simulate")
	fs.StringVar(&jumpAt, "jump-at", "1", "comma separated ticks on which the jump key is pressed")
	fs.StringVar(&releaseAt, "release-at", "", "comma separated ticks on which the jump key is released")
	fs.BoolVar(&opts.realtime, "realtime", false, "pace ticks with the configured interval")
	fs.BoolVar(&opts.watch, "watch", false, "run again each time the configuration file changes")
	fs.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.ticks <= 0 {
		return opts, fmt.Errorf("ticks must be positive, got %d", opts.ticks)
	}

	var err error
	if opts.jumpAt, err = parseTicks(jumpAt); err != nil {
		return opts, fmt.Errorf("jump-at: %w", err)
	}
	if opts.releaseAt, err = parseTicks(releaseAt); err != nil {
		return opts, fmt.Errorf("release-at: %w", err)
	}

	return opts, nil
}

func parseTicks(list string) (map[uint64]bool, error) {
	ticks := make(map[uint64]bool)
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, err
		}
		ticks[n] = true
	}

	return ticks, nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if os.IsNotExist(err) {
		slog.Warn("Config file not found, using defaults", "path", path)
		return config.Default(), nil
	}

	return cfg, err
}

func initLogger(cfg *config.Config, opts options) {
	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger.Init(logger.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	})
}

// run simulates opts.ticks ticks, pressing and releasing the jump key as scripted
func run(ctx context.Context, cfg *config.Config, opts options) error {
	hopConfig, err := cfg.Hop()
	if err != nil {
		return err
	}
	sim, err := hop.New(hopConfig)
	if err != nil {
		return err
	}
	sim.Logger = slog.Default()

	sim.Events.Subscribe(hop.BOUNCE, func(event hop.Event) {
		bounce := event.(hop.BounceEvent)
		slog.Info("bounce",
			"tick", bounce.Tick,
			"height", bounce.Position.Y(),
			"impact", bounce.ImpactSpeed,
			"rebound", bounce.ReboundSpeed)
	})

	slog.Info("Starting simulation",
		"mode", hopConfig.Mode,
		"policy", hopConfig.JumpPolicy,
		"restitution", hopConfig.Restitution,
		"step", hopConfig.Step,
		"ticks", opts.ticks)

	clock := hop.NewClock(hopConfig.Interval)
	done := errors.New("done")
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	tick := func(n uint64) {
		if opts.jumpAt[n] {
			sim.Jump()
		}
		if opts.releaseAt[n] {
			sim.Release()
		}
		sim.Tick()
		if n >= uint64(opts.ticks) {
			cancel(done)
		}
	}

	if opts.realtime {
		err = clock.Run(ctx, tick)
		if errors.Is(context.Cause(ctx), done) {
			err = nil
		}
	} else {
		clock.Steps(opts.ticks, tick)
	}

	position := sim.Position()
	slog.Info("Simulation finished",
		"ticks", sim.Ticks(),
		"phase", sim.Phase(),
		"position", fmt.Sprintf("(%.3f, %.3f, %.3f)", position.X(), position.Y(), position.Z()))

	return err
}

func watchAndRun(ctx context.Context, cfg *config.Config, opts options) error {
	w, err := watch.New(opts.configPath)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := run(ctx, cfg, opts); err != nil {
		return err
	}

	slog.Info("Watching configuration", "path", opts.configPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-w.Errors:
			slog.Warn("Watch error", "error", err)
		case <-w.Events:
			next, err := config.Load(opts.configPath)
			if err != nil {
				slog.Error("Invalid configuration, keeping the previous run", "error", err)
				continue
			}
			if err := run(ctx, next, opts); err != nil {
				return err
			}
		}
	}
}
