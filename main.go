package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/ecosystem/config"
	"github.com/pthm-cable/ecosystem/game"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/renderer"
	"github.com/pthm-cable/ecosystem/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files (empty = output dir)")
	restorePath := flag.String("restore", "", "Start from a saved snapshot instead of a fresh population")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	snapDir := *snapshotDir
	if snapDir == "" {
		snapDir = *outputDir
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    true,
		SnapshotDir: snapDir,
		OutputDir:   *outputDir,
		Logger:      logger,
	}

	if *restorePath != "" {
		snap, err := telemetry.LoadSnapshot(*restorePath)
		if err != nil {
			slog.Error("failed to load snapshot", "path", *restorePath, "error", err)
			os.Exit(1)
		}
		opts.Restore = snap
	}

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	palette := renderer.Palette()
	for _, t := range organisms.All() {
		sw := palette[t]
		slog.Debug("sprite",
			"type", t.ShortName(),
			"shape", sw.Shape.String(),
			"living", []uint8{sw.Living.R, sw.Living.G, sw.Living.B, sw.Living.A},
			"corpse", []uint8{sw.Corpse.R, sw.Corpse.G, sw.Corpse.B, sw.Corpse.A},
			"width", sw.Size.X,
			"height", sw.Size.Y,
		)
	}

	slog.Info("running observation cycle",
		"run_id", g.RunID().String(),
		"seed", rngSeed,
		"organisms", g.Store().Count(),
	)

	g.Step()

	census := g.Census()
	slog.Info("census",
		"tick", g.Tick(),
		"blue", census.Count(organisms.Blue),
		"red", census.Count(organisms.Red),
		"plant", census.Count(organisms.Plant),
		"corpses", census.Corpses,
	)

	if _, err := g.SaveSnapshot(); err != nil {
		if errors.Is(err, telemetry.ErrSerializationDisabled) {
			slog.Info("snapshot skipped", "reason", err.Error())
		} else {
			slog.Error("failed to save snapshot", "error", err)
		}
	}

	if err := g.Unload(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}
