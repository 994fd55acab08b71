// Package game wires a world.Store, the systems pipeline and telemetry into
// one headless run.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/ecosystem/config"
	"github.com/pthm-cable/ecosystem/systems"
	"github.com/pthm-cable/ecosystem/telemetry"
	"github.com/pthm-cable/ecosystem/world"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool                // log each stats window via slog
	StatsWindowSec float64             // 0 = use config
	SnapshotDir    string              // empty = no snapshots
	OutputDir      string              // empty = no CSV output
	Decider        systems.Decider     // nil = always rest
	Logger         *slog.Logger        // nil = slog.Default()
	Restore        *telemetry.Snapshot // start from this state instead of spawning
}

// Game holds the complete run state.
type Game struct {
	cfg     *config.Config
	logger  *slog.Logger
	rng     *rand.Rand
	rngSeed int64
	runID   uuid.UUID

	store    *world.Store
	pipeline *systems.Pipeline

	collector       *telemetry.Collector
	lifetimeTracker *telemetry.LifetimeTracker
	perfCollector   *telemetry.PerfCollector
	outputManager   *telemetry.OutputManager
	statsCallback   func(telemetry.WindowStats)

	tick        int32
	logStats    bool
	snapshotDir string
}

// NewGameWithOptions creates a game, writes the run config to the output
// directory and populates the world.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing run config: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,
		runID:   uuid.New(),

		store: world.New(cfg, world.WithLogger(logger)),

		collector:       telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		lifetimeTracker: telemetry.NewLifetimeTracker(cfg.Derived.DT32),
		perfCollector:   telemetry.NewPerfCollector(60),
		outputManager:   om,

		logStats:    opts.LogStats,
		snapshotDir: opts.SnapshotDir,
	}
	g.pipeline = systems.NewPipeline(g.store, opts.Decider, g, systems.WithPerf(g.perfCollector))

	if opts.Restore != nil {
		if err := g.restore(opts.Restore); err != nil {
			om.Close()
			return nil, err
		}
	} else {
		g.spawnInitialPopulation()
	}

	return g, nil
}

// Record stamps ev with the current tick and forwards it to telemetry.
func (g *Game) Record(ev telemetry.Event) {
	ev.Tick = g.tick
	g.collector.Record(ev)
	if final := g.lifetimeTracker.Record(ev); final != nil {
		g.logger.Debug("organism lifetime", "id", ev.EntityID, "stats", *final)
	}
}

// Step runs one observation cycle and flushes telemetry when a window closes.
func (g *Game) Step() {
	g.pipeline.Step(g.cfg.Derived.DT32)
	g.tick++
	g.flushTelemetry(false)
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Store returns the entity store.
func (g *Game) Store() *world.Store {
	return g.store
}

// Tick returns the number of completed cycles.
func (g *Game) Tick() int32 {
	return g.tick
}

// RunID identifies this run in snapshots.
func (g *Game) RunID() uuid.UUID {
	return g.runID
}

// Unload flushes the partial stats window and closes output files.
func (g *Game) Unload() error {
	g.flushTelemetry(true)
	return g.outputManager.Close()
}
