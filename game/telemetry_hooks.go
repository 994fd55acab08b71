package game

import (
	"github.com/pthm-cable/ecosystem/telemetry"
)

// flushTelemetry writes the stats window once it is complete, or
// unconditionally when force is set and the window holds at least one tick.
func (g *Game) flushTelemetry(force bool) {
	if !g.collector.ShouldFlush(g.tick) {
		if !force || g.tick == g.collector.WindowStartTick() {
			return
		}
	}

	stats := g.collector.Flush(g.tick, g.Census())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}

// Census samples the current population.
func (g *Game) Census() telemetry.Census {
	return telemetry.TakeCensus(g.store)
}

// Snapshot captures the current state.
func (g *Game) Snapshot() *telemetry.Snapshot {
	return telemetry.NewSnapshot(g.store, g.runID, g.rngSeed, g.tick)
}

// SaveSnapshot writes the current state to the snapshot directory.
// Returns "" without error when no directory is configured.
func (g *Game) SaveSnapshot() (string, error) {
	if g.snapshotDir == "" {
		return "", nil
	}

	path, err := telemetry.SaveSnapshot(g.cfg, g.Snapshot(), g.snapshotDir)
	if err != nil {
		return "", err
	}

	g.logger.Info("snapshot saved", "path", path, "tick", g.tick)
	return path, nil
}
