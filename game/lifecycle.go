package game

import (
	"fmt"

	"github.com/pthm-cable/ecosystem/telemetry"
)

// spawnInitialPopulation creates the starting entities.
func (g *Game) spawnInitialPopulation() {
	for _, e := range g.store.SpawnInitialPopulation(g.rng) {
		t, _ := g.store.Type(e)
		g.Record(telemetry.NewSpawnEvent(e.ID(), t))
	}
}

// restore rebuilds the world from snap and continues its tick count.
// The run keeps its own ID.
func (g *Game) restore(snap *telemetry.Snapshot) error {
	entities, err := g.store.Restore(snap.Entities)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}

	g.tick = snap.Tick
	g.collector.ResetWindow(g.tick)

	// Restored organisms are tracked but not counted as spawns.
	for _, e := range entities {
		t, _ := g.store.Type(e)
		ev := telemetry.NewSpawnEvent(e.ID(), t)
		ev.Tick = g.tick
		g.lifetimeTracker.Record(ev)
	}

	g.logger.Info("restored snapshot",
		"source_run", snap.RunID.String(),
		"tick", snap.Tick,
		"entities", len(entities),
	)
	return nil
}
