package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/config"
	"github.com/pthm-cable/ecosystem/telemetry"
	"github.com/pthm-cable/ecosystem/world"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestStore(t *testing.T) *world.Store {
	t.Helper()
	return world.New(testConfig(t))
}

// eventLog records every event it receives.
type eventLog struct {
	events []telemetry.Event
}

func (l *eventLog) Record(ev telemetry.Event) { l.events = append(l.events, ev) }

func (l *eventLog) count(typ telemetry.EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

// rebuildGrid indexes every living organism of s into a fresh grid.
func rebuildGrid(s *world.Store) *SpatialGrid {
	cfg := s.Config()
	grid := NewSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, float32(cfg.Physics.GridCellSize))
	grid.Rebuild(ecs.NewFilter1[components.Position](s.World()).
		With(ecs.C[components.Organism](), ecs.C[components.Alive]()))
	return grid
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}
