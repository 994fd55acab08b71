package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/ecosystem/organisms"
)

// LifetimeStats tracks per-entity statistics over its lifetime.
type LifetimeStats struct {
	Organism        organisms.OrganismType
	BirthTick       int32
	SurvivalTimeSec float32

	Moves        int
	Rests        int
	RefusedMoves int
	Collisions   int
	EnergySpent  float32
}

// LogValue implements slog.LogValuer for structured logging.
func (ls LifetimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", ls.Organism.ShortName()),
		slog.Int("birth_tick", int(ls.BirthTick)),
		slog.Float64("survival_sec", float64(ls.SurvivalTimeSec)),
		slog.Int("moves", ls.Moves),
		slog.Int("rests", ls.Rests),
		slog.Int("refused_moves", ls.RefusedMoves),
		slog.Int("collisions", ls.Collisions),
		slog.Float64("energy_spent", float64(ls.EnergySpent)),
	)
}

// LifetimeTracker manages per-entity lifetime statistics, keyed by entity ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
	dt    float32
}

// NewLifetimeTracker creates a new lifetime tracker; dt converts ticks to seconds.
func NewLifetimeTracker(dt float32) *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
		dt:    dt,
	}
}

// Record applies one event. A spawn starts tracking (replacing any stale
// entry for a recycled ID); a death stops it and returns the final stats.
// Other events return nil.
func (lt *LifetimeTracker) Record(ev Event) *LifetimeStats {
	switch ev.Type {
	case EventSpawn:
		lt.stats[ev.EntityID] = &LifetimeStats{Organism: ev.Organism, BirthTick: ev.Tick}
	case EventDeath:
		s := lt.Remove(ev.EntityID)
		if s != nil {
			s.SurvivalTimeSec = float32(ev.Tick-s.BirthTick) * lt.dt
		}
		return s
	case EventMove:
		if s := lt.stats[ev.EntityID]; s != nil {
			s.Moves++
			s.EnergySpent += ev.Amount
		}
	case EventRest:
		if s := lt.stats[ev.EntityID]; s != nil {
			s.Rests++
		}
	case EventRefusedMove:
		if s := lt.stats[ev.EntityID]; s != nil {
			s.RefusedMoves++
		}
	case EventCollision:
		if s := lt.stats[ev.EntityID]; s != nil {
			s.Collisions++
		}
		if s := lt.stats[ev.OtherID]; s != nil {
			s.Collisions++
		}
	}
	return nil
}

// Get returns the lifetime stats for an entity, or nil if not found.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove removes an entity's stats and returns them.
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// Count returns the number of tracked entities.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
