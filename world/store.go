// Package world hosts ecosystem entities in an ark ECS world.
//
// The store owns entity identity and component tables. Systems that need to
// iterate build their own filters over World().
package world

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/config"
	"github.com/pthm-cable/ecosystem/organisms"
)

// Store is the entity store for one ecosystem.
type Store struct {
	world  *ecs.World
	cfg    *config.Config
	logger *slog.Logger

	// spawner creates an organism with all its records and markers in one archetype move
	spawner *ecs.Map12[
		organisms.OrganismType,
		components.Position,
		components.Health,
		components.Energy,
		components.Collision,
		components.Vision,
		components.CurrentActivity,
		components.ActionCommand,
		components.ObservationData,
		components.Organism,
		components.Alive,
		components.Newborn,
	]

	typeMap        *ecs.Map[organisms.OrganismType]
	posMap         *ecs.Map[components.Position]
	healthMap      *ecs.Map[components.Health]
	energyMap      *ecs.Map[components.Energy]
	collisionMap   *ecs.Map[components.Collision]
	visionMap      *ecs.Map[components.Vision]
	activityMap    *ecs.Map[components.CurrentActivity]
	commandMap     *ecs.Map[components.ActionCommand]
	observationMap *ecs.Map[components.ObservationData]
	corpseMap      *ecs.Map[components.Corpse]
	edibleMap      *ecs.Map[components.Edible]

	organismFilter *ecs.Filter1[organisms.OrganismType]
	aliveFilter    *ecs.Filter1[organisms.OrganismType]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty store using cfg for species templates.
func New(cfg *config.Config, opts ...Option) *Store {
	w := ecs.NewWorld()

	s := &Store{
		world:  w,
		cfg:    cfg,
		logger: slog.Default(),
		spawner: ecs.NewMap12[
			organisms.OrganismType,
			components.Position,
			components.Health,
			components.Energy,
			components.Collision,
			components.Vision,
			components.CurrentActivity,
			components.ActionCommand,
			components.ObservationData,
			components.Organism,
			components.Alive,
			components.Newborn,
		](w),
		typeMap:        ecs.NewMap[organisms.OrganismType](w),
		posMap:         ecs.NewMap[components.Position](w),
		healthMap:      ecs.NewMap[components.Health](w),
		energyMap:      ecs.NewMap[components.Energy](w),
		collisionMap:   ecs.NewMap[components.Collision](w),
		visionMap:      ecs.NewMap[components.Vision](w),
		activityMap:    ecs.NewMap[components.CurrentActivity](w),
		commandMap:     ecs.NewMap[components.ActionCommand](w),
		observationMap: ecs.NewMap[components.ObservationData](w),
		corpseMap:      ecs.NewMap[components.Corpse](w),
		edibleMap:      ecs.NewMap[components.Edible](w),
		organismFilter: ecs.NewFilter1[organisms.OrganismType](w).With(ecs.C[components.Organism]()),
		aliveFilter:    ecs.NewFilter1[organisms.OrganismType](w).With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// World returns the underlying ECS world.
func (s *Store) World() *ecs.World {
	return s.world
}

// Config returns the configuration the store was built with.
func (s *Store) Config() *config.Config {
	return s.cfg
}

// Spawn creates an organism of type t at pos using the species template.
// Plants are spawned edible.
func (s *Store) Spawn(t organisms.OrganismType, pos components.Position) ecs.Entity {
	sp := s.cfg.SpeciesFor(t)

	radius := float32(sp.Radius)
	if radius <= 0 {
		radius = t.Size()
	}

	health := components.NewHealth(float32(sp.MaxHealth))
	energy := components.NewEnergy(float32(sp.MaxEnergy), float32(sp.MovementCost), float32(sp.RegenRate))
	collision := components.NewCollision(radius)
	vision := components.NewVision(float32(sp.VisionRange))
	activity := components.NewCurrentActivity(components.ActivityResting)
	command := components.Rest()
	obs := components.NewObservationData(components.NewSelfState(health.Ratio(), energy.Ratio(), pos.Vec2()))

	e := s.spawner.NewEntity(
		&t, &pos, &health, &energy, &collision, &vision, &activity, &command, &obs,
		&components.Organism{}, &components.Alive{}, &components.Newborn{},
	)
	if t == organisms.Plant {
		s.edibleMap.Add(e, &components.Edible{})
	}

	s.logger.Debug("spawned organism", "id", e.ID(), "type", t.ShortName(), "x", pos.X, "y", pos.Y)
	return e
}

// Despawn removes an entity and all its records.
// Removing an entity that is already gone is a no-op.
func (s *Store) Despawn(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.logger.Debug("despawned organism", "id", e.ID())
	s.world.RemoveEntity(e)
}

// Exists reports whether e is still present in the store.
func (s *Store) Exists(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Entities returns every organism in query order.
func (s *Store) Entities() []ecs.Entity {
	var out []ecs.Entity
	query := s.organismFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

// Count returns the number of organisms.
func (s *Store) Count() int {
	query := s.organismFilter.Query()
	n := query.Count()
	query.Close()
	return n
}

// CountByType returns how many living organisms of each type exist,
// indexed by OrganismType.
func (s *Store) CountByType() []int {
	counts := make([]int, organisms.Count())
	query := s.aliveFilter.Query()
	for query.Next() {
		t := query.Get()
		counts[*t]++
	}
	return counts
}

// get returns m's record for e, or nil when e is gone or lacks it.
func get[T any](s *Store, m *ecs.Map[T], e ecs.Entity) *T {
	if !s.world.Alive(e) || !m.Has(e) {
		return nil
	}
	return m.Get(e)
}

// Type returns the organism type of e. ok is false if e has none.
func (s *Store) Type(e ecs.Entity) (organisms.OrganismType, bool) {
	t := get(s, s.typeMap, e)
	if t == nil {
		return 0, false
	}
	return *t, true
}

func (s *Store) Position(e ecs.Entity) *components.Position   { return get(s, s.posMap, e) }
func (s *Store) Health(e ecs.Entity) *components.Health       { return get(s, s.healthMap, e) }
func (s *Store) Energy(e ecs.Entity) *components.Energy       { return get(s, s.energyMap, e) }
func (s *Store) Collision(e ecs.Entity) *components.Collision { return get(s, s.collisionMap, e) }
func (s *Store) Vision(e ecs.Entity) *components.Vision       { return get(s, s.visionMap, e) }
func (s *Store) Activity(e ecs.Entity) *components.CurrentActivity {
	return get(s, s.activityMap, e)
}
func (s *Store) Command(e ecs.Entity) *components.ActionCommand { return get(s, s.commandMap, e) }
func (s *Store) Observation(e ecs.Entity) *components.ObservationData {
	return get(s, s.observationMap, e)
}
func (s *Store) Corpse(e ecs.Entity) *components.Corpse { return get(s, s.corpseMap, e) }
