package world

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
)

// SpawnInitialPopulation places the configured number of organisms of each
// type at uniformly random positions inside the world.
func (s *Store) SpawnInitialPopulation(rng *rand.Rand) []ecs.Entity {
	w, h := s.cfg.Derived.WorldW32, s.cfg.Derived.WorldH32

	var spawned []ecs.Entity
	for _, t := range organisms.All() {
		n := s.cfg.Population.Initial(t)
		for i := 0; i < n; i++ {
			pos := components.Position{X: rng.Float32() * w, Y: rng.Float32() * h}
			spawned = append(spawned, s.Spawn(t, pos))
		}
	}

	s.logger.Info("spawned initial population",
		"blue", s.cfg.Population.Blue,
		"red", s.cfg.Population.Red,
		"plant", s.cfg.Population.Plant,
	)
	return spawned
}

// Kill turns a living organism into a corpse: it loses Alive, becomes
// Edible and starts decaying. Killing a corpse or a missing entity is a
// no-op and returns false.
//
// Must not be called while a query is open.
func (s *Store) Kill(e ecs.Entity) bool {
	if !HasMarker[components.Alive](s, e) {
		return false
	}

	Unmark[components.Alive](s, e)
	Unmark[components.Newborn](s, e)
	Mark[components.Edible](s, e)
	if !s.corpseMap.Has(e) {
		s.corpseMap.Add(e, &components.Corpse{})
	}

	*s.Command(e) = components.Rest()
	s.Activity(e).SetActivity(components.ActivityResting)
	s.Observation(e).ClearObservations()

	s.logger.Debug("organism died", "id", e.ID())
	return true
}
