package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/telemetry"
	"github.com/pthm-cable/ecosystem/world"
)

// VitalitySystem applies starvation, turns dead organisms into corpses,
// retires the Newborn marker and removes decayed corpses.
type VitalitySystem struct {
	store *world.Store

	livingFilter  *ecs.Filter3[organisms.OrganismType, components.Health, components.Energy]
	newbornFilter *ecs.Filter0
	corpseFilter  *ecs.Filter2[organisms.OrganismType, components.Corpse]

	starvationDamage float32 // health per second at zero energy
	corpseDecay      float32 // seconds; 0 keeps corpses forever
	recorder         Recorder

	// scratch buffers reused between updates
	dying    []lifecycleEvent
	newborns []ecs.Entity
	decayed  []lifecycleEvent
}

type lifecycleEvent struct {
	entity ecs.Entity
	kind   organisms.OrganismType
}

// NewVitalitySystem creates a vitality system. A nil recorder discards events.
func NewVitalitySystem(s *world.Store, rec Recorder) *VitalitySystem {
	w := s.World()
	cfg := s.Config()
	return &VitalitySystem{
		store: s,
		livingFilter: ecs.NewFilter3[organisms.OrganismType, components.Health, components.Energy](w).
			With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
		newbornFilter: ecs.NewFilter0(w).With(ecs.C[components.Newborn]()),
		corpseFilter:  ecs.NewFilter2[organisms.OrganismType, components.Corpse](w),

		starvationDamage: float32(cfg.Vitality.StarvationDamage),
		corpseDecay:      float32(cfg.Vitality.CorpseDecay),
		recorder:         recorderOrNop(rec),
	}
}

// Update advances vitality by dt seconds. Structural changes are collected
// during iteration and applied once every query is closed.
func (s *VitalitySystem) Update(dt float32) {
	s.dying = s.dying[:0]
	s.newborns = s.newborns[:0]
	s.decayed = s.decayed[:0]

	// Existing corpses age first so organisms dying this step start fresh.
	corpses := s.corpseFilter.Query()
	for corpses.Next() {
		t, corpse := corpses.Get()
		if dt > 0 {
			corpse.Age += dt
		}
		if s.corpseDecay > 0 && corpse.Age >= s.corpseDecay {
			s.decayed = append(s.decayed, lifecycleEvent{entity: corpses.Entity(), kind: *t})
		}
	}

	newborns := s.newbornFilter.Query()
	for newborns.Next() {
		s.newborns = append(s.newborns, newborns.Entity())
	}

	living := s.livingFilter.Query()
	for living.Next() {
		t, health, energy := living.Get()
		if energy.IsDepleted() && dt > 0 && s.starvationDamage > 0 {
			health.TakeDamage(s.starvationDamage * dt)
		}
		if !health.IsAlive() {
			s.dying = append(s.dying, lifecycleEvent{entity: living.Entity(), kind: *t})
		}
	}

	for _, e := range s.newborns {
		world.Unmark[components.Newborn](s.store, e)
	}
	for _, d := range s.decayed {
		s.store.Despawn(d.entity)
		s.recorder.Record(telemetry.NewDecayEvent(d.entity.ID(), d.kind))
	}
	for _, d := range s.dying {
		if s.store.Kill(d.entity) {
			s.recorder.Record(telemetry.NewDeathEvent(d.entity.ID(), d.kind))
		}
	}
}
