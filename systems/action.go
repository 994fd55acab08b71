package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/telemetry"
	"github.com/pthm-cable/ecosystem/world"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float32
}

// ActionSystem carries out each living organism's ActionCommand.
type ActionSystem struct {
	filter *ecs.Filter5[
		organisms.OrganismType,
		components.Position,
		components.Energy,
		components.CurrentActivity,
		components.ActionCommand,
	]
	speed    []float32 // world units per second, indexed by OrganismType
	bounds   Bounds
	recorder Recorder
}

// NewActionSystem creates an action system using per-type speeds from the
// store's config. A nil recorder discards events.
func NewActionSystem(s *world.Store, rec Recorder) *ActionSystem {
	cfg := s.Config()
	speed := make([]float32, organisms.Count())
	for _, t := range organisms.All() {
		speed[t] = float32(cfg.SpeciesFor(t).Speed)
	}

	return &ActionSystem{
		filter: ecs.NewFilter5[
			organisms.OrganismType,
			components.Position,
			components.Energy,
			components.CurrentActivity,
			components.ActionCommand,
		](s.World()).With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
		speed:    speed,
		bounds:   Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32},
		recorder: recorderOrNop(rec),
	}
}

// Update applies one step of dt seconds.
//
// A move needs a mobile type, a non-zero direction and enough energy for one
// movement step. Everything else, including an unaffordable move, rests and
// regenerates instead.
func (s *ActionSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		id := query.Entity().ID()
		t, pos, energy, activity, cmd := query.Get()

		if t.IsMobile() && cmd.IsMove() {
			dir := components.UnitOrZero(cmd.Action.Direction)
			if dir != (mgl32.Vec2{}) {
				cost := energy.MovementCost()
				if energy.ConsumeMovement() {
					*pos = components.PositionFromVec2(pos.Vec2().Add(dir.Mul(s.speed[*t] * dt)))
					pos.ClampToBounds(0, s.bounds.Width, 0, s.bounds.Height)
					activity.SetActivity(components.ActivityMoving)
					s.recorder.Record(telemetry.NewMoveEvent(id, *t, cost))
					continue
				}
				s.recorder.Record(telemetry.NewRefusedMoveEvent(id, *t))
			}
		}

		activity.SetActivity(components.ActivityResting)
		energy.Regenerate(dt)
		s.recorder.Record(telemetry.NewRestEvent(id, *t))
	}
}
