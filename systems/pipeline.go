package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/telemetry"
	"github.com/pthm-cable/ecosystem/world"
)

// Pipeline runs one observation cycle: perception, decision, action,
// collision and vitality, in that order.
type Pipeline struct {
	grid        *SpatialGrid
	aliveFilter *ecs.Filter1[components.Position]

	Perception *PerceptionSystem
	Decision   *DecisionSystem
	Action     *ActionSystem
	Collision  *CollisionSystem
	Vitality   *VitalitySystem

	perf *telemetry.PerfCollector
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPerf times every stage with pc.
func WithPerf(pc *telemetry.PerfCollector) PipelineOption {
	return func(p *Pipeline) { p.perf = pc }
}

// NewPipeline wires all systems over s. A nil decider rests and a nil
// recorder discards events.
func NewPipeline(s *world.Store, d Decider, rec Recorder, opts ...PipelineOption) *Pipeline {
	cfg := s.Config()
	grid := NewSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, float32(cfg.Physics.GridCellSize))

	p := &Pipeline{
		grid: grid,
		aliveFilter: ecs.NewFilter1[components.Position](s.World()).
			With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
		Perception: NewPerceptionSystem(s, grid),
		Decision:   NewDecisionSystem(s, d),
		Action:     NewActionSystem(s, rec),
		Collision:  NewCollisionSystem(s, grid, rec),
		Vitality:   NewVitalitySystem(s, rec),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grid returns the spatial index shared by perception and collision.
func (p *Pipeline) Grid() *SpatialGrid {
	return p.grid
}

// Step runs one cycle of dt seconds.
func (p *Pipeline) Step(dt float32) {
	if p.perf != nil {
		p.perf.StartCycle()
		defer p.perf.EndCycle()
	}

	p.phase(telemetry.PhaseSpatialGrid)
	p.grid.Rebuild(p.aliveFilter)

	p.phase(telemetry.PhasePerception)
	p.Perception.Update()

	p.phase(telemetry.PhaseDecision)
	p.Decision.Update()

	p.phase(telemetry.PhaseAction)
	p.Action.Update(dt)

	// Positions changed; collision needs a fresh index.
	p.phase(telemetry.PhaseCollision)
	p.grid.Rebuild(p.aliveFilter)
	p.Collision.Update()

	p.phase(telemetry.PhaseVitality)
	p.Vitality.Update(dt)
}

func (p *Pipeline) phase(name string) {
	if p.perf != nil {
		p.perf.StartPhase(name)
	}
}
