package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/world"
)

// PerceptionSystem rebuilds every living organism's ObservationData from the
// current world state.
type PerceptionSystem struct {
	filter  *ecs.Filter5[components.Position, components.Health, components.Energy, components.Vision, components.ObservationData]
	posMap  *ecs.Map[components.Position]
	typeMap *ecs.Map[organisms.OrganismType]
	grid    *SpatialGrid

	neighbors []Neighbor // reused query buffer
}

// NewPerceptionSystem creates a perception system reading neighbors from grid.
// The grid must be rebuilt by the caller before Update.
func NewPerceptionSystem(s *world.Store, grid *SpatialGrid) *PerceptionSystem {
	w := s.World()
	return &PerceptionSystem{
		filter: ecs.NewFilter5[
			components.Position,
			components.Health,
			components.Energy,
			components.Vision,
			components.ObservationData,
		](w).With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
		posMap:  ecs.NewMap[components.Position](w),
		typeMap: ecs.NewMap[organisms.OrganismType](w),
		grid:    grid,
	}
}

// Update clears and repopulates each observer's observations. Observers
// see other living organisms within their vision range in grid order.
func (s *PerceptionSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		self := query.Entity()
		pos, health, energy, vision, obs := query.Get()

		obs.ClearObservations()
		obs.SetSelfState(components.NewSelfState(health.Ratio(), energy.Ratio(), pos.Vec2()))

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, vision.Range, self, s.posMap)
		for _, n := range s.neighbors {
			t := s.typeMap.Get(n.E)
			obs.AddObservation(components.NewEntityObservation(*t, mgl32.Vec2{n.DX, n.DY}))
		}
	}
}
