package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/telemetry"
	"github.com/pthm-cable/ecosystem/world"
)

// CollisionSystem separates overlapping living organisms.
type CollisionSystem struct {
	filter       *ecs.Filter3[organisms.OrganismType, components.Position, components.Collision]
	posMap       *ecs.Map[components.Position]
	collisionMap *ecs.Map[components.Collision]
	typeMap      *ecs.Map[organisms.OrganismType]
	grid         *SpatialGrid
	bounds       Bounds
	recorder     Recorder

	neighbors []Neighbor
	pushes    []push
}

type push struct {
	entity ecs.Entity
	delta  mgl32.Vec2
}

// NewCollisionSystem creates a collision system over grid, which the caller
// must rebuild before Update. A nil recorder discards events.
func NewCollisionSystem(s *world.Store, grid *SpatialGrid, rec Recorder) *CollisionSystem {
	w := s.World()
	cfg := s.Config()
	return &CollisionSystem{
		filter: ecs.NewFilter3[organisms.OrganismType, components.Position, components.Collision](w).
			With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
		posMap:       ecs.NewMap[components.Position](w),
		collisionMap: ecs.NewMap[components.Collision](w),
		typeMap:      ecs.NewMap[organisms.OrganismType](w),
		grid:         grid,
		bounds:       Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32},
		recorder:     recorderOrNop(rec),
	}
}

// Update resolves each overlapping pair once. Mobile entities split the
// overlap evenly; when only one is mobile it takes the whole push. Returns
// the number of overlapping pairs found.
func (s *CollisionSystem) Update() int {
	maxRadius := s.maxRadius()
	s.pushes = s.pushes[:0]
	pairs := 0

	query := s.filter.Query()
	for query.Next() {
		self := query.Entity()
		t, pos, col := query.Get()

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, col.Radius()+maxRadius, self, s.posMap)
		for _, n := range s.neighbors {
			// Each unordered pair is handled by its lower entity ID.
			if n.E.ID() < self.ID() || !s.collisionMap.Has(n.E) {
				continue
			}
			other := s.collisionMap.Get(n.E)
			dist := float32(math.Sqrt(float64(n.DistSq)))
			overlap := col.OverlapAmount(*other, dist)
			if overlap <= 0 {
				continue
			}

			pairs++
			s.recorder.Record(telemetry.NewCollisionEvent(self.ID(), n.E.ID(), *t, overlap))

			normal := components.UnitOrZero(mgl32.Vec2{n.DX, n.DY})
			if normal == (mgl32.Vec2{}) {
				normal = mgl32.Vec2{1, 0}
			}

			selfMobile := t.IsMobile()
			otherMobile := s.typeMap.Get(n.E).IsMobile()
			switch {
			case selfMobile && otherMobile:
				half := overlap / 2
				s.pushes = append(s.pushes,
					push{entity: self, delta: normal.Mul(-half)},
					push{entity: n.E, delta: normal.Mul(half)},
				)
			case selfMobile:
				s.pushes = append(s.pushes, push{entity: self, delta: normal.Mul(-overlap)})
			case otherMobile:
				s.pushes = append(s.pushes, push{entity: n.E, delta: normal.Mul(overlap)})
			}
		}
	}

	for _, p := range s.pushes {
		pos := s.posMap.Get(p.entity)
		*pos = components.PositionFromVec2(pos.Vec2().Add(p.delta))
		pos.ClampToBounds(0, s.bounds.Width, 0, s.bounds.Height)
	}
	return pairs
}

func (s *CollisionSystem) maxRadius() float32 {
	var r float32
	query := s.filter.Query()
	for query.Next() {
		_, _, col := query.Get()
		if col.Radius() > r {
			r = col.Radius()
		}
	}
	return r
}
