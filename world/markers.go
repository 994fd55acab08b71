package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
)

// Marker is the set of zero-data tags usable for membership queries.
type Marker interface {
	components.Organism | components.Edible | components.Alive | components.Newborn
}

// Mark adds marker T to e. Marking twice is a no-op.
func Mark[T Marker](s *Store, e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	m := ecs.NewMap[T](s.world)
	if !m.Has(e) {
		m.Add(e, new(T))
	}
}

// Unmark removes marker T from e if present.
func Unmark[T Marker](s *Store, e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	m := ecs.NewMap[T](s.world)
	if m.Has(e) {
		m.Remove(e)
	}
}

// HasMarker reports whether e carries marker T.
func HasMarker[T Marker](s *Store, e ecs.Entity) bool {
	if !s.world.Alive(e) {
		return false
	}
	return ecs.NewMap[T](s.world).Has(e)
}
