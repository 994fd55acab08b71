package components

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ecosystem/organisms"
)

// SelfState is the observer's own condition, snapshotted once per cycle.
type SelfState struct {
	HealthRatio     float32    `json:"health_ratio"` // 0..1
	EnergyRatio     float32    `json:"energy_ratio"` // 0..1
	CurrentPosition mgl32.Vec2 `json:"current_position"`
}

// NewSelfState builds a snapshot, clamping both ratios to [0, 1].
func NewSelfState(healthRatio, energyRatio float32, currentPosition mgl32.Vec2) SelfState {
	return SelfState{
		HealthRatio:     clamp01(healthRatio),
		EnergyRatio:     clamp01(energyRatio),
		CurrentPosition: currentPosition,
	}
}

// EntityObservation is one entity seen within vision range.
// It copies the type tag and offset rather than referencing the entity.
type EntityObservation struct {
	OrganismType     organisms.OrganismType `json:"organism_type"`
	RelativePosition mgl32.Vec2             `json:"relative_position"` // target minus self
}

func NewEntityObservation(t organisms.OrganismType, relativePosition mgl32.Vec2) EntityObservation {
	return EntityObservation{OrganismType: t, RelativePosition: relativePosition}
}

// Distance returns the length of the relative position.
func (o EntityObservation) Distance() float32 {
	return o.RelativePosition.Len()
}

// Direction returns the unit vector toward the entity, or zero when the
// relative position is exactly zero.
func (o EntityObservation) Direction() mgl32.Vec2 {
	return UnitOrZero(o.RelativePosition)
}

// ObservationData is everything an agent perceives in one cycle.
// VisibleEntities keeps discovery order and is not deduplicated.
type ObservationData struct {
	VisibleEntities []EntityObservation `json:"visible_entities"`
	SelfState       SelfState           `json:"self_state"`
}

func NewObservationData(self SelfState) ObservationData {
	return ObservationData{SelfState: self}
}

// AddObservation appends an observation.
func (d *ObservationData) AddObservation(o EntityObservation) {
	d.VisibleEntities = append(d.VisibleEntities, o)
}

// ClearObservations empties the list, keeping its capacity for the next cycle.
func (d *ObservationData) ClearObservations() {
	d.VisibleEntities = d.VisibleEntities[:0]
}

func (d *ObservationData) SetSelfState(self SelfState) {
	d.SelfState = self
}

// SortedByDistance returns the observations nearest first.
// The receiver keeps its discovery order.
func (d ObservationData) SortedByDistance() []EntityObservation {
	sorted := slices.Clone(d.VisibleEntities)
	slices.SortStableFunc(sorted, func(a, b EntityObservation) int {
		da, db := a.Distance(), b.Distance()
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return sorted
}
