package world

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
)

// EntityState holds one organism's persistent records.
// Observations are not included; they are rebuilt every cycle.
type EntityState struct {
	ID        uint32                     `json:"id"`
	Type      organisms.OrganismType     `json:"type"`
	Position  components.Position        `json:"position"`
	Health    components.Health          `json:"health"`
	Energy    components.Energy          `json:"energy"`
	Collision components.Collision       `json:"collision"`
	Vision    components.Vision          `json:"vision"`
	Activity  components.CurrentActivity `json:"activity"`
	Command   components.ActionCommand   `json:"command"`
	Alive     bool                       `json:"alive"`
	Edible    bool                       `json:"edible"`
	Newborn   bool                       `json:"newborn"`
	Corpse    *components.Corpse         `json:"corpse,omitempty"`
}

// Capture returns the state of every organism in query order.
func (s *Store) Capture() []EntityState {
	entities := s.Entities()
	states := make([]EntityState, 0, len(entities))
	for _, e := range entities {
		t, _ := s.Type(e)
		st := EntityState{
			ID:        e.ID(),
			Type:      t,
			Position:  *s.Position(e),
			Health:    *s.Health(e),
			Energy:    *s.Energy(e),
			Collision: *s.Collision(e),
			Vision:    *s.Vision(e),
			Activity:  *s.Activity(e),
			Command:   *s.Command(e),
			Alive:     HasMarker[components.Alive](s, e),
			Edible:    HasMarker[components.Edible](s, e),
			Newborn:   HasMarker[components.Newborn](s, e),
		}
		if c := s.Corpse(e); c != nil {
			corpse := *c
			st.Corpse = &corpse
		}
		states = append(states, st)
	}
	return states
}

// Restore spawns one organism per state. Entity handles are new; the
// returned slice is index-aligned with states.
func (s *Store) Restore(states []EntityState) ([]ecs.Entity, error) {
	for i, st := range states {
		if !st.Type.Valid() {
			return nil, fmt.Errorf("entity %d: invalid organism type %d", i, uint8(st.Type))
		}
	}

	out := make([]ecs.Entity, len(states))
	for i, st := range states {
		e := s.Spawn(st.Type, st.Position)
		*s.Health(e) = st.Health
		*s.Energy(e) = st.Energy
		*s.Collision(e) = st.Collision
		*s.Vision(e) = st.Vision
		*s.Activity(e) = st.Activity
		*s.Command(e) = st.Command

		if !st.Alive {
			Unmark[components.Alive](s, e)
		}
		if st.Edible {
			Mark[components.Edible](s, e)
		} else {
			Unmark[components.Edible](s, e)
		}
		if !st.Newborn {
			Unmark[components.Newborn](s, e)
		}
		if st.Corpse != nil {
			corpse := *st.Corpse
			s.corpseMap.Add(e, &corpse)
		}
		out[i] = e
	}
	return out, nil
}
