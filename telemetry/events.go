// Package telemetry provides population census, event counting, CSV output
// and snapshots.
package telemetry

import "github.com/pthm-cable/ecosystem/organisms"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventDeath
	EventDecay // corpse removed
	EventMove
	EventRest
	EventRefusedMove // move command dropped for lack of energy
	EventCollision
)

var eventNames = [...]string{"spawn", "death", "decay", "move", "rest", "refused_move", "collision"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Organism organisms.OrganismType

	// Optional fields depending on event type
	OtherID uint32  // collision partner
	Amount  float32 // energy spent on a move, overlap resolved by a collision
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(entityID uint32, t organisms.OrganismType) Event {
	return Event{Type: EventSpawn, EntityID: entityID, Organism: t}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(entityID uint32, t organisms.OrganismType) Event {
	return Event{Type: EventDeath, EntityID: entityID, Organism: t}
}

// NewDecayEvent creates an event for a corpse leaving the world.
func NewDecayEvent(entityID uint32, t organisms.OrganismType) Event {
	return Event{Type: EventDecay, EntityID: entityID, Organism: t}
}

// NewMoveEvent creates a move event; cost is the energy consumed.
func NewMoveEvent(entityID uint32, t organisms.OrganismType, cost float32) Event {
	return Event{Type: EventMove, EntityID: entityID, Organism: t, Amount: cost}
}

// NewRestEvent creates a rest event.
func NewRestEvent(entityID uint32, t organisms.OrganismType) Event {
	return Event{Type: EventRest, EntityID: entityID, Organism: t}
}

// NewRefusedMoveEvent creates an event for a move the entity could not afford.
func NewRefusedMoveEvent(entityID uint32, t organisms.OrganismType) Event {
	return Event{Type: EventRefusedMove, EntityID: entityID, Organism: t}
}

// NewCollisionEvent creates a collision event between two entities.
func NewCollisionEvent(aID, bID uint32, t organisms.OrganismType, overlap float32) Event {
	return Event{Type: EventCollision, EntityID: aID, Organism: t, OtherID: bID, Amount: overlap}
}
