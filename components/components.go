// Package components defines ECS components for the ecosystem.
//
// Attribute records with invariants (Health, Energy, Collision) keep their
// fields private and expose only clamping accessors; everything else is a
// plain value type.
package components

// Organism tags every entity that takes part in the ecosystem.
type Organism struct{}

// Edible tags entities that can be eaten (plants, corpses).
type Edible struct{}

// Alive tags entities that are currently alive and active.
type Alive struct{}

// Newborn tags entities spawned during the current cycle.
type Newborn struct{}

// Corpse records how long a dead entity has been lying around.
type Corpse struct {
	Age float32 `json:"age"` // seconds since death
}
