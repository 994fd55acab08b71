// Package organisms defines the species tags of the ecosystem and their
// derived visual metadata.
package organisms

import (
	"fmt"
	"strings"
)

// OrganismType tags an entity with its species.
// The zero value is Blue.
type OrganismType uint8

const (
	Blue  OrganismType = iota // prey
	Red                       // predators
	Plant                     // stationary food source
)

// All returns every organism type in the fixed order Blue, Red, Plant.
func All() []OrganismType {
	return []OrganismType{Blue, Red, Plant}
}

// Count returns the number of organism types.
func Count() int {
	return int(Plant) + 1
}

// Valid reports whether t is one of the known types.
func (t OrganismType) Valid() bool {
	return t <= Plant
}

// DisplayName returns the human readable name.
func (t OrganismType) DisplayName() string {
	switch t {
	case Blue:
		return "Blue Organism"
	case Red:
		return "Red Organism"
	case Plant:
		return "Plant"
	default:
		return "Unknown"
	}
}

// ShortName returns the short name, also used in config keys and snapshots.
func (t OrganismType) ShortName() string {
	switch t {
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	case Plant:
		return "Plant"
	default:
		return "Unknown"
	}
}

// String returns the display name.
func (t OrganismType) String() string {
	return t.DisplayName()
}

// IsMobile reports whether organisms of this type can move.
func (t OrganismType) IsMobile() bool {
	return t != Plant
}

// ParseOrganismType resolves a short name, case-insensitively.
func ParseOrganismType(name string) (OrganismType, error) {
	for _, t := range All() {
		if strings.EqualFold(name, t.ShortName()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown organism type %q", name)
}

// MarshalText encodes the type as its short name.
func (t OrganismType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid organism type %d", uint8(t))
	}
	return []byte(t.ShortName()), nil
}

// UnmarshalText decodes a short name.
func (t *OrganismType) UnmarshalText(text []byte) error {
	parsed, err := ParseOrganismType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
