package telemetry

import (
	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/world"
)

// Census is a point-in-time sample of the population.
type Census struct {
	Counts  []int // living organisms, indexed by OrganismType
	Corpses int

	// Ratio samples of living organisms, indexed by OrganismType
	EnergyRatios [][]float64
	HealthRatios [][]float64
}

// TakeCensus samples every organism in s.
func TakeCensus(s *world.Store) Census {
	n := organisms.Count()
	c := Census{
		Counts:       make([]int, n),
		EnergyRatios: make([][]float64, n),
		HealthRatios: make([][]float64, n),
	}

	for _, e := range s.Entities() {
		if !world.HasMarker[components.Alive](s, e) {
			c.Corpses++
			continue
		}
		t, _ := s.Type(e)
		c.Counts[t]++
		c.EnergyRatios[t] = append(c.EnergyRatios[t], float64(s.Energy(e).Ratio()))
		c.HealthRatios[t] = append(c.HealthRatios[t], float64(s.Health(e).Ratio()))
	}
	return c
}

// Total returns the number of living organisms.
func (c Census) Total() int {
	var n int
	for _, v := range c.Counts {
		n += v
	}
	return n
}

// Count returns the number of living organisms of type t.
func (c Census) Count(t organisms.OrganismType) int {
	if int(t) >= len(c.Counts) {
		return 0
	}
	return c.Counts[t]
}

func (c Census) energy(t organisms.OrganismType) []float64 {
	if int(t) >= len(c.EnergyRatios) {
		return nil
	}
	return c.EnergyRatios[t]
}

func (c Census) health(t organisms.OrganismType) []float64 {
	if int(t) >= len(c.HealthRatios) {
		return nil
	}
	return c.HealthRatios[t]
}
