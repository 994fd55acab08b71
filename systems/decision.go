package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/world"
)

// Decider turns one agent's observations into a command.
// Implementations must treat obs as read-only.
type Decider interface {
	Decide(obs *components.ObservationData) components.ActionCommand
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(obs *components.ObservationData) components.ActionCommand

func (f DeciderFunc) Decide(obs *components.ObservationData) components.ActionCommand {
	return f(obs)
}

// RestDecider always rests.
type RestDecider struct{}

func (RestDecider) Decide(*components.ObservationData) components.ActionCommand {
	return components.Rest()
}

// DecisionSystem writes one ActionCommand per living organism.
type DecisionSystem struct {
	filter  *ecs.Filter2[components.ObservationData, components.ActionCommand]
	decider Decider
}

// NewDecisionSystem creates a decision system; a nil decider rests.
func NewDecisionSystem(s *world.Store, d Decider) *DecisionSystem {
	if d == nil {
		d = RestDecider{}
	}
	return &DecisionSystem{
		filter: ecs.NewFilter2[components.ObservationData, components.ActionCommand](s.World()).
			With(ecs.C[components.Organism](), ecs.C[components.Alive]()),
		decider: d,
	}
}

// Update replaces every living organism's command with a fresh decision.
func (s *DecisionSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		obs, cmd := query.Get()
		*cmd = s.decider.Decide(obs)
	}
}
