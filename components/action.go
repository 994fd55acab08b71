package components

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ActionKind selects the action variant.
// The zero value is ActionRest.
type ActionKind uint8

const (
	ActionRest ActionKind = iota // recover energy in place
	ActionMove                   // move along Direction
)

var actionNames = [...]string{"Rest", "Move"}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "Unknown"
}

func (k ActionKind) MarshalText() ([]byte, error) {
	if int(k) >= len(actionNames) {
		return nil, fmt.Errorf("invalid action kind %d", uint8(k))
	}
	return []byte(actionNames[k]), nil
}

func (k *ActionKind) UnmarshalText(text []byte) error {
	for i, name := range actionNames {
		if strings.EqualFold(string(text), name) {
			*k = ActionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action kind %q", text)
}

// ActionType is a Move(direction) or Rest choice.
// Direction is only meaningful for ActionMove; its magnitude is not a speed,
// the action system constrains it.
type ActionType struct {
	Kind      ActionKind `json:"kind"`
	Direction mgl32.Vec2 `json:"direction"`
}

func Move(direction mgl32.Vec2) ActionType { return ActionType{Kind: ActionMove, Direction: direction} }
func RestAction() ActionType               { return ActionType{Kind: ActionRest} }

// ActionCommand is the decision produced for one entity per cycle.
// It carries no success channel; the action system decides what happens
// when the move cannot be paid for.
type ActionCommand struct {
	Action ActionType `json:"action_type"`
}

func NewActionCommand(action ActionType) ActionCommand {
	return ActionCommand{Action: action}
}

// MoveTo returns a command to move along direction.
func MoveTo(direction mgl32.Vec2) ActionCommand {
	return NewActionCommand(Move(direction))
}

// Rest returns a command to rest.
func Rest() ActionCommand {
	return NewActionCommand(RestAction())
}

func (c ActionCommand) IsMove() bool { return c.Action.Kind == ActionMove }
