package components

import (
	"fmt"
	"strings"
)

// ActivityType is what an entity is currently doing.
// The zero value is ActivityResting, matching the default Rest command.
type ActivityType uint8

const (
	ActivityResting ActivityType = iota
	ActivityMoving
)

var activityNames = [...]string{"Resting", "Moving"}

func (a ActivityType) String() string {
	if int(a) < len(activityNames) {
		return activityNames[a]
	}
	return "Unknown"
}

func (a ActivityType) MarshalText() ([]byte, error) {
	if int(a) >= len(activityNames) {
		return nil, fmt.Errorf("invalid activity %d", uint8(a))
	}
	return []byte(activityNames[a]), nil
}

func (a *ActivityType) UnmarshalText(text []byte) error {
	for i, name := range activityNames {
		if strings.EqualFold(string(text), name) {
			*a = ActivityType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown activity %q", text)
}

// CurrentActivity records the activity set by the last action step.
type CurrentActivity struct {
	Activity ActivityType `json:"activity"`
}

func NewCurrentActivity(activity ActivityType) CurrentActivity {
	return CurrentActivity{Activity: activity}
}

func (c *CurrentActivity) SetActivity(activity ActivityType) {
	c.Activity = activity
}
