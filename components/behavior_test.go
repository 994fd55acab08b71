package components

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ecosystem/organisms"
)

func TestCollision(t *testing.T) {
	a := NewCollision(3)
	b := NewCollision(5)

	tests := []struct {
		name        string
		distance    float32
		wantCollide bool
		wantOverlap float32
	}{
		{"apart", 9, false, 0},
		{"touching", 8, true, 0},
		{"overlapping", 6, true, 2},
		{"coincident", 0, true, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.IsCollidingWith(b, tt.distance); got != tt.wantCollide {
				t.Errorf("a.IsCollidingWith(b) = %v, want %v", got, tt.wantCollide)
			}
			if a.IsCollidingWith(b, tt.distance) != b.IsCollidingWith(a, tt.distance) {
				t.Error("IsCollidingWith is not symmetric")
			}
			if got := a.OverlapAmount(b, tt.distance); got != tt.wantOverlap {
				t.Errorf("OverlapAmount = %v, want %v", got, tt.wantOverlap)
			}
		})
	}

	c := NewCollision(-2)
	if c.Radius() != 0 {
		t.Errorf("NewCollision(-2).Radius() = %v", c.Radius())
	}
	c.SetRadius(4)
	if c.Diameter() != 8 || c.MinDistanceTo(a) != 7 {
		t.Errorf("Diameter=%v MinDistanceTo=%v", c.Diameter(), c.MinDistanceTo(a))
	}
}

func TestVision(t *testing.T) {
	if DefaultVision().Range != DefaultVisionRange {
		t.Errorf("DefaultVision().Range = %v", DefaultVision().Range)
	}
	v := NewVision(-10)
	if v.Range != 0 {
		t.Errorf("NewVision(-10).Range = %v", v.Range)
	}
	v.SetRange(25)
	if !v.CanSee(25) || v.CanSee(25.1) {
		t.Error("CanSee boundary mismatch")
	}
}

func TestPosition(t *testing.T) {
	a := Position{X: 1, Y: 1}
	b := Position{X: 4, Y: 5}

	if d := a.DistanceTo(b); math.Abs(float64(d-5)) > 1e-5 {
		t.Errorf("DistanceTo = %v, want 5", d)
	}
	dir := a.DirectionTo(b)
	if math.Abs(float64(dir.X()-0.6)) > 1e-5 || math.Abs(float64(dir.Y()-0.8)) > 1e-5 {
		t.Errorf("DirectionTo = %v, want (0.6, 0.8)", dir)
	}
	if a.DirectionTo(a) != (mgl32.Vec2{}) {
		t.Error("DirectionTo self should be zero")
	}

	p := Position{X: -5, Y: 50}
	p.ClampToBounds(0, 10, 0, 20)
	if p != (Position{X: 0, Y: 20}) {
		t.Errorf("ClampToBounds = %+v", p)
	}

	if PositionFromVec2(b.Vec2()) != b {
		t.Error("Vec2 conversion mismatch")
	}
}

func TestSelfStateClamps(t *testing.T) {
	s := NewSelfState(1.5, -0.2, mgl32.Vec2{3, 4})
	if s.HealthRatio != 1 || s.EnergyRatio != 0 {
		t.Errorf("ratios = %v, %v", s.HealthRatio, s.EnergyRatio)
	}
}

func TestEntityObservationDirection(t *testing.T) {
	tests := []struct {
		name string
		rel  mgl32.Vec2
	}{
		{"axis", mgl32.Vec2{0, -7}},
		{"diagonal", mgl32.Vec2{3, 4}},
		{"tiny", mgl32.Vec2{1e-3, -1e-3}},
		{"large", mgl32.Vec2{-4000, 2500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewEntityObservation(organisms.Red, tt.rel)
			if l := o.Direction().Len(); math.Abs(float64(l-1)) > 1e-5 {
				t.Errorf("|Direction()| = %v, want 1", l)
			}
		})
	}

	zero := NewEntityObservation(organisms.Plant, mgl32.Vec2{})
	if zero.Direction() != (mgl32.Vec2{}) {
		t.Errorf("Direction() of zero offset = %v", zero.Direction())
	}
	if zero.Distance() != 0 {
		t.Errorf("Distance() = %v", zero.Distance())
	}
}

func TestObservationDataOrder(t *testing.T) {
	obs := NewObservationData(NewSelfState(1, 1, mgl32.Vec2{}))
	far := NewEntityObservation(organisms.Red, mgl32.Vec2{30, 0})
	near := NewEntityObservation(organisms.Plant, mgl32.Vec2{0, 2})

	obs.AddObservation(far)
	obs.AddObservation(near)
	obs.AddObservation(far)

	if len(obs.VisibleEntities) != 3 {
		t.Fatalf("len = %d, want 3 (no dedupe)", len(obs.VisibleEntities))
	}
	if obs.VisibleEntities[0] != far || obs.VisibleEntities[1] != near {
		t.Error("insertion order not preserved")
	}

	sorted := obs.SortedByDistance()
	if sorted[0] != near {
		t.Errorf("SortedByDistance()[0] = %+v, want nearest", sorted[0])
	}
	if obs.VisibleEntities[0] != far {
		t.Error("SortedByDistance reordered the receiver")
	}

	capBefore := cap(obs.VisibleEntities)
	obs.ClearObservations()
	if len(obs.VisibleEntities) != 0 {
		t.Errorf("len after clear = %d", len(obs.VisibleEntities))
	}
	if cap(obs.VisibleEntities) != capBefore {
		t.Error("ClearObservations released capacity")
	}
	if obs.SelfState.HealthRatio != 1 {
		t.Error("ClearObservations touched the self state")
	}
}

func TestDefaults(t *testing.T) {
	var activity CurrentActivity
	if activity != NewCurrentActivity(ActivityResting) {
		t.Errorf("zero CurrentActivity = %v, want Resting", activity.Activity)
	}

	var cmd ActionCommand
	if cmd != Rest() {
		t.Errorf("zero ActionCommand = %+v, want Rest", cmd)
	}
	if cmd.IsMove() {
		t.Error("zero command is a move")
	}

	move := MoveTo(mgl32.Vec2{1, 0})
	if !move.IsMove() || move.Action.Direction != (mgl32.Vec2{1, 0}) {
		t.Errorf("MoveTo = %+v", move)
	}

	activity.SetActivity(ActivityMoving)
	if activity.Activity.String() != "Moving" {
		t.Errorf("String() = %q", activity.Activity.String())
	}
}
