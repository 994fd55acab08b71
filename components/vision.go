package components

// DefaultVisionRange is the perception distance used when none is configured.
const DefaultVisionRange = 100

// Vision is how far an entity can perceive others.
type Vision struct {
	Range float32 `json:"range"`
}

// NewVision creates a vision capability; negative ranges become zero.
func NewVision(r float32) Vision {
	return Vision{Range: nonNegative(r)}
}

// DefaultVision returns a vision capability with DefaultVisionRange.
func DefaultVision() Vision {
	return NewVision(DefaultVisionRange)
}

func (v *Vision) SetRange(r float32) {
	v.Range = nonNegative(r)
}

// CanSee reports whether something at distance is within range.
func (v Vision) CanSee(distance float32) bool {
	return distance <= nonNegative(v.Range)
}
