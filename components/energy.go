package components

// Energy tracks an entity's metabolic reserve.
// Invariant: 0 <= current <= max; movementCost and regenRate are never negative.
type Energy struct {
	current      float32
	max          float32
	movementCost float32
	regenRate    float32 // per second
}

// NewEnergy creates an energy record at full capacity.
func NewEnergy(maxEnergy, movementCost, regenRate float32) Energy {
	m := nonNegative(maxEnergy)
	return Energy{
		current:      m,
		max:          m,
		movementCost: nonNegative(movementCost),
		regenRate:    nonNegative(regenRate),
	}
}

func (e Energy) Current() float32      { return e.current }
func (e Energy) Max() float32          { return e.max }
func (e Energy) MovementCost() float32 { return e.movementCost }
func (e Energy) RegenRate() float32    { return e.regenRate }

// Ratio returns current/max in [0, 1], or 0 when max is zero.
func (e Energy) Ratio() float32 {
	return ratio(e.current, e.max)
}

func (e Energy) IsDepleted() bool { return e.current <= 0 }
func (e Energy) IsFull() bool     { return e.current >= e.max }

// IsLow reports whether the ratio is below threshold (clamped to [0, 1]).
func (e Energy) IsLow(threshold float32) bool {
	return e.Ratio() < clamp01(threshold)
}

// CanMove reports whether one movement step is affordable.
func (e Energy) CanMove() bool {
	return e.current >= e.movementCost
}

// CanAfford reports whether cost could be consumed.
func (e Energy) CanAfford(cost float32) bool {
	return e.current >= cost
}

// Consume withdraws amount if the reserve covers it.
// It returns false and leaves the reserve untouched otherwise, so callers
// must check the result before assuming the action happened.
// Negative amounts count as zero.
func (e *Energy) Consume(amount float32) bool {
	if amount < 0 {
		amount = 0
	}
	if e.current >= amount {
		e.current -= amount
		return true
	}
	return false
}

// ConsumeMovement withdraws the cost of one movement step.
func (e *Energy) ConsumeMovement() bool {
	return e.Consume(e.movementCost)
}

// AddEnergy raises the reserve, saturating at max. Non-positive amounts are ignored.
func (e *Energy) AddEnergy(amount float32) {
	if amount > 0 {
		e.current = min(e.current+amount, e.max)
	}
}

// Regenerate adds regenRate*dt. Non-positive dt is ignored.
func (e *Energy) Regenerate(dt float32) {
	if dt > 0 {
		e.AddEnergy(e.regenRate * dt)
	}
}

// SetCurrent sets the reserve, clamped to [0, max].
func (e *Energy) SetCurrent(energy float32) {
	e.current = clampRange(energy, 0, e.max)
}

// SetMax changes the ceiling. A reserve above the new ceiling is lowered.
func (e *Energy) SetMax(maxEnergy float32) {
	e.max = nonNegative(maxEnergy)
	if e.current > e.max {
		e.current = e.max
	}
}

func (e *Energy) SetMovementCost(cost float32) { e.movementCost = nonNegative(cost) }
func (e *Energy) SetRegenRate(rate float32)    { e.regenRate = nonNegative(rate) }
