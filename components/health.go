package components

// Health tracks damage and healing.
// Invariant: 0 <= current <= max.
type Health struct {
	current float32
	max     float32
}

// NewHealth creates a health record at full capacity.
func NewHealth(maxHealth float32) Health {
	m := nonNegative(maxHealth)
	return Health{current: m, max: m}
}

func (h Health) Current() float32 { return h.current }
func (h Health) Max() float32     { return h.max }

// Ratio returns current/max in [0, 1], or 0 when max is zero.
func (h Health) Ratio() float32 {
	return ratio(h.current, h.max)
}

func (h Health) IsAlive() bool { return h.current > 0 }
func (h Health) IsFull() bool  { return h.current >= h.max }

// IsLow reports whether the ratio is below threshold (clamped to [0, 1]).
func (h Health) IsLow(threshold float32) bool {
	return h.Ratio() < clamp01(threshold)
}

// TakeDamage lowers health, saturating at zero. Non-positive damage is ignored.
func (h *Health) TakeDamage(damage float32) {
	if damage > 0 {
		h.current = max(h.current-damage, 0)
	}
}

// Heal raises health, saturating at max. Non-positive amounts are ignored.
func (h *Health) Heal(amount float32) {
	if amount > 0 {
		h.current = min(h.current+amount, h.max)
	}
}

// SetCurrent sets health, clamped to [0, max].
func (h *Health) SetCurrent(health float32) {
	h.current = clampRange(health, 0, h.max)
}

// SetMax changes the ceiling. Current health above the new ceiling is lowered.
func (h *Health) SetMax(maxHealth float32) {
	h.max = nonNegative(maxHealth)
	if h.current > h.max {
		h.current = h.max
	}
}
