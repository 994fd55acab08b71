package components

// nonNegative returns v, or 0 when v is negative or NaN.
func nonNegative(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return v
}

// clampRange limits v to [lo, hi]. NaN maps to lo.
func clampRange(v, lo, hi float32) float32 {
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01 limits v to [0, 1].
func clamp01(v float32) float32 {
	return clampRange(v, 0, 1)
}

// ratio returns current/max clamped to [0, 1], or 0 when max is not positive.
func ratio(current, max float32) float32 {
	if !(max > 0) {
		return 0
	}
	return clamp01(current / max)
}
