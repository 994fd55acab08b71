package components

import "github.com/go-gl/mathgl/mgl32"

// Position represents an entity's world position.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// PositionFromVec2 converts a vector to a position.
func PositionFromVec2(v mgl32.Vec2) Position {
	return Position{X: v.X(), Y: v.Y()}
}

// Vec2 returns the position as a vector.
func (p Position) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{p.X, p.Y}
}

// DistanceTo returns the Euclidean distance to other.
func (p Position) DistanceTo(other Position) float32 {
	return other.Vec2().Sub(p.Vec2()).Len()
}

// DirectionTo returns the unit vector pointing at other.
// Coincident positions yield the zero vector.
func (p Position) DirectionTo(other Position) mgl32.Vec2 {
	return UnitOrZero(other.Vec2().Sub(p.Vec2()))
}

// ClampToBounds keeps the position inside the given rectangle.
func (p *Position) ClampToBounds(minX, maxX, minY, maxY float32) {
	p.X = clampRange(p.X, minX, maxX)
	p.Y = clampRange(p.Y, minY, maxY)
}

// UnitOrZero returns the unit vector of v, or the zero vector when v has zero length.
func UnitOrZero(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec2{}
	}
	return v.Mul(1 / l)
}
