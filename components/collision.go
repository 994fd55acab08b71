package components

// Collision holds the circular collision footprint of an entity.
// Distances are supplied by the caller; nothing here reads Position.
type Collision struct {
	radius float32
}

// NewCollision creates a collider; negative radii become zero.
func NewCollision(radius float32) Collision {
	return Collision{radius: nonNegative(radius)}
}

func (c Collision) Radius() float32   { return c.radius }
func (c Collision) Diameter() float32 { return c.radius * 2 }

func (c *Collision) SetRadius(radius float32) {
	c.radius = nonNegative(radius)
}

// MinDistanceTo returns the center distance at which the two colliders touch.
func (c Collision) MinDistanceTo(other Collision) float32 {
	return c.radius + other.radius
}

// IsCollidingWith reports whether two colliders at the given center distance
// overlap or touch.
func (c Collision) IsCollidingWith(other Collision, distance float32) bool {
	return distance <= c.MinDistanceTo(other)
}

// OverlapAmount returns the penetration depth, or 0 when not overlapping.
func (c Collision) OverlapAmount(other Collision, distance float32) float32 {
	minDist := c.MinDistanceTo(other)
	if distance < minDist {
		return minDist - distance
	}
	return 0
}
