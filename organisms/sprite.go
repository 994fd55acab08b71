package organisms

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// SpriteShape selects the primitive used to draw an organism.
type SpriteShape uint8

const (
	Circle SpriteShape = iota
	Square
	Triangle
)

var shapeNames = [...]string{"Circle", "Square", "Triangle"}

// String returns the shape name.
func (s SpriteShape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "Unknown"
}

// MarshalText encodes the shape name.
func (s SpriteShape) MarshalText() ([]byte, error) {
	if int(s) >= len(shapeNames) {
		return nil, fmt.Errorf("invalid sprite shape %d", uint8(s))
	}
	return []byte(shapeNames[s]), nil
}

// UnmarshalText decodes a shape name, case-insensitively.
func (s *SpriteShape) UnmarshalText(text []byte) error {
	for i, name := range shapeNames {
		if strings.EqualFold(string(text), name) {
			*s = SpriteShape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sprite shape %q", text)
}

// RGB is a color with channels in [0, 1].
type RGB struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

// SpriteStats holds the visual properties of an organism type.
type SpriteStats struct {
	Color       RGB         `json:"color"`
	Size        float32     `json:"size"` // radius for circular sprites
	Shape       SpriteShape `json:"shape"`
	TexturePath string      `json:"texture_path,omitempty"` // empty = untextured
}

// ColorVec3 returns the color as a vector.
func (s SpriteStats) ColorVec3() mgl32.Vec3 {
	return mgl32.Vec3{s.Color.R, s.Color.G, s.Color.B}
}

// SizeVec2 returns the size as a square extent.
func (s SpriteStats) SizeVec2() mgl32.Vec2 {
	return mgl32.Vec2{s.Size, s.Size}
}

// HasTexture reports whether the sprite references a texture.
func (s SpriteStats) HasTexture() bool {
	return s.TexturePath != ""
}

// SpriteStats returns the visual properties for this type.
// Predators are drawn larger than prey.
func (t OrganismType) SpriteStats() SpriteStats {
	switch t {
	case Red:
		return SpriteStats{
			Color: RGB{1.0, 0.2, 0.2},
			Size:  12,
			Shape: Triangle,
		}
	case Plant:
		return SpriteStats{
			Color: RGB{0.2, 0.8, 0.3},
			Size:  6,
			Shape: Square,
		}
	default:
		return SpriteStats{
			Color: RGB{0.2, 0.6, 1.0},
			Size:  8,
			Shape: Circle,
		}
	}
}

// Color returns the sprite color.
func (t OrganismType) Color() RGB {
	return t.SpriteStats().Color
}

// Size returns the sprite size.
func (t OrganismType) Size() float32 {
	return t.SpriteStats().Size
}

// Shape returns the sprite shape.
func (t OrganismType) Shape() SpriteShape {
	return t.SpriteStats().Shape
}
