// Package renderer converts organism sprite descriptions to raylib values.
// It never opens a window; drawing is left to the host application.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosystem/organisms"
)

// corpseShade scales a living color for dead organisms.
const corpseShade = 0.45

// SpriteColor converts the sprite's [0, 1] color to an opaque rl.Color.
func SpriteColor(stats organisms.SpriteStats) rl.Color {
	c := stats.Color
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), 255)
}

// CorpseColor is the sprite color darkened and partly transparent.
func CorpseColor(stats organisms.SpriteStats) rl.Color {
	c := stats.Color
	return rl.NewColor(channel(c.R*corpseShade), channel(c.G*corpseShade), channel(c.B*corpseShade), 180)
}

// SpriteSize returns the sprite's bounding box; sizes are radii.
func SpriteSize(stats organisms.SpriteStats) rl.Vector2 {
	d := stats.Size * 2
	return rl.NewVector2(d, d)
}

// Swatch is everything a host needs to draw one organism type.
type Swatch struct {
	Shape  organisms.SpriteShape
	Living rl.Color
	Corpse rl.Color
	Size   rl.Vector2
}

// Palette returns the swatch of every organism type, indexed by type.
func Palette() []Swatch {
	out := make([]Swatch, organisms.Count())
	for _, t := range organisms.All() {
		stats := t.SpriteStats()
		out[t] = Swatch{
			Shape:  stats.Shape,
			Living: SpriteColor(stats),
			Corpse: CorpseColor(stats),
			Size:   SpriteSize(stats),
		}
	}
	return out
}

func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
