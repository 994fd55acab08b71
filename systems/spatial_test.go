package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/organisms"
)

func TestSpatialGridQueryRadius(t *testing.T) {
	s := newTestStore(t)
	self := s.Spawn(organisms.Blue, components.Position{X: 100, Y: 100})
	near := s.Spawn(organisms.Red, components.Position{X: 130, Y: 60})    // distance 50
	edge := s.Spawn(organisms.Plant, components.Position{X: 100, Y: 150}) // distance exactly 50
	s.Spawn(organisms.Plant, components.Position{X: 400, Y: 400})

	grid := rebuildGrid(s)
	posMap := ecs.NewMap[components.Position](s.World())

	got := grid.QueryRadiusInto(nil, 100, 100, 50, self, posMap)
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2: %+v", len(got), got)
	}

	byEntity := map[ecs.Entity]Neighbor{}
	for _, n := range got {
		byEntity[n.E] = n
	}
	if n, ok := byEntity[near]; !ok || n.DX != 30 || n.DY != -40 || n.DistSq != 2500 {
		t.Errorf("near neighbor = %+v, want delta (30,-40)", n)
	}
	if _, ok := byEntity[edge]; !ok {
		t.Error("neighbor exactly at the radius should be included")
	}
	if _, ok := byEntity[self]; ok {
		t.Error("excluded entity returned")
	}
}

func TestSpatialGridBounds(t *testing.T) {
	grid := NewSpatialGrid(100, 100, 30)
	s := newTestStore(t)
	posMap := ecs.NewMap[components.Position](s.World())

	outside := s.Spawn(organisms.Blue, components.Position{X: -20, Y: 250})
	grid.Insert(outside, -20, 250)

	tests := []struct {
		name   string
		x, y   float32
		radius float32
		want   int
	}{
		{"query reaching past the edge", 0, 95, 160, 1},
		{"query far away", 95, 5, 20, 0},
		{"negative radius", -20, 250, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.QueryRadiusInto(nil, tt.x, tt.y, tt.radius, ecs.Entity{}, posMap)
			if len(got) != tt.want {
				t.Errorf("got %d neighbors, want %d", len(got), tt.want)
			}
		})
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, 0, 95, 1000, ecs.Entity{}, posMap); len(got) != 0 {
		t.Errorf("Clear left %d entities", len(got))
	}
}

func TestSpatialGridReusesBuffer(t *testing.T) {
	s := newTestStore(t)
	s.Spawn(organisms.Blue, components.Position{X: 10, Y: 10})
	grid := rebuildGrid(s)
	posMap := ecs.NewMap[components.Position](s.World())

	buf := make([]Neighbor, 0, 4)
	buf = grid.QueryRadiusInto(buf[:0], 10, 10, 5, ecs.Entity{}, posMap)
	buf = grid.QueryRadiusInto(buf[:0], 10, 10, 5, ecs.Entity{}, posMap)
	if len(buf) != 1 || cap(buf) != 4 {
		t.Errorf("len %d cap %d, want 1 and 4", len(buf), cap(buf))
	}
}

func TestSpatialGridUnboundedRadius(t *testing.T) {
	s := newTestStore(t)
	self := s.Spawn(organisms.Blue, components.Position{X: 640, Y: 400})
	s.Spawn(organisms.Red, components.Position{X: 1000, Y: 700})
	s.Spawn(organisms.Plant, components.Position{X: 0, Y: 0})
	s.Spawn(organisms.Plant, components.Position{X: 1280, Y: 800})

	grid := rebuildGrid(s)
	posMap := ecs.NewMap[components.Position](s.World())

	tests := []struct {
		name   string
		radius float32
		want   int
	}{
		{"whole world", 1e6, 3},
		{"beyond int range", 1e21, 3},
		{"max float", math.MaxFloat32, 3},
		{"infinite", float32(math.Inf(1)), 3},
		{"not a number", float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.QueryRadiusInto(nil, 640, 400, tt.radius, self, posMap)
			if len(got) != tt.want {
				t.Errorf("got %d neighbors, want %d", len(got), tt.want)
			}
		})
	}
}
