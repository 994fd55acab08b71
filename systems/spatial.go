// Package systems runs the perception, decision and action pipeline over a
// world.Store.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosystem/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // Delta from query origin to the neighbor
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

// SpatialGrid provides cell-based neighbor lookups over a bounded world.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
// Positions outside the world land in the nearest edge cell.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	col, row := g.cellCoords(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// Rebuild clears the grid and inserts every entity matched by filter.
func (g *SpatialGrid) Rebuild(filter *ecs.Filter1[components.Position]) {
	g.Clear()
	query := filter.Query()
	for query.Next() {
		pos := query.Get()
		g.Insert(query.Entity(), pos.X, pos.Y)
	}
}

// QueryRadiusInto finds entities within radius (inclusive) and appends them
// to dst in cell scan order. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude ecs.Entity, posMap *ecs.Map[components.Position]) []Neighbor {
	if !(radius >= 0) {
		return dst
	}

	minCol, minRow := g.cellCoords(x-radius, y-radius)
	maxCol, maxRow := g.cellCoords(x+radius, y+radius)
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if e == exclude || !posMap.Has(e) {
					continue
				}

				pos := posMap.Get(e)
				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy

				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped cell column and row for a world position.
// Clamping happens before the int conversion so huge or infinite
// coordinates land in the edge cells instead of overflowing.
func (g *SpatialGrid) cellCoords(x, y float32) (int, int) {
	return clampCell(x/g.cellSize, g.cols), clampCell(y/g.cellSize, g.rows)
}

func clampCell(f float32, n int) int {
	if !(f > 0) {
		return 0
	}
	if f >= float32(n-1) {
		return n - 1
	}
	return int(f)
}
