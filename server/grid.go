package server

import (
	"math"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

// SpatialGrid is the zombie registry queried for proximity: congestion
// checks, repulsion neighbors, swarm counts and melee radius tests. It is
// rebuilt at the start of every tick, so queries during a tick see
// start-of-tick positions. This replaces per-zombie traversal of a shared
// scene with an explicit registry owned by the scheduler.
type SpatialGrid struct {
	cellSize float64
	extent   float64 // grid covers [-extent, extent] on both axes
	cols     int
	cells    [][]int // zombie indices into the tick's slice
}

// GridCellSize must be at least as large as the largest proximity query
// radius (the swarm radius).
const GridCellSize = game.SwarmRadius

// NewSpatialGrid creates a grid covering the arena plus the spawn ring.
func NewSpatialGrid() *SpatialGrid {
	extent := game.ArenaHalfSize + game.SpawnRingMax
	cols := int(math.Ceil(2 * extent / GridCellSize))

	cells := make([][]int, cols*cols)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: GridCellSize,
		extent:   extent,
		cols:     cols,
		cells:    cells,
	}
}

// Clear resets the grid for a new tick
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// cellCoord maps one axis value to a clamped cell coordinate
func (g *SpatialGrid) cellCoord(v float64) int {
	c := int((v + g.extent) / g.cellSize)
	if c < 0 {
		c = 0
	} else if c >= g.cols {
		c = g.cols - 1
	}
	return c
}

// Insert adds a zombie index to the grid
func (g *SpatialGrid) Insert(idx int, x, z float64) {
	col := g.cellCoord(x)
	row := g.cellCoord(z)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], idx)
}

// GetNearby returns zombie indices that might be within one cell of the
// given position. The caller must still perform exact distance checks.
func (g *SpatialGrid) GetNearby(x, z float64) []int {
	col := g.cellCoord(x)
	row := g.cellCoord(z)

	var result []int
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			r := row + dr
			if c < 0 || c >= g.cols || r < 0 || r >= g.cols {
				continue
			}
			result = append(result, g.cells[r*g.cols+c]...)
		}
	}

	return result
}

// IndexZombies populates the grid with all live zombies
func (g *SpatialGrid) IndexZombies(zombies []*game.Zombie) {
	g.Clear()
	for i, z := range zombies {
		if !z.IsDead {
			g.Insert(i, z.X, z.Z)
		}
	}
}
