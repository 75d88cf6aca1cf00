// Package world provides a walkability grid, grid pathfinding and path
// following for simulated characters.
package world

import (
	gomath "math"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// Grid is a flat ground plane split into square cells that are either
// walkable or blocked. Cell (0, 0) has its minimum corner at Origin.
type Grid struct {
	Width    int
	Height   int
	CellSize float32
	Origin   math.Vec3

	blocked []bool
}

// NewGrid creates a fully walkable grid.
func NewGrid(width, height int, cellSize float32) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		blocked:  make([]bool, width*height),
	}
}

// Block marks a cell as unwalkable.
func (g *Grid) Block(x, y int) {
	if g.inBounds(x, y) {
		g.blocked[g.key(x, y)] = true
	}
}

// BlockRect blocks every cell overlapping the world-space rectangle.
func (g *Grid) BlockRect(x0, y0, x1, y1 float32) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	cx0, cy0 := g.WorldToCell(x0, y0)
	cx1, cy1 := g.WorldToCell(x1, y1)
	for y := cy0; y <= cy1; y++ {
		for x := cx0; x <= cx1; x++ {
			g.Block(x, y)
		}
	}
}

// CellWalkable reports whether a cell is inside the grid and not blocked.
func (g *Grid) CellWalkable(x, y int) bool {
	return g.inBounds(x, y) && !g.blocked[g.key(x, y)]
}

// IsWalkable reports whether a world position lies on a walkable cell.
func (g *Grid) IsWalkable(worldX, worldY float32) bool {
	return g.CellWalkable(g.WorldToCell(worldX, worldY))
}

// GetHeight returns the ground height, which is flat at Origin.Z.
func (g *Grid) GetHeight(_, _ float32) float32 {
	return g.Origin.Z
}

// WorldToCell converts world coordinates to cell coordinates.
func (g *Grid) WorldToCell(worldX, worldY float32) (int, int) {
	x := int(gomath.Floor(float64((worldX - g.Origin.X) / g.CellSize)))
	y := int(gomath.Floor(float64((worldY - g.Origin.Y) / g.CellSize)))
	return x, y
}

// CellToWorld returns the world position of a cell's center.
func (g *Grid) CellToWorld(x, y int) math.Vec3 {
	return math.Vec3{
		X: g.Origin.X + (float32(x)+0.5)*g.CellSize,
		Y: g.Origin.Y + (float32(y)+0.5)*g.CellSize,
		Z: g.Origin.Z,
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) key(x, y int) int {
	return y*g.Width + x
}
