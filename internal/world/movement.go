package world

import (
	"github.com/Faultbox/motionmatch/internal/engine/character"
)

// PathFollower walks a character along a grid path by handing it one
// waypoint at a time as its click-to-move destination.
type PathFollower struct {
	grid      *Grid
	character *character.Character

	path      [][2]int
	pathIndex int

	IsFollowingPath bool
}

// NewPathFollower creates a follower for c on grid.
func NewPathFollower(grid *Grid, c *character.Character) *PathFollower {
	return &PathFollower{grid: grid, character: c}
}

// MoveToWorld plans a path from the character to a world position.
// It returns the planned cells, or nil when the target is unreachable.
func (pf *PathFollower) MoveToWorld(worldX, worldY float32) [][2]int {
	if pf.character == nil || pf.grid == nil {
		return nil
	}

	sx, sy := pf.grid.WorldToCell(pf.character.Position.X, pf.character.Position.Y)
	gx, gy := pf.grid.WorldToCell(worldX, worldY)
	path := pf.grid.FindPath(sx, sy, gx, gy)
	if len(path) == 0 {
		return nil
	}

	// The first cell is where the character already stands
	pf.path = path[1:]
	pf.pathIndex = 0
	pf.IsFollowingPath = true
	if len(pf.path) == 0 {
		pf.character.SetDestination(worldX, worldY)
		pf.IsFollowingPath = false
		return path
	}
	pf.setNextWaypoint()
	return path
}

// Update hands out the next waypoint once the character reached the
// current one. It reports whether a path is still being followed.
func (pf *PathFollower) Update() bool {
	if pf.character == nil || !pf.IsFollowingPath {
		return false
	}
	if !pf.character.HasDestination {
		if pf.pathIndex < len(pf.path) {
			pf.setNextWaypoint()
		} else {
			pf.IsFollowingPath = false
		}
	}
	return pf.IsFollowingPath
}

// ClearPath stops following and clears the character's destination.
func (pf *PathFollower) ClearPath() {
	pf.path = nil
	pf.pathIndex = 0
	pf.IsFollowingPath = false
	if pf.character != nil {
		pf.character.ClearDestination()
	}
}

// Path returns the remaining planned cells.
func (pf *PathFollower) Path() [][2]int {
	return pf.path
}

// PathIndex returns the index of the next waypoint to hand out.
func (pf *PathFollower) PathIndex() int {
	return pf.pathIndex
}

func (pf *PathFollower) setNextWaypoint() {
	if pf.pathIndex >= len(pf.path) {
		return
	}
	p := pf.grid.CellToWorld(pf.path[pf.pathIndex][0], pf.path[pf.pathIndex][1])
	pf.character.SetDestination(p.X, p.Y)
	pf.pathIndex++
}
