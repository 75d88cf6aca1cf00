// Package character provides a controllable character that consumes root
// motion and reports its heading and movement input.
package character

import (
	gomath "math"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// Character is a ground-bound actor. Position is in world units with Z up;
// Yaw is the heading in radians around the up axis, 0 facing +Y.
type Character struct {
	Position math.Vec3
	Yaw      float32

	// Movement input in [-1, 1]
	Forward float32
	Right   float32

	// Click-to-move target
	DestX, DestY   float32
	HasDestination bool

	// Terrain is optional; nil means flat, fully walkable ground at Z=0.
	Terrain TerrainQuery

	Traveled float32 // Total distance moved
	Blocked  int     // Root motion steps rejected by terrain
}

// TerrainQuery provides terrain information for character movement.
type TerrainQuery interface {
	// IsWalkable returns true if the given world position is walkable.
	IsWalkable(worldX, worldY float32) bool
	// GetHeight returns the terrain height at the given world position.
	GetHeight(worldX, worldY float32) float32
}

// New creates a character at position facing yaw.
func New(position math.Vec3, yaw float32) *Character {
	return &Character{Position: position, Yaw: normalizeAngle(yaw)}
}

// Facing returns the heading as a yaw-only rotation.
func (c *Character) Facing() math.Quat {
	return math.QuatFromYaw(c.Yaw)
}

// InputAxes returns the current forward and right input.
func (c *Character) InputAxes() (forward, right float32) {
	return c.Forward, c.Right
}

// Location returns the world position.
func (c *Character) Location() math.Vec3 {
	return c.Position
}

// SetInput sets the movement axes, clamping each to [-1, 1].
func (c *Character) SetInput(forward, right float32) {
	c.Forward = clampAxis(forward)
	c.Right = clampAxis(right)
}

func clampAxis(v float32) float32 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}

// normalizeAngle wraps a to (-π, π].
func normalizeAngle(a float32) float32 {
	for a > gomath.Pi {
		a -= 2 * gomath.Pi
	}
	for a <= -gomath.Pi {
		a += 2 * gomath.Pi
	}
	return a
}
