package character

import (
	gomath "math"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// ApplyRootMotion moves the character by a root displacement expressed in
// its local space. Translation is rotated by the current heading; the yaw
// of the rotation turns the character. A step onto unwalkable terrain is
// dropped but the turn still applies.
func (c *Character) ApplyRootMotion(rootMotion math.Transform) {
	world := c.Facing().Rotate(rootMotion.Translation)
	world.Z = 0
	c.Yaw = normalizeAngle(c.Yaw + rootMotion.Rotation.Yaw())

	newPos := c.Position.Add(world)
	if c.Terrain != nil {
		if !c.Terrain.IsWalkable(newPos.X, newPos.Y) {
			c.Blocked++
			return
		}
		newPos.Z = c.Terrain.GetHeight(newPos.X, newPos.Y)
	}
	c.Traveled += world.Length()
	c.Position = newPos
}

// SetDestination sets a click-to-move target on the ground plane.
func (c *Character) SetDestination(worldX, worldY float32) {
	c.DestX = worldX
	c.DestY = worldY
	c.HasDestination = true
}

// ClearDestination drops the current target and zeroes the input.
func (c *Character) ClearDestination() {
	c.HasDestination = false
	c.SetInput(0, 0)
}

// Steer points the input axes at the destination, relative to the current
// heading. Arriving within ArrivalThreshold clears the destination.
// It reports whether a destination is still active.
func (c *Character) Steer() bool {
	if !c.HasDestination {
		return false
	}

	dx := c.DestX - c.Position.X
	dy := c.DestY - c.Position.Y
	dist := float32(gomath.Sqrt(float64(dx*dx + dy*dy)))
	if dist < ArrivalThreshold {
		c.ClearDestination()
		return false
	}

	// Express the direction in the character's local frame
	local := c.Facing().Conjugate().Rotate(math.Vec3{X: dx / dist, Y: dy / dist})
	c.SetInput(local.Y, local.X)
	return true
}

// ArrivalThreshold is the distance at which a character is considered to have arrived.
const ArrivalThreshold = 25.0
