package motion

import (
	"github.com/Faultbox/motionmatch/internal/engine/debug"
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// IntentSource supplies the character's heading and the player's movement input.
type IntentSource interface {
	// Facing returns the current control rotation.
	Facing() math.Quat
	// InputAxes returns the forward and right movement axes, each in [-1, 1].
	InputAxes() (forward, right float32)
	// Location returns the character's world position.
	Location() math.Vec3
}

// MovementSink integrates root motion into the character's world transform.
type MovementSink interface {
	// ApplyRootMotion receives the root displacement for this tick in the
	// character's local space.
	ApplyRootMotion(rootMotion math.Transform)
}

// DebugSink receives world-space debug geometry.
type DebugSink interface {
	DrawLine(from, to math.Vec3, color debug.Color, lifetime float32)
	DrawPoint(p math.Vec3, color debug.Color, lifetime float32)
}

// NopDebugSink discards every draw request.
type NopDebugSink struct{}

// DrawLine does nothing.
func (NopDebugSink) DrawLine(math.Vec3, math.Vec3, debug.Color, float32) {}

// DrawPoint does nothing.
func (NopDebugSink) DrawPoint(math.Vec3, debug.Color, float32) {}

// InitContext carries the collaborators available when a node initializes.
// Any of them may be nil; the node degrades instead of failing.
type InitContext struct {
	Skeleton anim.Skeleton
	Intent   IntentSource
	Movement MovementSink
	Debug    DebugSink
}

// AnimNode is driven by the animation system once per frame:
// Initialize once, then Update followed by Evaluate every frame.
type AnimNode interface {
	Initialize(ctx InitContext)
	Update(dt float32)
	Evaluate() anim.Pose
}
