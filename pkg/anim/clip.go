package anim

import "github.com/Faultbox/motionmatch/pkg/math"

// Clip is a read-only source of skeletal samples.
//
// Implementations must accept any time in [0, Duration()] and degrade to
// identity motion beyond it.
type Clip interface {
	// Name identifies the clip in logs.
	Name() string
	// Duration returns the clip length in seconds.
	Duration() float32
	// BoneTransform returns the bone's transform relative to its parent at t.
	// Unknown bones yield the identity transform.
	BoneTransform(bone int, t float32) math.Transform
	// Pose samples every bone at t. With extractRootMotion the root bone is
	// locked to its reference transform so the motion can be applied elsewhere.
	Pose(t float32, extractRootMotion bool) Pose
	// ExtractRootMotion returns the root displacement from start to
	// start+delta, expressed in the root's space at start.
	ExtractRootMotion(start, delta float32) math.Transform
}
