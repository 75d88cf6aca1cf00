package anim

import (
	gomath "math"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// LocomotionParams describes a procedurally generated locomotion clip.
type LocomotionParams struct {
	Name      string
	Duration  float32   // Seconds
	Velocity  math.Vec3 // Root velocity in the root's local space, units/s
	TurnRate  float32   // Root yaw rate, rad/s
	Stride    float32   // Limb swing frequency in Hz (0 disables swing)
	Swing     float32   // Limb swing amplitude in radians
	FrameRate float32   // Keyframes per second, defaults to 30
}

// swingPhases offsets limb swing so opposite limbs move in counter-phase.
var swingPhases = map[string]float32{
	"thigh_l":    0,
	"thigh_r":    gomath.Pi,
	"upperarm_l": gomath.Pi,
	"upperarm_r": 0,
}

// Locomotion bakes a clip whose root moves with constant local velocity and
// yaw rate while the limbs swing sinusoidally.
func Locomotion(skeleton *Hierarchy, p LocomotionParams) (*Sequence, error) {
	seq, err := NewSequence(p.Name, skeleton, p.Duration)
	if err != nil {
		return nil, err
	}
	fps := p.FrameRate
	if fps <= 0 {
		fps = 30
	}
	n := int(gomath.Ceil(float64(p.Duration*fps))) + 1
	dt := 1 / fps

	root := make([]Keyframe, 0, n)
	pos := math.Vec3{}
	yaw := float32(0)
	prevTime := float32(0)
	for i := 0; i < n; i++ {
		t := float32(i) * dt
		if t > p.Duration {
			t = p.Duration
		}
		step := t - prevTime
		// Midpoint heading keeps curved paths close to the analytic arc
		heading := math.QuatFromYaw(yaw + p.TurnRate*step/2)
		pos = pos.Add(heading.Rotate(p.Velocity.Scale(step)))
		yaw += p.TurnRate * step
		prevTime = t
		root = append(root, Keyframe{Time: t, Transform: math.NewTransform(pos, math.QuatFromYaw(yaw))})
	}
	if err := seq.SetTrack(0, root); err != nil {
		return nil, err
	}

	if p.Stride <= 0 || p.Swing == 0 {
		return seq, nil
	}
	for name, phase := range swingPhases {
		bone := skeleton.BoneIndex(name)
		if bone == NoBone {
			continue
		}
		ref, _ := skeleton.Bone(bone)
		keys := make([]Keyframe, 0, n)
		for i := 0; i < n; i++ {
			t := float32(i) * dt
			if t > p.Duration {
				t = p.Duration
			}
			angle := p.Swing * float32(gomath.Sin(float64(2*gomath.Pi*p.Stride*t+phase)))
			tr := ref.Reference
			tr.Rotation = tr.Rotation.Mul(math.QuatFromAxisAngle(math.Right, angle))
			keys = append(keys, Keyframe{Time: t, Transform: tr})
		}
		if err := seq.SetTrack(bone, keys); err != nil {
			return nil, err
		}
	}
	return seq, nil
}
