package anim

import "github.com/Faultbox/motionmatch/pkg/math"

// Pose is the full set of local bone transforms at one sample time
// plus any animated curve values.
type Pose struct {
	Bones  []math.Transform
	Curves map[string]float32
}

// IdentityPose returns a pose with n identity bones.
func IdentityPose(n int) Pose {
	bones := make([]math.Transform, n)
	for i := range bones {
		bones[i] = math.TransformIdentity()
	}
	return Pose{Bones: bones}
}

// Clone returns a deep copy of p.
func (p Pose) Clone() Pose {
	out := Pose{Bones: append([]math.Transform(nil), p.Bones...)}
	if p.Curves != nil {
		out.Curves = make(map[string]float32, len(p.Curves))
		for k, v := range p.Curves {
			out.Curves[k] = v
		}
	}
	return out
}

// BlendPoses interpolates from a to b by alpha, clamped to [0, 1].
// alpha 0 returns a copy of a and 1 a copy of b. When the poses differ in
// length the extra bones are taken from whichever pose has them.
// Curves missing from one side are treated as 0.
func BlendPoses(a, b Pose, alpha float32) Pose {
	alpha = math.Clamp01(alpha)
	switch alpha {
	case 0:
		return a.Clone()
	case 1:
		return b.Clone()
	}

	n := len(a.Bones)
	if len(b.Bones) > n {
		n = len(b.Bones)
	}
	out := Pose{Bones: make([]math.Transform, n)}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(a.Bones):
			out.Bones[i] = b.Bones[i]
		case i >= len(b.Bones):
			out.Bones[i] = a.Bones[i]
		default:
			out.Bones[i] = math.BlendTransforms(a.Bones[i], b.Bones[i], alpha)
		}
	}

	if len(a.Curves) > 0 || len(b.Curves) > 0 {
		out.Curves = make(map[string]float32, len(a.Curves)+len(b.Curves))
		for k, va := range a.Curves {
			out.Curves[k] = va + alpha*(b.Curves[k]-va)
		}
		for k, vb := range b.Curves {
			if _, ok := a.Curves[k]; !ok {
				out.Curves[k] = alpha * vb
			}
		}
	}
	return out
}
