package anim

import "github.com/Faultbox/motionmatch/pkg/math"

// DefaultTrackedJoints are the joints compared by pose matching.
var DefaultTrackedJoints = []string{"foot_l", "foot_r", "head", "hand_l", "hand_r", "pelvis"}

func offset(x, y, z float32) math.Transform {
	return math.NewTransform(math.Vec3{X: x, Y: y, Z: z}, math.QuatIdentity())
}

// Humanoid returns a minimal biped hierarchy in centimetres, facing +Y.
func Humanoid() *Hierarchy {
	h, err := NewHierarchy([]Bone{
		{Name: "root", Parent: NoBone},
		{Name: "pelvis", Parent: 0, Reference: offset(0, 0, 95)},
		{Name: "spine_01", Parent: 1, Reference: offset(0, 0, 15)},
		{Name: "neck", Parent: 2, Reference: offset(0, 0, 45)},
		{Name: "head", Parent: 3, Reference: offset(0, 0, 10)},
		{Name: "upperarm_l", Parent: 2, Reference: offset(-18, 0, 40)},
		{Name: "hand_l", Parent: 5, Reference: offset(-5, 0, -55)},
		{Name: "upperarm_r", Parent: 2, Reference: offset(18, 0, 40)},
		{Name: "hand_r", Parent: 7, Reference: offset(5, 0, -55)},
		{Name: "thigh_l", Parent: 1, Reference: offset(-10, 0, -5)},
		{Name: "foot_l", Parent: 9, Reference: offset(0, 0, -85)},
		{Name: "thigh_r", Parent: 1, Reference: offset(10, 0, -5)},
		{Name: "foot_r", Parent: 11, Reference: offset(0, 0, -85)},
	})
	if err != nil {
		// The table above is static; failure is a programming error.
		panic(err)
	}
	return h
}
