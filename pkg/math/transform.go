package math

// Transform is a rigid transform with per-axis scale, applied as
// scale, then rotation, then translation.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// TransformIdentity returns the transform that leaves points unchanged.
func TransformIdentity() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Vec3{1, 1, 1},
	}
}

// NewTransform builds a unit-scale transform.
func NewTransform(translation Vec3, rotation Quat) Transform {
	return Transform{
		Translation: translation,
		Rotation:    rotation,
		Scale:       Vec3{1, 1, 1},
	}
}

// Mul expresses t in the space of parent: the result applies t first, then parent.
// A bone's local transform multiplied by its parent's yields the bone in the
// parent's parent space.
func (t Transform) Mul(parent Transform) Transform {
	return Transform{
		Translation: parent.Rotation.Rotate(t.Translation.Mul(parent.Scale)).Add(parent.Translation),
		Rotation:    parent.Rotation.Mul(t.Rotation).Normalize(),
		Scale:       t.Scale.Mul(parent.Scale),
	}
}

// Inverse returns the transform that undoes t.
// Zero scale components invert to zero.
func (t Transform) Inverse() Transform {
	invScale := Vec3{reciprocal(t.Scale.X), reciprocal(t.Scale.Y), reciprocal(t.Scale.Z)}
	invRot := t.Rotation.Conjugate()
	return Transform{
		Translation: invRot.Rotate(t.Translation.Scale(-1)).Mul(invScale),
		Rotation:    invRot,
		Scale:       invScale,
	}
}

// RelativeTo returns t expressed in the space of base.
func (t Transform) RelativeTo(base Transform) Transform {
	return t.Mul(base.Inverse())
}

// TransformPosition applies t to a point.
func (t Transform) TransformPosition(p Vec3) Vec3 {
	return t.Rotation.Rotate(p.Mul(t.Scale)).Add(t.Translation)
}

// ToMat4 returns the equivalent matrix (T * R * S).
func (t Transform) ToMat4() Mat4 {
	return Translate(t.Translation).Mul(t.Rotation.ToMat4()).Mul(Scale(t.Scale))
}

// NearlyEqual compares translation, rotation and scale within tolerance.
func (t Transform) NearlyEqual(other Transform, tolerance float32) bool {
	return t.Translation.NearlyEqual(other.Translation, tolerance) &&
		t.Rotation.NearlyEqual(other.Rotation, tolerance) &&
		t.Scale.NearlyEqual(other.Scale, tolerance)
}

// IsIdentity reports whether t is the identity within a small tolerance.
func (t Transform) IsIdentity() bool {
	return t.NearlyEqual(TransformIdentity(), 1e-5)
}

// BlendTransforms interpolates from a to b. alpha is clamped to [0, 1];
// 0 returns a and 1 returns b exactly.
func BlendTransforms(a, b Transform, alpha float32) Transform {
	switch {
	case alpha <= 0:
		return a
	case alpha >= 1:
		return b
	}
	return Transform{
		Translation: a.Translation.Lerp(b.Translation, alpha),
		Rotation:    a.Rotation.Slerp(b.Rotation, alpha),
		Scale:       a.Scale.Lerp(b.Scale, alpha),
	}
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float32) float32 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

func reciprocal(x float32) float32 {
	if x == 0 {
		return 0
	}
	return 1 / x
}
