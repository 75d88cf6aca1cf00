package motion

import (
	"testing"

	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

const testInterval = 0.05

func approxEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func walkClip(t *testing.T, skel *anim.Hierarchy, name string, velocity math.Vec3, duration, swing float32) anim.Clip {
	t.Helper()
	seq, err := anim.Locomotion(skel, anim.LocomotionParams{
		Name:     name,
		Duration: duration,
		Velocity: velocity,
		Stride:   1,
		Swing:    swing,
	})
	if err != nil {
		t.Fatalf("Locomotion(%s): %v", name, err)
	}
	return seq
}

// walkLibrary returns two 2s clips: walking forward (+Y) and strafing right (+X)
// at 150 units/s with identical limb swing.
func walkLibrary(t *testing.T) (*anim.Hierarchy, []anim.Clip) {
	t.Helper()
	skel := anim.Humanoid()
	return skel, []anim.Clip{
		walkClip(t, skel, "walk_fwd", math.Vec3{Y: 150}, 2, 0.5),
		walkClip(t, skel, "walk_right", math.Vec3{X: 150}, 2, 0.5),
	}
}

type fakeIntent struct {
	facing   math.Quat
	forward  float32
	right    float32
	location math.Vec3
}

func (f *fakeIntent) Facing() math.Quat                  { return f.facing }
func (f *fakeIntent) InputAxes() (forward, right float32) { return f.forward, f.right }
func (f *fakeIntent) Location() math.Vec3                { return f.location }

type recordingSink struct {
	motions []math.Transform
}

func (r *recordingSink) ApplyRootMotion(rm math.Transform) {
	r.motions = append(r.motions, rm)
}

func (r *recordingSink) total() math.Vec3 {
	var sum math.Vec3
	for _, m := range r.motions {
		sum = sum.Add(m.Translation)
	}
	return sum
}
