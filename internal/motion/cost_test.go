package motion

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

func TestDesiredTrajectory(t *testing.T) {
	quarter := math.QuatFromYaw(gomath.Pi / 2)
	tests := []struct {
		name           string
		facing         math.Quat
		forward, right float32
		steps          int
		want           math.Vec3
	}{
		{"idle", math.QuatIdentity(), 0, 0, 1, math.Vec3{}},
		{"forward", math.QuatIdentity(), 1, 0, 1, math.Vec3{Y: 10}},
		{"right", math.QuatIdentity(), 0, 1, 1, math.Vec3{X: 10}},
		{"diagonal", math.QuatIdentity(), 1, -1, 1, math.Vec3{X: -10, Y: 10}},
		{"two steps", math.QuatIdentity(), 1, 0, 2, math.Vec3{Y: 20}},
		{"zero steps", math.QuatIdentity(), 1, 0, 0, math.Vec3{Y: 10}},
		{"turned left", quarter, 1, 0, 1, math.Vec3{X: -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DesiredTrajectory(tt.facing, tt.forward, tt.right, 10, tt.steps)
			if !got.NearlyEqual(tt.want, 1e-4) {
				t.Errorf("DesiredTrajectory = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDesiredTrajectoryIgnoresPitch(t *testing.T) {
	pitched := math.QuatFromYaw(0.3).Mul(math.QuatFromAxisAngle(math.Right, 0.7))
	got := DesiredTrajectory(pitched, 1, 0, 10, 1)
	want := DesiredTrajectory(math.QuatFromYaw(0.3), 1, 0, 10, 1)
	if !got.NearlyEqual(want, 1e-3) {
		t.Errorf("pitched facing = %v, want %v", got, want)
	}
	if !approxEqual(got.Z, 0, 1e-4) {
		t.Errorf("desired trajectory left the ground plane: %v", got)
	}
}

func TestTrajectoryCost(t *testing.T) {
	rm := math.NewTransform(math.Vec3{Y: 30}, math.QuatIdentity())

	if c := TrajectoryCost(rm, math.QuatIdentity(), math.Vec3{Y: 30}); !approxEqual(c, 0, 1e-5) {
		t.Errorf("matching trajectory cost = %f, want 0", c)
	}
	if c := TrajectoryCost(rm, math.QuatIdentity(), math.Vec3{X: 30}); !approxEqual(c, 30*float32(gomath.Sqrt2), 1e-3) {
		t.Errorf("perpendicular trajectory cost = %f", c)
	}
	// Local root motion is rotated into the character's facing.
	left := math.QuatFromYaw(gomath.Pi / 2)
	if c := TrajectoryCost(rm, left, math.Vec3{X: -30}); !approxEqual(c, 0, 1e-3) {
		t.Errorf("rotated trajectory cost = %f, want 0", c)
	}
}

func TestHeadingCost(t *testing.T) {
	id := math.QuatIdentity()
	tests := []struct {
		name    string
		turn    math.Quat
		desired math.Vec3
		want    float32
	}{
		{"no desire", id, math.Vec3{}, 0},
		{"aligned", id, math.Vec3{Y: 50}, 0},
		{"opposite", id, math.Vec3{Y: -5}, 2},
		{"perpendicular", id, math.Vec3{X: 3}, float32(gomath.Sqrt2)},
		{"turns into desire", math.QuatFromYaw(-gomath.Pi / 2), math.Vec3{X: 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeadingCost(id, tt.turn, tt.desired); !approxEqual(got, tt.want, 1e-4) {
				t.Errorf("HeadingCost = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPoseDistance(t *testing.T) {
	a := []math.Vec3{{X: 1}, {Y: 2}, {Z: 3}}
	b := []math.Vec3{{X: 1}, {Y: 5}}
	if got := PoseDistance(a, b); !approxEqual(got, 3, 1e-6) {
		t.Errorf("PoseDistance = %f, want 3", got)
	}
	if got := PoseDistance(a, a); got != 0 {
		t.Errorf("PoseDistance(a, a) = %f", got)
	}
	if got := PoseDistance(nil, a); got != 0 {
		t.Errorf("PoseDistance(nil, a) = %f", got)
	}
}

func TestOrientationCostRejectsShortTail(t *testing.T) {
	skel, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)
	eval := NewEvaluator(lib, BuildBoneCache(lib, skel, anim.DefaultTrackedJoints), Weights{Orientation: 1})
	q := Query{Facing: math.QuatIdentity(), Desired: math.Vec3{Y: 30}, Window: 0.2}

	tests := []struct {
		idx    int
		reject bool
	}{
		{0, false},
		{36, false}, // exactly one window left
		{37, true},
		{40, true},
	}
	for _, tt := range tests {
		key := lib.KeyAt(0, tt.idx)
		c := eval.Evaluate(key, q)
		if got := c.Total == RejectCost; got != tt.reject {
			t.Errorf("key %d: rejected = %v, want %v (cost %f)", tt.idx, got, tt.reject, c.Total)
		}
	}
}

func TestEvaluateWeights(t *testing.T) {
	skel, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)
	cache := BuildBoneCache(lib, skel, anim.DefaultTrackedJoints)
	q := Query{
		Facing:  math.QuatIdentity(),
		Desired: math.Vec3{X: 30, Y: 30},
		Current: lib.KeyAt(0, 0),
		Window:  0.2,
	}
	key := lib.KeyAt(1, 5)

	full := NewEvaluator(lib, cache, Weights{Trajectory: 1, Pose: 1, Orientation: 1})
	full.Prepare(q)
	c := full.Evaluate(key, q)
	if c.Trajectory <= 0 || c.Pose <= 0 || c.Orientation <= 0 {
		t.Fatalf("expected every term to contribute: %+v", c)
	}
	if sum := c.Trajectory + c.Pose + c.Orientation; !approxEqual(c.Total, sum, 1e-3) {
		t.Errorf("Total = %f, want %f", c.Total, sum)
	}

	doubled := NewEvaluator(lib, cache, Weights{Trajectory: 2})
	doubled.Prepare(q)
	d := doubled.Evaluate(key, q)
	if d.Pose != 0 || d.Orientation != 0 {
		t.Errorf("disabled terms should be zero: %+v", d)
	}
	if !approxEqual(d.Total, 2*c.Trajectory, 1e-3) {
		t.Errorf("weighted Total = %f, want %f", d.Total, 2*c.Trajectory)
	}

	none := NewEvaluator(lib, cache, Weights{})
	if got := none.Evaluate(key, q); got.Total != 0 {
		t.Errorf("all-zero weights Total = %f", got.Total)
	}
}

func TestPoseCostWithoutCache(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)
	eval := NewEvaluator(lib, nil, Weights{Pose: 1})
	q := Query{Current: lib.KeyAt(0, 0), Window: 0.2}
	eval.Prepare(q)
	if c := eval.Evaluate(lib.KeyAt(0, 5), q); c.Pose != 0 || c.Total != 0 {
		t.Errorf("pose cost without skeleton = %+v, want zero", c)
	}
}
