package motion

import (
	gomath "math"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// RejectCost marks a candidate that must never be selected.
var RejectCost = float32(gomath.Inf(1))

// Weights scale the cost terms. A term with weight <= 0 is not evaluated.
type Weights struct {
	Trajectory  float32
	Pose        float32
	Orientation float32
}

// Candidate is the cost breakdown of one key during a search.
type Candidate struct {
	Key         SampleKey
	Trajectory  float32
	Pose        float32
	Orientation float32
	Total       float32
}

// Query is the per-search input shared by every candidate.
type Query struct {
	Facing  math.Quat // Character heading, yaw only
	Desired math.Vec3 // World-space desired displacement over Window
	Current SampleKey // Currently playing position
	Window  float32   // Evaluation window in seconds
}

// DesiredTrajectory converts input axes into a world-space displacement.
// forward and right are scaled by length per step over steps steps.
func DesiredTrajectory(facing math.Quat, forward, right, length float32, steps int) math.Vec3 {
	if steps < 1 {
		steps = 1
	}
	yaw := facing.YawOnly()
	dir := yaw.Rotate(math.Forward).Scale(forward).Add(yaw.Rotate(math.Right).Scale(right))
	return dir.Scale(length * float32(steps))
}

// Evaluator computes the cost terms of candidate keys.
type Evaluator struct {
	lib     *Library
	cache   *BoneCache
	weights Weights

	current []math.Vec3
	scratch []math.Vec3
}

// NewEvaluator creates an evaluator over lib. cache may be nil, in which case
// pose cost is always zero.
func NewEvaluator(lib *Library, cache *BoneCache, weights Weights) *Evaluator {
	return &Evaluator{lib: lib, cache: cache, weights: weights}
}

// Weights returns the configured weights.
func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Prepare caches the joint positions of the currently playing key.
// It must be called once before evaluating candidates of a query.
func (e *Evaluator) Prepare(q Query) {
	if e.cache == nil || e.weights.Pose <= 0 {
		e.current = e.current[:0]
		return
	}
	current := e.lib.KeyFor(q.Current.ClipIndex, q.Current.Time)
	e.current = e.cache.Positions(current, e.current)
}

// Evaluate scores key against q. Terms with non-positive weight are skipped
// and reported as zero.
func (e *Evaluator) Evaluate(key SampleKey, q Query) Candidate {
	c := Candidate{Key: key}
	w := e.weights
	if w.Trajectory <= 0 && w.Orientation <= 0 && w.Pose <= 0 {
		return c
	}

	var rootMotion math.Transform
	if w.Trajectory > 0 || w.Orientation > 0 {
		rootMotion = e.lib.ExtractRootMotion(key, q.Window)
	}
	if w.Trajectory > 0 {
		c.Trajectory = TrajectoryCost(rootMotion, q.Facing, q.Desired)
		c.Total += w.Trajectory * c.Trajectory
	}
	if w.Pose > 0 {
		c.Pose = e.PoseCost(key)
		c.Total += w.Pose * c.Pose
	}
	if w.Orientation > 0 {
		c.Orientation = e.OrientationCost(key, rootMotion, q)
		c.Total += w.Orientation * c.Orientation
	}
	return c
}

// TrajectoryCost is the distance between the desired displacement and the
// candidate's root motion converted to world space.
func TrajectoryCost(rootMotion math.Transform, facing math.Quat, desired math.Vec3) float32 {
	world := facing.Rotate(rootMotion.Translation)
	return world.Distance(desired)
}

// PoseCost sums joint position deltas between key and the prepared current key.
func (e *Evaluator) PoseCost(key SampleKey) float32 {
	if e.cache == nil || len(e.current) == 0 {
		return 0
	}
	e.scratch = e.cache.Positions(key, e.scratch)
	return PoseDistance(e.scratch, e.current)
}

// PoseDistance sums the pairwise distances of two joint position sets.
// Extra positions on either side are ignored.
func PoseDistance(a, b []math.Vec3) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var cost float32
	for i := 0; i < n; i++ {
		cost += a[i].Distance(b[i])
	}
	return cost
}

// OrientationCost compares the heading after playing key's root motion with
// the desired direction. Keys without Window seconds left in their clip are
// rejected.
func (e *Evaluator) OrientationCost(key SampleKey, rootMotion math.Transform, q Query) float32 {
	if e.lib.Duration(key.ClipIndex)-key.Time < q.Window-keyTolerance {
		return RejectCost
	}
	return HeadingCost(q.Facing, rootMotion.Rotation, q.Desired)
}

// HeadingCost is the distance between the forward vector after applying
// turn to facing and the normalized desired direction. No desired movement
// costs nothing.
func HeadingCost(facing, turn math.Quat, desired math.Vec3) float32 {
	dir := desired.Normalize()
	if dir == (math.Vec3{}) {
		return 0
	}
	predicted := facing.Mul(turn).Rotate(math.Forward)
	return predicted.Distance(dir)
}
