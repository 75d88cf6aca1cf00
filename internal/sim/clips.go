package sim

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// ErrSkeletonMismatch is returned when clip sets disagree on their skeleton.
var ErrSkeletonMismatch = errors.New("clip sets use different skeletons")

// Locomotion speeds of the built-in library in units/s. A walk covers the
// default trajectory length over the default evaluation window.
const (
	walkSpeed   = 50.0
	strafeSpeed = 40.0
	backSpeed   = 35.0
)

// DefaultLocomotion describes the built-in clip library: straight walks in
// the four directions, walking turns and an idle.
func DefaultLocomotion() []anim.LocomotionParams {
	return []anim.LocomotionParams{
		{Name: "idle", Duration: 2, Stride: 0.25, Swing: 0.05},
		{Name: "walk_fwd", Duration: 2, Velocity: math.Vec3{Y: walkSpeed}, Stride: 1, Swing: 0.5},
		{Name: "walk_bwd", Duration: 2, Velocity: math.Vec3{Y: -backSpeed}, Stride: 1, Swing: 0.4},
		{Name: "strafe_right", Duration: 2, Velocity: math.Vec3{X: strafeSpeed}, Stride: 1, Swing: 0.3},
		{Name: "strafe_left", Duration: 2, Velocity: math.Vec3{X: -strafeSpeed}, Stride: 1, Swing: 0.3},
		{Name: "turn_left", Duration: 2, Velocity: math.Vec3{Y: walkSpeed}, TurnRate: gomath.Pi / 4, Stride: 1, Swing: 0.5},
		{Name: "turn_right", Duration: 2, Velocity: math.Vec3{Y: walkSpeed}, TurnRate: -gomath.Pi / 4, Stride: 1, Swing: 0.5},
	}
}

// DefaultClips bakes the built-in library for the Humanoid skeleton.
func DefaultClips() (*anim.Hierarchy, []anim.Clip, error) {
	skeleton := anim.Humanoid()
	params := DefaultLocomotion()
	clips := make([]anim.Clip, 0, len(params))
	for _, p := range params {
		seq, err := anim.Locomotion(skeleton, p)
		if err != nil {
			return nil, nil, fmt.Errorf("baking %s: %w", p.Name, err)
		}
		clips = append(clips, seq)
	}
	return skeleton, clips, nil
}

// LoadClips reads clip sets from files and concatenates their clips in
// order. Every set must use the same bone names as the first.
func LoadClips(files []string) (*anim.Hierarchy, []anim.Clip, error) {
	var (
		skeleton *anim.Hierarchy
		clips    []anim.Clip
	)
	for _, path := range files {
		cs, err := anim.LoadClipSet(path)
		if err != nil {
			return nil, nil, err
		}
		if skeleton == nil {
			skeleton = cs.Skeleton
		} else if !sameBones(skeleton, cs.Skeleton) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrSkeletonMismatch)
		}
		clips = append(clips, cs.AsClips()...)
	}
	if skeleton == nil {
		return nil, nil, anim.ErrNoClips
	}
	return skeleton, clips, nil
}

func sameBones(a, b *anim.Hierarchy) bool {
	an, bn := a.Names(), b.Names()
	if len(an) != len(bn) {
		return false
	}
	for i := range an {
		if an[i] != bn[i] || a.ParentIndex(i) != b.ParentIndex(i) {
			return false
		}
	}
	return true
}
