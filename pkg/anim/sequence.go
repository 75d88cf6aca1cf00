package anim

import (
	"errors"
	"fmt"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// Sequence errors.
var (
	ErrUnsortedKeys    = errors.New("keyframes must be sorted by time")
	ErrInvalidDuration = errors.New("clip duration must be positive")
	ErrUnknownBone     = errors.New("unknown bone")
)

// Keyframe is a bone transform at a point in time (seconds).
type Keyframe struct {
	Time      float32
	Transform math.Transform
}

// CurveKey is a scalar curve value at a point in time (seconds).
type CurveKey struct {
	Time  float32
	Value float32
}

// Sequence is a keyframed Clip over a Hierarchy. Bone 0 is the root and
// carries the root motion. Bones without a track hold their reference pose.
type Sequence struct {
	name     string
	duration float32
	skeleton *Hierarchy
	tracks   [][]Keyframe
	curves   map[string][]CurveKey
}

// NewSequence creates an empty sequence. Add tracks with SetTrack.
func NewSequence(name string, skeleton *Hierarchy, duration float32) (*Sequence, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidDuration)
	}
	if skeleton == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySkeleton)
	}
	return &Sequence{
		name:     name,
		duration: duration,
		skeleton: skeleton,
		tracks:   make([][]Keyframe, skeleton.NumBones()),
	}, nil
}

// SetTrack replaces the keyframes of a bone. Keys must be sorted by time.
func (s *Sequence) SetTrack(bone int, keys []Keyframe) error {
	if bone < 0 || bone >= len(s.tracks) {
		return fmt.Errorf("%s: %w: index %d", s.name, ErrUnknownBone, bone)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Time < keys[i-1].Time {
			return fmt.Errorf("%s: bone %d: %w", s.name, bone, ErrUnsortedKeys)
		}
	}
	s.tracks[bone] = keys
	return nil
}

// SetCurve replaces the keys of a named curve. Keys must be sorted by time.
func (s *Sequence) SetCurve(name string, keys []CurveKey) error {
	for i := 1; i < len(keys); i++ {
		if keys[i].Time < keys[i-1].Time {
			return fmt.Errorf("%s: curve %q: %w", s.name, name, ErrUnsortedKeys)
		}
	}
	if s.curves == nil {
		s.curves = make(map[string][]CurveKey)
	}
	s.curves[name] = keys
	return nil
}

// Name returns the clip name.
func (s *Sequence) Name() string { return s.name }

// Duration returns the clip length in seconds.
func (s *Sequence) Duration() float32 { return s.duration }

// Skeleton returns the hierarchy the sequence animates.
func (s *Sequence) Skeleton() *Hierarchy { return s.skeleton }

// BoneTransform samples a bone relative to its parent. t is clamped to the clip.
func (s *Sequence) BoneTransform(bone int, t float32) math.Transform {
	if bone < 0 || bone >= len(s.tracks) {
		return math.TransformIdentity()
	}
	keys := s.tracks[bone]
	if len(keys) == 0 {
		b, _ := s.skeleton.Bone(bone)
		return b.Reference
	}
	return InterpolateKeys(keys, s.clamp(t))
}

// Pose samples every bone at t.
func (s *Sequence) Pose(t float32, extractRootMotion bool) Pose {
	pose := Pose{Bones: make([]math.Transform, len(s.tracks))}
	for i := range s.tracks {
		pose.Bones[i] = s.BoneTransform(i, t)
	}
	if extractRootMotion && len(pose.Bones) > 0 {
		pose.Bones[0] = lockRoot(pose.Bones[0], s.skeleton)
	}
	if len(s.curves) > 0 {
		pose.Curves = make(map[string]float32, len(s.curves))
		for name, keys := range s.curves {
			pose.Curves[name] = InterpolateCurve(keys, s.clamp(t))
		}
	}
	return pose
}

// lockRoot moves the root back to its reference translation and heading.
// Pitch and roll stay, they are not part of root motion.
func lockRoot(root math.Transform, skel *Hierarchy) math.Transform {
	ref := math.TransformIdentity()
	if b, ok := skel.Bone(0); ok {
		ref = b.Reference
	}
	tilt := root.Rotation.YawOnly().Conjugate().Mul(root.Rotation)
	return math.Transform{
		Translation: ref.Translation,
		Rotation:    ref.Rotation.YawOnly().Mul(tilt).Normalize(),
		Scale:       root.Scale,
	}
}

// ExtractRootMotion returns the root displacement over [start, start+delta]
// in the root's space at start. Past the end of the clip it is the identity.
func (s *Sequence) ExtractRootMotion(start, delta float32) math.Transform {
	if start > s.duration || len(s.tracks) == 0 {
		return math.TransformIdentity()
	}
	start = s.clamp(start)
	end := s.clamp(start + delta)
	from := s.BoneTransform(0, start)
	to := s.BoneTransform(0, end)
	return to.RelativeTo(from)
}

func (s *Sequence) clamp(t float32) float32 {
	switch {
	case t < 0:
		return 0
	case t > s.duration:
		return s.duration
	}
	return t
}

// InterpolateKeys samples keyframes at t: translation and scale are lerped,
// rotation is slerped, and times outside the keys hold the first or last key.
func InterpolateKeys(keys []Keyframe, t float32) math.Transform {
	if len(keys) == 0 {
		return math.TransformIdentity()
	}
	if len(keys) == 1 {
		return keys[0].Transform
	}

	prev, next := surrounding(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Transform
	}

	k0 := keys[prev]
	k1 := keys[next]
	alpha := float32(0)
	if k1.Time != k0.Time {
		alpha = (t - k0.Time) / (k1.Time - k0.Time)
	}
	return math.BlendTransforms(k0.Transform, k1.Transform, alpha)
}

// InterpolateCurve samples scalar curve keys at t.
func InterpolateCurve(keys []CurveKey, t float32) float32 {
	if len(keys) == 0 {
		return 0
	}
	prev, next := surrounding(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value
	}
	k0 := keys[prev]
	k1 := keys[next]
	if k1.Time == k0.Time {
		return k0.Value
	}
	alpha := (t - k0.Time) / (k1.Time - k0.Time)
	return k0.Value + alpha*(k1.Value-k0.Value)
}

// surrounding finds the keys bracketing t (keys sorted by time).
// prev == next when t is before the first or at/after the last key.
func surrounding(n int, timeAt func(int) float32, t float32) (prev, next int) {
	for i := 0; i < n; i++ {
		if timeAt(i) > t {
			if i == 0 {
				return 0, 0
			}
			return prev, i
		}
		prev = i
	}
	return prev, prev
}
