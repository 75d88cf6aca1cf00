package anim

import (
	"errors"
	"testing"

	"github.com/Faultbox/motionmatch/pkg/math"
)

func linearRootClip(t *testing.T, duration, speed float32) *Sequence {
	t.Helper()
	seq, err := NewSequence("linear", Humanoid(), duration)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	err = seq.SetTrack(0, []Keyframe{
		{Time: 0, Transform: math.TransformIdentity()},
		{Time: duration, Transform: math.NewTransform(math.Vec3{Y: speed * duration}, math.QuatIdentity())},
	})
	if err != nil {
		t.Fatalf("SetTrack: %v", err)
	}
	return seq
}

func TestNewSequenceInvalidDuration(t *testing.T) {
	if _, err := NewSequence("bad", Humanoid(), 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestSetTrackRejectsUnsorted(t *testing.T) {
	seq, _ := NewSequence("s", Humanoid(), 1)
	err := seq.SetTrack(1, []Keyframe{{Time: 0.5}, {Time: 0.2}})
	if !errors.Is(err, ErrUnsortedKeys) {
		t.Errorf("expected ErrUnsortedKeys, got %v", err)
	}
	if err := seq.SetTrack(42, nil); !errors.Is(err, ErrUnknownBone) {
		t.Errorf("expected ErrUnknownBone, got %v", err)
	}
}

func TestInterpolateKeys(t *testing.T) {
	keys := []Keyframe{
		{Time: 0, Transform: math.NewTransform(math.Vec3{X: 0}, math.QuatIdentity())},
		{Time: 1, Transform: math.NewTransform(math.Vec3{X: 10}, math.QuatIdentity())},
	}

	tests := []struct {
		time float32
		want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 2.5},
		{1, 10},
		{3, 10},
	}
	for _, tt := range tests {
		got := InterpolateKeys(keys, tt.time).Translation.X
		if got < tt.want-1e-4 || got > tt.want+1e-4 {
			t.Errorf("InterpolateKeys(%v) = %v, want %v", tt.time, got, tt.want)
		}
	}

	if !InterpolateKeys(nil, 0.5).IsIdentity() {
		t.Error("no keys should interpolate to identity")
	}
}

func TestBoneTransformDefaults(t *testing.T) {
	seq := linearRootClip(t, 2, 100)
	h := seq.Skeleton()

	head := h.BoneIndex("head")
	ref, _ := h.Bone(head)
	if got := seq.BoneTransform(head, 1); got != ref.Reference {
		t.Errorf("untracked bone should hold its reference pose, got %+v", got)
	}
	if !seq.BoneTransform(-1, 0).IsIdentity() || !seq.BoneTransform(500, 0).IsIdentity() {
		t.Error("unknown bones should be identity")
	}
}

func TestExtractRootMotion(t *testing.T) {
	seq := linearRootClip(t, 2, 100)

	rm := seq.ExtractRootMotion(0.5, 0.2)
	if !rm.Translation.NearlyEqual(math.Vec3{Y: 20}, 1e-3) {
		t.Errorf("root motion over 0.2s at 100u/s: got %v, want (0,20,0)", rm.Translation)
	}

	// Window past the end is clamped
	rm = seq.ExtractRootMotion(1.9, 0.5)
	if !rm.Translation.NearlyEqual(math.Vec3{Y: 10}, 1e-3) {
		t.Errorf("clamped root motion: got %v, want (0,10,0)", rm.Translation)
	}

	if !seq.ExtractRootMotion(2.5, 0.2).IsIdentity() {
		t.Error("root motion past the end should be identity")
	}
}

func TestExtractRootMotionIsLocal(t *testing.T) {
	// Root moves along its own forward while turned 90 degrees
	seq, _ := NewSequence("turned", Humanoid(), 1)
	yaw := math.QuatFromYaw(1.5707964)
	_ = seq.SetTrack(0, []Keyframe{
		{Time: 0, Transform: math.NewTransform(math.Vec3{}, yaw)},
		{Time: 1, Transform: math.NewTransform(yaw.Rotate(math.Vec3{Y: 50}), yaw)},
	})
	rm := seq.ExtractRootMotion(0, 1)
	if !rm.Translation.NearlyEqual(math.Vec3{Y: 50}, 1e-3) {
		t.Errorf("root motion should be in root space, got %v", rm.Translation)
	}
}

func TestPoseExtractRootMotion(t *testing.T) {
	seq := linearRootClip(t, 2, 100)
	locked := seq.Pose(1, true)
	free := seq.Pose(1, false)

	if len(locked.Bones) != seq.Skeleton().NumBones() {
		t.Fatalf("pose has %d bones, want %d", len(locked.Bones), seq.Skeleton().NumBones())
	}
	if !locked.Bones[0].IsIdentity() {
		t.Errorf("root should be locked to reference, got %+v", locked.Bones[0])
	}
	if !free.Bones[0].Translation.NearlyEqual(math.Vec3{Y: 100}, 1e-3) {
		t.Errorf("unlocked root translation: got %v", free.Bones[0].Translation)
	}
}

func TestPoseExtractRootMotionKeepsTilt(t *testing.T) {
	seq, _ := NewSequence("lean", Humanoid(), 1)
	tilt := math.QuatFromAxisAngle(math.Right, 0.4)
	rot := math.QuatFromYaw(1).Mul(tilt)
	_ = seq.SetTrack(0, []Keyframe{
		{Time: 0, Transform: math.NewTransform(math.Vec3{X: 5, Y: 20}, rot)},
		{Time: 1, Transform: math.NewTransform(math.Vec3{X: 5, Y: 20}, rot)},
	})

	root := seq.Pose(0.5, true).Bones[0]
	if !root.Translation.NearlyEqual(math.Vec3{}, 1e-5) {
		t.Errorf("root translation should be locked, got %v", root.Translation)
	}
	if !root.Rotation.NearlyEqual(tilt, 1e-5) {
		t.Errorf("root should keep its tilt without yaw, got %+v", root.Rotation)
	}
}

func TestPoseCurves(t *testing.T) {
	seq := linearRootClip(t, 1, 10)
	if err := seq.SetCurve("foot_plant", []CurveKey{{Time: 0, Value: 0}, {Time: 1, Value: 1}}); err != nil {
		t.Fatalf("SetCurve: %v", err)
	}
	got := seq.Pose(0.5, true).Curves["foot_plant"]
	if got < 0.499 || got > 0.501 {
		t.Errorf("curve at 0.5 = %v, want 0.5", got)
	}
}
