package anim

import (
	"errors"
	"testing"
)

func TestNewHierarchyValidation(t *testing.T) {
	tests := []struct {
		name    string
		bones   []Bone
		wantErr error
	}{
		{"empty", nil, ErrEmptySkeleton},
		{"root only", []Bone{{Name: "root", Parent: NoBone}}, nil},
		{"root with parent", []Bone{{Name: "root", Parent: 0}}, ErrInvalidParent},
		{"forward parent", []Bone{{Name: "root", Parent: NoBone}, {Name: "a", Parent: 2}, {Name: "b", Parent: 0}}, ErrInvalidParent},
		{"second root", []Bone{{Name: "root", Parent: NoBone}, {Name: "a", Parent: NoBone}}, ErrInvalidParent},
		{"duplicate", []Bone{{Name: "root", Parent: NoBone}, {Name: "root", Parent: 0}}, ErrDuplicateBone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHierarchy(tt.bones)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHumanoidLookup(t *testing.T) {
	h := Humanoid()
	for _, name := range DefaultTrackedJoints {
		if h.BoneIndex(name) == NoBone {
			t.Errorf("humanoid is missing tracked joint %q", name)
		}
	}
	if h.BoneIndex("tail") != NoBone {
		t.Error("unknown bone should resolve to NoBone")
	}
	if h.ParentIndex(0) != NoBone {
		t.Error("root should have no parent")
	}
	if h.ParentIndex(99) != NoBone {
		t.Error("out of range bone should have no parent")
	}
}

func TestChain(t *testing.T) {
	h := Humanoid()
	foot := h.BoneIndex("foot_l")
	chain := Chain(h, foot)

	want := []string{"foot_l", "thigh_l", "pelvis", "root"}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d (%v)", len(chain), len(want), chain)
	}
	names := h.Names()
	for i, bone := range chain {
		if names[bone] != want[i] {
			t.Errorf("chain[%d] = %s, want %s", i, names[bone], want[i])
		}
	}

	if Chain(h, NoBone) != nil {
		t.Error("invalid bone should produce nil chain")
	}
	if Chain(nil, 0) != nil {
		t.Error("nil skeleton should produce nil chain")
	}
}
