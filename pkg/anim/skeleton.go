// Package anim provides skeletons, animation clips and pose blending.
package anim

import (
	"errors"
	"fmt"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// Skeleton errors.
var (
	ErrDuplicateBone = errors.New("duplicate bone name")
	ErrInvalidParent = errors.New("bone parent must precede the bone")
	ErrEmptySkeleton = errors.New("skeleton has no bones")
)

// NoBone is returned for lookups that do not resolve to a bone.
const NoBone = -1

// Skeleton resolves bone names and the parent hierarchy.
type Skeleton interface {
	// NumBones returns the number of bones.
	NumBones() int
	// BoneIndex returns the index of the named bone, or NoBone.
	BoneIndex(name string) int
	// ParentIndex returns the parent of bone, or NoBone for the root.
	ParentIndex(bone int) int
}

// Bone describes one joint of a Hierarchy.
type Bone struct {
	Name      string
	Parent    int            // NoBone for the root
	Reference math.Transform // Bind pose, relative to the parent
}

// Hierarchy is a Skeleton whose bones are stored parents-first.
type Hierarchy struct {
	bones []Bone
	index map[string]int
}

// NewHierarchy validates bones and builds the name index.
// Every parent must appear before its children, which also rules out cycles.
func NewHierarchy(bones []Bone) (*Hierarchy, error) {
	if len(bones) == 0 {
		return nil, ErrEmptySkeleton
	}
	h := &Hierarchy{
		bones: make([]Bone, len(bones)),
		index: make(map[string]int, len(bones)),
	}
	for i, b := range bones {
		if _, ok := h.index[b.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBone, b.Name)
		}
		if b.Parent >= i || (b.Parent < 0 && b.Parent != NoBone) || (i > 0 && b.Parent == NoBone) {
			return nil, fmt.Errorf("%w: %q (parent %d)", ErrInvalidParent, b.Name, b.Parent)
		}
		if b.Reference == (math.Transform{}) {
			b.Reference = math.TransformIdentity()
		}
		h.bones[i] = b
		h.index[b.Name] = i
	}
	return h, nil
}

// NumBones returns the number of bones.
func (h *Hierarchy) NumBones() int {
	return len(h.bones)
}

// BoneIndex returns the index of the named bone, or NoBone.
func (h *Hierarchy) BoneIndex(name string) int {
	if i, ok := h.index[name]; ok {
		return i
	}
	return NoBone
}

// ParentIndex returns the parent of bone, or NoBone.
func (h *Hierarchy) ParentIndex(bone int) int {
	if bone < 0 || bone >= len(h.bones) {
		return NoBone
	}
	return h.bones[bone].Parent
}

// Bone returns the bone at index i.
func (h *Hierarchy) Bone(i int) (Bone, bool) {
	if i < 0 || i >= len(h.bones) {
		return Bone{}, false
	}
	return h.bones[i], true
}

// Names returns bone names in index order.
func (h *Hierarchy) Names() []string {
	names := make([]string, len(h.bones))
	for i, b := range h.bones {
		names[i] = b.Name
	}
	return names
}

// Chain returns bone followed by each ancestor up to the root.
// An invalid bone yields nil.
func Chain(s Skeleton, bone int) []int {
	if s == nil || bone < 0 || bone >= s.NumBones() {
		return nil
	}
	chain := []int{bone}
	for p := s.ParentIndex(bone); p != NoBone; p = s.ParentIndex(p) {
		if len(chain) > s.NumBones() {
			// Malformed hierarchy with a cycle
			return nil
		}
		chain = append(chain, p)
	}
	return chain
}
