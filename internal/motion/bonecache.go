package motion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// BoneTable holds root-relative transforms of the tracked joints of one clip,
// one entry per sample key. It is read-only after BuildBoneTable.
type BoneTable struct {
	joints  []string
	samples [][]math.Transform // [joint slot][key index]
	numKeys int
}

// BuildBoneTable samples clip at every key of a library with interval Δ and
// stores each joint's transform relative to the skeleton root. The root's own
// transform is excluded so root motion never leaks into joint positions.
// Joints missing from the skeleton are stored as identity.
func BuildBoneTable(clip anim.Clip, skeleton anim.Skeleton, joints []string, interval float32) *BoneTable {
	lib := &Library{clips: []anim.Clip{clip}, interval: interval}
	if clip == nil || clip.Duration() <= 0 || interval <= 0 {
		return &BoneTable{joints: joints, samples: make([][]math.Transform, len(joints))}
	}

	numKeys := lib.NumKeys(0)
	bt := &BoneTable{
		joints:  append([]string(nil), joints...),
		samples: make([][]math.Transform, len(joints)),
		numKeys: numKeys,
	}

	for slot, name := range joints {
		chain := jointChain(skeleton, name)
		column := make([]math.Transform, numKeys)
		for idx := 0; idx < numKeys; idx++ {
			column[idx] = rootRelative(clip, chain, lib.KeyTime(0, idx))
		}
		bt.samples[slot] = column
	}
	return bt
}

// jointChain returns the bone chain of name up to, but not including, the root.
func jointChain(skeleton anim.Skeleton, name string) []int {
	if skeleton == nil {
		return nil
	}
	bone := skeleton.BoneIndex(name)
	if bone == anim.NoBone {
		logger.Debug("tracked joint not in skeleton", zap.String("joint", name))
		return nil
	}
	chain := anim.Chain(skeleton, bone)
	if len(chain) == 0 {
		return nil
	}
	return chain[:len(chain)-1]
}

// rootRelative composes local transforms from the joint up through its parents.
func rootRelative(clip anim.Clip, chain []int, t float32) math.Transform {
	result := math.TransformIdentity()
	for _, bone := range chain {
		result = result.Mul(clip.BoneTransform(bone, t))
	}
	return result
}

// NumKeys returns the number of cached sample keys.
func (bt *BoneTable) NumKeys() int {
	return bt.numKeys
}

// Joints returns the tracked joint names in slot order.
func (bt *BoneTable) Joints() []string {
	return bt.joints
}

// Transform returns the cached transform of joint slot at keyIndex.
// Unknown slots and out-of-range keys return the identity and false.
func (bt *BoneTable) Transform(slot, keyIndex int) (math.Transform, bool) {
	if slot < 0 || slot >= len(bt.samples) || keyIndex < 0 || keyIndex >= len(bt.samples[slot]) {
		return math.TransformIdentity(), false
	}
	return bt.samples[slot][keyIndex], true
}

// BoneCache holds one BoneTable per clip of a Library.
type BoneCache struct {
	lib    *Library
	joints []string
	tables []*BoneTable
}

// BuildBoneCache precomputes joint transforms for every clip of lib.
func BuildBoneCache(lib *Library, skeleton anim.Skeleton, joints []string) *BoneCache {
	bc := &BoneCache{
		lib:    lib,
		joints: append([]string(nil), joints...),
		tables: make([]*BoneTable, lib.Len()),
	}
	for i := range bc.tables {
		bc.tables[i] = BuildBoneTable(lib.Clip(i), skeleton, joints, lib.Interval())
		logger.Debug("built bone table",
			zap.String("clip", lib.Clip(i).Name()),
			zap.Int("keys", bc.tables[i].NumKeys()),
			zap.Int("joints", len(joints)))
	}
	return bc
}

// NumJoints returns the number of tracked joints.
func (bc *BoneCache) NumJoints() int {
	return len(bc.joints)
}

// Table returns the table of clip i, or nil.
func (bc *BoneCache) Table(i int) *BoneTable {
	if i < 0 || i >= len(bc.tables) {
		return nil
	}
	return bc.tables[i]
}

// Transform looks up a joint slot at a key. A key that does not address a
// cached sample is a caller bug: it is logged and answered with the identity.
func (bc *BoneCache) Transform(slot int, key SampleKey) math.Transform {
	table := bc.Table(key.ClipIndex)
	if table == nil {
		logger.Warn("bone cache lookup for unknown clip", zap.Stringer("key", key))
		return math.TransformIdentity()
	}
	tr, ok := table.Transform(slot, key.KeyIndex)
	if !ok && slot >= 0 && slot < len(bc.joints) {
		logger.Warn("bone cache key out of range",
			zap.Stringer("key", key),
			zap.Int("numKeys", table.NumKeys()))
	}
	return tr
}

// Positions returns the root-relative position of every tracked joint at key.
// dst is reused when it has enough capacity.
func (bc *BoneCache) Positions(key SampleKey, dst []math.Vec3) []math.Vec3 {
	dst = dst[:0]
	for slot := range bc.joints {
		dst = append(dst, bc.Transform(slot, key).Translation)
	}
	return dst
}
