// Package motion implements a motion matching animation node: a clip library
// addressed as uniformly sampled keys, a precomputed joint cache, a weighted
// cost search and a blending playback controller.
package motion

import (
	"fmt"
	gomath "math"
)

// keyTolerance absorbs float error when comparing sample times.
const keyTolerance = 1e-4

// SampleKey addresses a sample time inside one clip of a Library.
// KeyIndex is the sample slot used to index bone caches.
type SampleKey struct {
	ClipIndex int
	Time      float32
	KeyIndex  int
}

// Equal compares clip and time within tolerance.
func (k SampleKey) Equal(other SampleKey) bool {
	return k.ClipIndex == other.ClipIndex && gomath.Abs(float64(k.Time-other.Time)) <= keyTolerance
}

// Less orders keys by clip, then time.
func (k SampleKey) Less(other SampleKey) bool {
	if k.ClipIndex != other.ClipIndex {
		return k.ClipIndex < other.ClipIndex
	}
	return k.Time < other.Time-keyTolerance
}

// String formats the key for logs.
func (k SampleKey) String() string {
	return fmt.Sprintf("clip=%d t=%.3f key=%d", k.ClipIndex, k.Time, k.KeyIndex)
}
