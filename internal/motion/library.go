package motion

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// DefaultSamplingInterval is used when a library is given a non-positive interval.
const DefaultSamplingInterval = 0.05

// Library is an ordered set of clips sampled at a fixed interval.
//
// Each clip contributes keys at 0, Δ, 2Δ, ... and a final key at its exact
// duration, so the last key of a clip always addresses its end.
type Library struct {
	clips    []anim.Clip
	interval float32
}

// NewLibrary builds a library. Nil clips and clips without duration are dropped.
func NewLibrary(clips []anim.Clip, interval float32) *Library {
	if interval <= 0 {
		logger.Warn("invalid sampling interval, using default",
			zap.Float32("interval", interval),
			zap.Float32("default", DefaultSamplingInterval))
		interval = DefaultSamplingInterval
	}
	lib := &Library{interval: interval}
	for i, c := range clips {
		if c == nil || c.Duration() <= 0 {
			logger.Warn("skipping unusable clip", zap.Int("index", i))
			continue
		}
		lib.clips = append(lib.clips, c)
	}
	return lib
}

// Len returns the number of clips.
func (l *Library) Len() int {
	return len(l.clips)
}

// Interval returns the sampling interval Δ in seconds.
func (l *Library) Interval() float32 {
	return l.interval
}

// Clip returns the clip at index i, or nil.
func (l *Library) Clip(i int) anim.Clip {
	if i < 0 || i >= len(l.clips) {
		return nil
	}
	return l.clips[i]
}

// Duration returns the length of clip i, or 0 for an unknown clip.
func (l *Library) Duration(i int) float32 {
	if c := l.Clip(i); c != nil {
		return c.Duration()
	}
	return 0
}

// LastKeyIndex returns the index of the end-of-clip key of clip i.
func (l *Library) LastKeyIndex(i int) int {
	d := l.Duration(i)
	if d <= 0 {
		return 0
	}
	return int(gomath.Ceil(float64(d/l.interval) - keyTolerance))
}

// NumKeys returns the number of sample keys in clip i.
func (l *Library) NumKeys(i int) int {
	if l.Clip(i) == nil {
		return 0
	}
	return l.LastKeyIndex(i) + 1
}

// KeyTime returns the sample time of key index idx in clip i.
func (l *Library) KeyTime(i, idx int) float32 {
	t := float32(idx) * l.interval
	if d := l.Duration(i); t > d {
		return d
	}
	return t
}

// KeyAt returns the key at sample slot idx of clip i.
func (l *Library) KeyAt(i, idx int) SampleKey {
	return SampleKey{ClipIndex: i, Time: l.KeyTime(i, idx), KeyIndex: idx}
}

// KeyFor snaps an arbitrary time in clip i to the sample at or before it.
// Times are clamped to the clip.
func (l *Library) KeyFor(i int, t float32) SampleKey {
	d := l.Duration(i)
	switch {
	case t <= 0:
		return SampleKey{ClipIndex: i}
	case t >= d-keyTolerance:
		return SampleKey{ClipIndex: i, Time: d, KeyIndex: l.LastKeyIndex(i)}
	}
	idx := int(t/l.interval + keyTolerance)
	return l.KeyAt(i, idx)
}

// Reset returns the first key of the library.
func (l *Library) Reset() SampleKey {
	return SampleKey{}
}

// Increment returns the key after k. Past the last key of a clip it moves to
// the start of the next clip; in the last clip it stays on the end key.
func (l *Library) Increment(k SampleKey) SampleKey {
	if l.Clip(k.ClipIndex) == nil {
		return l.MaxKey()
	}
	next := k.KeyIndex + 1
	if next > l.LastKeyIndex(k.ClipIndex) {
		if k.ClipIndex < len(l.clips)-1 {
			return SampleKey{ClipIndex: k.ClipIndex + 1}
		}
		return l.MaxKey()
	}
	return l.KeyAt(k.ClipIndex, next)
}

// MaxKey returns the end key of the last clip, the exclusive scan bound.
func (l *Library) MaxKey() SampleKey {
	if len(l.clips) == 0 {
		return SampleKey{}
	}
	last := len(l.clips) - 1
	return SampleKey{ClipIndex: last, Time: l.Duration(last), KeyIndex: l.LastKeyIndex(last)}
}

// Advance returns k moved forward by dt within its clip. The result may lie
// past the end of the clip; sampling such a key degrades gracefully.
func (l *Library) Advance(k SampleKey, dt float32) SampleKey {
	t := k.Time + dt
	idx := int(t/l.interval + keyTolerance)
	if last := l.LastKeyIndex(k.ClipIndex); idx > last {
		idx = last
	}
	return SampleKey{ClipIndex: k.ClipIndex, Time: t, KeyIndex: idx}
}

// ExtractRootMotion returns the clip's root displacement over [k.Time, k.Time+delta]
// in the root's local space. Keys past the clip end yield the identity.
func (l *Library) ExtractRootMotion(k SampleKey, delta float32) math.Transform {
	c := l.Clip(k.ClipIndex)
	if c == nil || k.Time > c.Duration()+keyTolerance {
		return math.TransformIdentity()
	}
	return c.ExtractRootMotion(k.Time, delta)
}

// Pose samples the clip at k with root motion extracted. Unknown clips
// yield an empty pose.
func (l *Library) Pose(k SampleKey) anim.Pose {
	c := l.Clip(k.ClipIndex)
	if c == nil {
		return anim.Pose{}
	}
	t := k.Time
	if d := c.Duration(); t > d {
		t = d
	}
	return c.Pose(t, true)
}
