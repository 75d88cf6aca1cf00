package motion

import (
	"testing"

	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

func TestLibraryKeyLayout(t *testing.T) {
	skel := anim.Humanoid()
	lib := NewLibrary([]anim.Clip{
		walkClip(t, skel, "even", math.Vec3{Y: 100}, 2, 0),
		walkClip(t, skel, "odd", math.Vec3{Y: 100}, 1.02, 0),
	}, testInterval)

	tests := []struct {
		clip     int
		lastKey  int
		lastTime float32
	}{
		{0, 40, 2},
		{1, 21, 1.02},
	}
	for _, tt := range tests {
		if got := lib.LastKeyIndex(tt.clip); got != tt.lastKey {
			t.Errorf("clip %d: LastKeyIndex = %d, want %d", tt.clip, got, tt.lastKey)
		}
		if got := lib.KeyTime(tt.clip, tt.lastKey); !approxEqual(got, tt.lastTime, 1e-5) {
			t.Errorf("clip %d: end key time = %f, want %f", tt.clip, got, tt.lastTime)
		}
		if got := lib.NumKeys(tt.clip); got != tt.lastKey+1 {
			t.Errorf("clip %d: NumKeys = %d, want %d", tt.clip, got, tt.lastKey+1)
		}
	}
}

func TestLibraryIncrementVisitsEveryKeyInOrder(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)

	maxKey := lib.MaxKey()
	if maxKey.ClipIndex != 1 || maxKey.KeyIndex != 40 || !approxEqual(maxKey.Time, 2, 1e-5) {
		t.Fatalf("MaxKey = %v", maxKey)
	}

	visited := 0
	prev := SampleKey{ClipIndex: -1}
	for k := lib.Reset(); k.Less(maxKey); k = lib.Increment(k) {
		if !prev.Less(k) {
			t.Fatalf("keys not increasing: %v then %v", prev, k)
		}
		if k.Time < 0 || k.Time > lib.Duration(k.ClipIndex)+keyTolerance {
			t.Fatalf("key %v outside its clip", k)
		}
		prev = k
		visited++
		if visited > 1000 {
			t.Fatal("iteration does not terminate")
		}
	}
	// 41 keys per clip; the exclusive bound drops the final one.
	if visited != 81 {
		t.Errorf("visited %d keys, want 81", visited)
	}
}

func TestLibraryIncrementCrossesClips(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)

	end := lib.KeyAt(0, lib.LastKeyIndex(0))
	next := lib.Increment(end)
	if next != (SampleKey{ClipIndex: 1}) {
		t.Errorf("Increment(%v) = %v, want start of clip 1", end, next)
	}
	if got := lib.Increment(lib.MaxKey()); got != lib.MaxKey() {
		t.Errorf("Increment(MaxKey) = %v, want MaxKey", got)
	}
}

func TestLibraryEmpty(t *testing.T) {
	lib := NewLibrary(nil, testInterval)
	if lib.Len() != 0 {
		t.Fatalf("Len = %d", lib.Len())
	}
	if lib.Reset() != lib.MaxKey() {
		t.Errorf("empty library: Reset %v != MaxKey %v", lib.Reset(), lib.MaxKey())
	}
	if rm := lib.ExtractRootMotion(SampleKey{}, 1); !rm.IsIdentity() {
		t.Errorf("empty library root motion = %+v", rm)
	}
	if p := lib.Pose(SampleKey{}); len(p.Bones) != 0 {
		t.Errorf("empty library pose has %d bones", len(p.Bones))
	}
}

func TestNewLibraryDropsUnusableClips(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary([]anim.Clip{nil, clips[0], nil}, 0)
	if lib.Len() != 1 {
		t.Errorf("Len = %d, want 1", lib.Len())
	}
	if lib.Interval() != DefaultSamplingInterval {
		t.Errorf("Interval = %f, want default", lib.Interval())
	}
}

func TestLibraryKeyFor(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)

	tests := []struct {
		name    string
		time    float32
		wantIdx int
	}{
		{"negative", -1, 0},
		{"on sample", 0.5, 10},
		{"between samples", 0.123, 2},
		{"past end", 5, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := lib.KeyFor(0, tt.time)
			if k.KeyIndex != tt.wantIdx {
				t.Errorf("KeyFor(%f).KeyIndex = %d, want %d", tt.time, k.KeyIndex, tt.wantIdx)
			}
			if !approxEqual(k.Time, lib.KeyTime(0, k.KeyIndex), 1e-5) {
				t.Errorf("KeyFor(%f).Time = %f does not match its index", tt.time, k.Time)
			}
		})
	}
}

func TestLibraryAdvance(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)

	k := lib.Advance(SampleKey{ClipIndex: 1, Time: 0.5, KeyIndex: 10}, 0.26)
	if k.ClipIndex != 1 || !approxEqual(k.Time, 0.76, 1e-5) || k.KeyIndex != 15 {
		t.Errorf("Advance = %v", k)
	}

	past := lib.Advance(SampleKey{ClipIndex: 0, Time: 1.9, KeyIndex: 38}, 1)
	if past.KeyIndex != 40 {
		t.Errorf("Advance past end KeyIndex = %d, want 40", past.KeyIndex)
	}
	if rm := lib.ExtractRootMotion(past, 0.1); !rm.IsIdentity() {
		t.Errorf("root motion past end = %+v, want identity", rm)
	}
	if p := lib.Pose(past); len(p.Bones) == 0 {
		t.Error("pose past end should clamp to the last frame")
	}
}

func TestLibraryRootMotion(t *testing.T) {
	_, clips := walkLibrary(t)
	lib := NewLibrary(clips, testInterval)

	rm := lib.ExtractRootMotion(lib.KeyAt(0, 4), 0.2)
	want := math.Vec3{Y: 30}
	if !rm.Translation.NearlyEqual(want, 1e-2) {
		t.Errorf("forward clip root motion = %v, want %v", rm.Translation, want)
	}
	rm = lib.ExtractRootMotion(lib.KeyAt(1, 4), 0.2)
	want = math.Vec3{X: 30}
	if !rm.Translation.NearlyEqual(want, 1e-2) {
		t.Errorf("right clip root motion = %v, want %v", rm.Translation, want)
	}
}

func TestSampleKeyOrdering(t *testing.T) {
	a := SampleKey{ClipIndex: 0, Time: 1.95}
	b := SampleKey{ClipIndex: 1, Time: 0}
	c := SampleKey{ClipIndex: 1, Time: 0.00001}

	if !a.Less(b) || b.Less(a) {
		t.Error("clip index should dominate ordering")
	}
	if b.Less(c) || c.Less(b) {
		t.Error("times within tolerance should not order")
	}
	if !b.Equal(c) {
		t.Error("times within tolerance should be equal")
	}
}
