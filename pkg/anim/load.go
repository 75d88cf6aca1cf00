package anim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// ErrNoClips is returned for clip files that define no clips.
var ErrNoClips = errors.New("clip set defines no clips")

// ClipSet is a skeleton and the clips authored for it.
type ClipSet struct {
	Skeleton *Hierarchy
	Clips    []*Sequence
}

// AsClips returns the sequences as the Clip interface, preserving order.
func (cs *ClipSet) AsClips() []Clip {
	clips := make([]Clip, len(cs.Clips))
	for i, c := range cs.Clips {
		clips[i] = c
	}
	return clips
}

type clipSetFile struct {
	Skeleton []boneFile `yaml:"skeleton"`
	Clips    []clipFile `yaml:"clips"`
}

type boneFile struct {
	Name        string      `yaml:"name"`
	Parent      string      `yaml:"parent"`
	Translation [3]float32  `yaml:"translation"`
	Rotation    *[4]float32 `yaml:"rotation"`
}

type clipFile struct {
	Name       string          `yaml:"name"`
	Duration   float32         `yaml:"duration"`
	Locomotion *locomotionFile `yaml:"locomotion"`
	Tracks     []trackFile     `yaml:"tracks"`
	Curves     []curveFile     `yaml:"curves"`
}

type locomotionFile struct {
	Velocity  [3]float32 `yaml:"velocity"`
	TurnRate  float32    `yaml:"turn_rate"`
	Stride    float32    `yaml:"stride"`
	Swing     float32    `yaml:"swing"`
	FrameRate float32    `yaml:"frame_rate"`
}

type trackFile struct {
	Bone string    `yaml:"bone"`
	Keys []keyFile `yaml:"keys"`
}

type keyFile struct {
	Time        float32     `yaml:"time"`
	Translation [3]float32  `yaml:"translation"`
	Rotation    *[4]float32 `yaml:"rotation"`
	Scale       *[3]float32 `yaml:"scale"`
}

type curveFile struct {
	Name string `yaml:"name"`
	Keys []struct {
		Time  float32 `yaml:"time"`
		Value float32 `yaml:"value"`
	} `yaml:"keys"`
}

// LoadClipSet reads a YAML clip set from disk.
func LoadClipSet(path string) (*ClipSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cs, err := ParseClipSet(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cs, nil
}

// ParseClipSet decodes a YAML clip set. A missing skeleton section selects
// the Humanoid hierarchy.
func ParseClipSet(data []byte) (*ClipSet, error) {
	var f clipSetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Clips) == 0 {
		return nil, ErrNoClips
	}

	skeleton := Humanoid()
	if len(f.Skeleton) > 0 {
		var err error
		if skeleton, err = buildSkeleton(f.Skeleton); err != nil {
			return nil, err
		}
	}

	cs := &ClipSet{Skeleton: skeleton}
	for _, cf := range f.Clips {
		seq, err := buildClip(skeleton, cf)
		if err != nil {
			return nil, err
		}
		cs.Clips = append(cs.Clips, seq)
	}
	return cs, nil
}

func buildSkeleton(bones []boneFile) (*Hierarchy, error) {
	index := make(map[string]int, len(bones))
	out := make([]Bone, len(bones))
	for i, bf := range bones {
		parent := NoBone
		if bf.Parent != "" {
			p, ok := index[bf.Parent]
			if !ok {
				return nil, fmt.Errorf("bone %q: %w: parent %q", bf.Name, ErrInvalidParent, bf.Parent)
			}
			parent = p
		}
		out[i] = Bone{
			Name:      bf.Name,
			Parent:    parent,
			Reference: math.NewTransform(vec3(bf.Translation), quat(bf.Rotation)),
		}
		index[bf.Name] = i
	}
	return NewHierarchy(out)
}

func buildClip(skeleton *Hierarchy, cf clipFile) (*Sequence, error) {
	var (
		seq *Sequence
		err error
	)
	if cf.Locomotion != nil {
		seq, err = Locomotion(skeleton, LocomotionParams{
			Name:      cf.Name,
			Duration:  cf.Duration,
			Velocity:  vec3(cf.Locomotion.Velocity),
			TurnRate:  cf.Locomotion.TurnRate,
			Stride:    cf.Locomotion.Stride,
			Swing:     cf.Locomotion.Swing,
			FrameRate: cf.Locomotion.FrameRate,
		})
	} else {
		seq, err = NewSequence(cf.Name, skeleton, cf.Duration)
	}
	if err != nil {
		return nil, err
	}

	for _, tf := range cf.Tracks {
		bone := skeleton.BoneIndex(tf.Bone)
		if bone == NoBone {
			return nil, fmt.Errorf("clip %q: %w: %q", cf.Name, ErrUnknownBone, tf.Bone)
		}
		keys := make([]Keyframe, len(tf.Keys))
		for i, kf := range tf.Keys {
			tr := math.NewTransform(vec3(kf.Translation), quat(kf.Rotation))
			if kf.Scale != nil {
				tr.Scale = vec3(*kf.Scale)
			}
			keys[i] = Keyframe{Time: kf.Time, Transform: tr}
		}
		if err := seq.SetTrack(bone, keys); err != nil {
			return nil, err
		}
	}

	for _, c := range cf.Curves {
		keys := make([]CurveKey, len(c.Keys))
		for i, k := range c.Keys {
			keys[i] = CurveKey{Time: k.Time, Value: k.Value}
		}
		if err := seq.SetCurve(c.Name, keys); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func quat(q *[4]float32) math.Quat {
	if q == nil {
		return math.QuatIdentity()
	}
	return math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}.Normalize()
}
