package motion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/pkg/anim"
)

// Default node settings.
const (
	DefaultUpdateRate           = 0.2
	DefaultTrajectoryLength     = 10.0
	DefaultBlendWeightDecrement = 0.01
	DefaultDebugRate            = 0.2
	DefaultDebugLinesLifetime   = 3.0
)

// Settings are the tunables of a motion matching node.
type Settings struct {
	SamplingInterval     float32
	Weights              Weights
	UpdateRate           float32
	TrajectoryLength     float32
	StepsToMatch         int
	BlendWeightDecrement float32
	ExcludeCurrentKey    bool
	TrackedJoints        []string

	DebugMode          bool
	DebugRate          float32
	DebugLinesLifetime float32
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		SamplingInterval:     DefaultSamplingInterval,
		Weights:              Weights{Trajectory: 1, Pose: 1, Orientation: 1},
		UpdateRate:           DefaultUpdateRate,
		TrajectoryLength:     DefaultTrajectoryLength,
		StepsToMatch:         1,
		BlendWeightDecrement: DefaultBlendWeightDecrement,
		TrackedJoints:        append([]string(nil), anim.DefaultTrackedJoints...),
		DebugRate:            DefaultDebugRate,
		DebugLinesLifetime:   DefaultDebugLinesLifetime,
	}
}

// EvaluationWindow is the time span a candidate's root motion is measured over.
func (s Settings) EvaluationWindow() float32 {
	return s.UpdateRate * float32(s.StepsToMatch)
}

// Sanitized replaces unusable values with defaults and drops empty joint names.
func (s Settings) Sanitized() Settings {
	fix := func(name string, v *float32, def float32) {
		if *v <= 0 {
			logger.Warn("invalid motion setting, using default",
				zap.String("setting", name),
				zap.Float32("value", *v),
				zap.Float32("default", def))
			*v = def
		}
	}
	fix("sampling_interval", &s.SamplingInterval, DefaultSamplingInterval)
	fix("update_rate", &s.UpdateRate, DefaultUpdateRate)
	fix("blend_weight_decrement", &s.BlendWeightDecrement, DefaultBlendWeightDecrement)
	if s.DebugRate < 0 {
		s.DebugRate = 0
	}
	if s.StepsToMatch < 1 {
		s.StepsToMatch = 1
	}

	joints := make([]string, 0, len(s.TrackedJoints))
	for _, j := range s.TrackedJoints {
		if j != "" {
			joints = append(joints, j)
		}
	}
	s.TrackedJoints = joints
	return s
}
