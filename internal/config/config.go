// Package config handles simulator configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/motionmatch/internal/engine/character"
	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/internal/motion"
	"github.com/Faultbox/motionmatch/pkg/anim"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulator settings.
type Config struct {
	Matching   MatchingConfig   `yaml:"matching"`
	Debug      DebugConfig      `yaml:"debug"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// MatchingConfig holds motion matching tunables.
type MatchingConfig struct {
	SamplingInterval     float32  `yaml:"sampling_interval"` // Seconds between sample keys
	TrajectoryWeight     float32  `yaml:"trajectory_weight"`
	PoseWeight           float32  `yaml:"pose_weight"`
	OrientationWeight    float32  `yaml:"orientation_weight"`
	UpdateRate           float32  `yaml:"update_rate"`       // Seconds between searches
	TrajectoryLength     float32  `yaml:"trajectory_length"` // Desired displacement per step
	StepsToMatch         int      `yaml:"steps_to_match"`
	BlendWeightDecrement float32  `yaml:"blend_weight_decrement"`
	ExcludeCurrentKey    bool     `yaml:"exclude_current_key"`
	TrackedJoints        []string `yaml:"tracked_joints"`
}

// DebugConfig holds debug drawing settings.
type DebugConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Rate          float32 `yaml:"rate"`           // Seconds between debug ticks
	LinesLifetime float32 `yaml:"lines_lifetime"` // Seconds a debug line stays visible
	ScreenshotDir string  `yaml:"screenshot_dir"` // Optional directory for a PNG of the final debug lines
}

// SimulationConfig holds the headless simulation run.
type SimulationConfig struct {
	Frames      int           `yaml:"frames"`
	FrameRate   float32       `yaml:"frame_rate"`
	ClipFiles   []string      `yaml:"clip_files"`  // YAML clip sets; empty uses the built-in library
	Input       []InputConfig `yaml:"input"`       // Timed input changes
	Destination []float32     `yaml:"destination"` // Optional [x, y] click-to-move target
	World       WorldConfig   `yaml:"world"`
}

// WorldConfig describes an optional walkability grid. A zero width or
// height leaves the ground open everywhere.
type WorldConfig struct {
	Width     int          `yaml:"width"`     // Cells along X
	Height    int          `yaml:"height"`    // Cells along Y
	CellSize  float32      `yaml:"cell_size"` // World units per cell
	Origin    []float32    `yaml:"origin"`    // [x, y] of the grid's minimum corner
	Obstacles [][4]float32 `yaml:"obstacles"` // Blocked [x0, y0, x1, y1] rectangles
}

// Enabled reports whether a grid should be built.
func (w WorldConfig) Enabled() bool {
	return w.Width > 0 && w.Height > 0
}

// InputConfig sets the movement axes from time At onwards.
type InputConfig struct {
	At      float32 `yaml:"at"`
	Forward float32 `yaml:"forward"`
	Right   float32 `yaml:"right"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // File format: console or json
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // host:port for /metrics; empty disables the endpoint
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			SamplingInterval:     motion.DefaultSamplingInterval,
			TrajectoryWeight:     1,
			PoseWeight:           1,
			OrientationWeight:    1,
			UpdateRate:           motion.DefaultUpdateRate,
			TrajectoryLength:     motion.DefaultTrajectoryLength,
			StepsToMatch:         1,
			BlendWeightDecrement: motion.DefaultBlendWeightDecrement,
			ExcludeCurrentKey:    false,
			TrackedJoints:        append([]string(nil), anim.DefaultTrackedJoints...),
		},
		Debug: DebugConfig{
			Enabled:       false,
			Rate:          motion.DefaultDebugRate,
			LinesLifetime: motion.DefaultDebugLinesLifetime,
		},
		Simulation: SimulationConfig{
			Frames:    300,
			FrameRate: 30,
			Input: []InputConfig{
				{At: 0, Forward: 1},
				{At: 4, Right: 1},
				{At: 7, Forward: -1},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}

// Validate rejects settings the simulator cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Matching.SamplingInterval <= 0:
		return fmt.Errorf("%w: matching.sampling_interval must be positive, got %v", ErrInvalid, c.Matching.SamplingInterval)
	case c.Matching.UpdateRate <= 0:
		return fmt.Errorf("%w: matching.update_rate must be positive, got %v", ErrInvalid, c.Matching.UpdateRate)
	case c.Simulation.FrameRate <= 0:
		return fmt.Errorf("%w: simulation.frame_rate must be positive, got %v", ErrInvalid, c.Simulation.FrameRate)
	case c.Simulation.Frames < 0:
		return fmt.Errorf("%w: simulation.frames must not be negative, got %d", ErrInvalid, c.Simulation.Frames)
	case len(c.Simulation.Destination) != 0 && len(c.Simulation.Destination) != 2:
		return fmt.Errorf("%w: simulation.destination needs [x, y], got %d values", ErrInvalid, len(c.Simulation.Destination))
	case c.Simulation.World.Enabled() && c.Simulation.World.CellSize <= 0:
		return fmt.Errorf("%w: simulation.world.cell_size must be positive, got %v", ErrInvalid, c.Simulation.World.CellSize)
	case len(c.Simulation.World.Origin) != 0 && len(c.Simulation.World.Origin) != 2:
		return fmt.Errorf("%w: simulation.world.origin needs [x, y], got %d values", ErrInvalid, len(c.Simulation.World.Origin))
	case c.Logging.Format != "" && c.Logging.Format != "console" && c.Logging.Format != "json":
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalid, c.Logging.Format)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	return nil
}

// LoggerOptions converts the logging section into logger options.
// Console output goes to stderr.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.Options{Level: c.Logging.Level, Console: os.Stderr}
	if c.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(c.Logging.LogFile)
		opts.File.JSON = c.Logging.Format == "json"
	}
	return opts
}

// MotionSettings converts the matching and debug sections into sanitized
// node settings.
func (c *Config) MotionSettings() motion.Settings {
	m := c.Matching
	s := motion.Settings{
		SamplingInterval: m.SamplingInterval,
		Weights: motion.Weights{
			Trajectory:  m.TrajectoryWeight,
			Pose:        m.PoseWeight,
			Orientation: m.OrientationWeight,
		},
		UpdateRate:           m.UpdateRate,
		TrajectoryLength:     m.TrajectoryLength,
		StepsToMatch:         m.StepsToMatch,
		BlendWeightDecrement: m.BlendWeightDecrement,
		ExcludeCurrentKey:    m.ExcludeCurrentKey,
		TrackedJoints:        append([]string(nil), m.TrackedJoints...),
		DebugMode:            c.Debug.Enabled,
		DebugRate:            c.Debug.Rate,
		DebugLinesLifetime:   c.Debug.LinesLifetime,
	}
	return s.Sanitized()
}

// InputEntries converts the input section into a character script.
func (c *Config) InputEntries() []character.InputEntry {
	entries := make([]character.InputEntry, 0, len(c.Simulation.Input))
	for _, in := range c.Simulation.Input {
		entries = append(entries, character.InputEntry{At: in.At, Forward: in.Forward, Right: in.Right})
	}
	return entries
}

// FrameDelta returns the simulated seconds per frame.
func (c *Config) FrameDelta() float32 {
	return 1 / c.Simulation.FrameRate
}
