package config

import (
	"flag"
	"strings"
)

var (
	flagConfig         = flag.String("config", "", "Path to config file")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging and debug lines")
	flagFrames         = flag.Int("frames", 0, "Number of frames to simulate")
	flagClips          = flag.String("clips", "", "Comma-separated clip set files")
	flagExcludeCurrent = flag.Bool("exclude-current", false, "Never reselect the currently playing key")
	flagScreenshotDir  = flag.String("screenshot-dir", "", "Write a PNG of the final debug lines into this directory")
	flagMetricsAddr    = flag.String("metrics-addr", "", "Serve Prometheus metrics on host:port")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Enabled = true
	}
	if *flagFrames > 0 {
		cfg.Simulation.Frames = *flagFrames
	}
	if *flagClips != "" {
		var files []string
		for _, f := range strings.Split(*flagClips, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
		cfg.Simulation.ClipFiles = files
	}
	if *flagExcludeCurrent {
		cfg.Matching.ExcludeCurrentKey = true
	}
	if *flagScreenshotDir != "" {
		cfg.Debug.ScreenshotDir = *flagScreenshotDir
	}
	if *flagMetricsAddr != "" {
		cfg.Metrics.Listen = *flagMetricsAddr
	}
}
