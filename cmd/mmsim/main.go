// Package main is the entry point for the headless motion matching simulator.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/config"
	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/internal/metrics"
	"github.com/Faultbox/motionmatch/internal/sim"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.InitWithOptions(cfg.LoggerOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("=== Motion Matching Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulator failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// run executes one simulation. Deferred cleanup completes before it returns,
// so callers may exit right after.
func run(cfg *config.Config) error {
	if cfg.Metrics.Listen != "" {
		srv, err := metrics.Listen(cfg.Metrics.Listen)
		if err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	s, err := sim.New(cfg)
	if err != nil {
		return fmt.Errorf("creating simulator: %w", err)
	}
	defer s.Close()

	res, err := s.Run()
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	names := make([]string, 0, len(res.ClipFrames))
	for name := range res.ClipFrames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Info("clip usage",
			zap.String("clip", name),
			zap.Int("frames", res.ClipFrames[name]))
	}
	if res.Screenshot != "" {
		logger.Info("debug plot written", zap.String("path", res.Screenshot))
	}
	return nil
}
