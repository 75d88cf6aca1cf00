// cliptool is a CLI utility for inspecting motion matching clip sets.
package main

import (
	"flag"
	"fmt"
	gomath "math"
	"os"
	"strings"

	"github.com/Faultbox/motionmatch/internal/config"
	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/internal/motion"
	"github.com/Faultbox/motionmatch/internal/sim"
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "keys":
		cmdKeys(args)
	case "match":
		cmdMatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cliptool - motion matching clip set utility

Usage:
  cliptool <command> [options] [clips.yaml ...]

Commands:
  info  [files]                         Show skeleton and clips
  keys  [-interval s] [files]           Show the sample key layout per clip
  match [-forward f] [-right r] [-config file] [-v] [files]
                                        Run one search from the first key

Without files the built-in locomotion library is used.

Examples:
  cliptool info walk.yaml
  cliptool keys -interval 0.1
  cliptool match -forward 0 -right 1`)
}

func loadClips(files []string) (*anim.Hierarchy, []anim.Clip) {
	var (
		skel  *anim.Hierarchy
		clips []anim.Clip
		err   error
	)
	if len(files) > 0 {
		skel, clips, err = sim.LoadClips(files)
	} else {
		skel, clips, err = sim.DefaultClips()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return skel, clips
}

func cmdInfo(args []string) {
	skel, clips := loadClips(args)

	fmt.Printf("Bones: %d\n", skel.NumBones())
	for i, name := range skel.Names() {
		depth := len(anim.Chain(skel, i)) - 1
		fmt.Printf("  %s%s\n", strings.Repeat("  ", depth), name)
	}
	fmt.Println()
	fmt.Printf("Clips: %d\n", len(clips))
	for _, c := range clips {
		rm := c.ExtractRootMotion(0, c.Duration())
		fmt.Printf("  %-14s %5.2fs  root %7.1f %7.1f  turn %6.1f°\n",
			c.Name(), c.Duration(), rm.Translation.X, rm.Translation.Y, rm.Rotation.Yaw()*180/gomath.Pi)
	}
}

func cmdKeys(args []string) {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)
	interval := fs.Float64("interval", motion.DefaultSamplingInterval, "Sampling interval in seconds")
	fs.Parse(args)

	_, clips := loadClips(fs.Args())
	lib := motion.NewLibrary(clips, float32(*interval))

	total := 0
	for i := 0; i < lib.Len(); i++ {
		last := lib.KeyAt(i, lib.LastKeyIndex(i))
		fmt.Printf("%-14s keys %4d  last %v\n", lib.Clip(i).Name(), lib.NumKeys(i), last)
		total += lib.NumKeys(i)
	}
	fmt.Fprintf(os.Stderr, "\n(%d keys, scan bound %v)\n", total, lib.MaxKey())
}

func cmdMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	forward := fs.Float64("forward", 1, "Forward input axis")
	right := fs.Float64("right", 0, "Right input axis")
	cfgPath := fs.String("config", "", "Take matching settings from a simulator config")
	verbose := fs.Bool("v", false, "Log debug output to stderr")
	fs.Parse(args)

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	settings := motion.DefaultSettings()
	if *cfgPath != "" {
		cfg, err := config.LoadFile(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings = cfg.MotionSettings()
	}

	skel, clips := loadClips(fs.Args())
	lib := motion.NewLibrary(clips, settings.SamplingInterval)
	cache := motion.BuildBoneCache(lib, skel, settings.TrackedJoints)
	eval := motion.NewEvaluator(lib, cache, settings.Weights)
	matcher := motion.NewMatcher(lib, eval, settings.StepsToMatch, settings.ExcludeCurrentKey)

	q := motion.Query{
		Facing:  math.QuatIdentity(),
		Desired: motion.DesiredTrajectory(math.QuatIdentity(), float32(*forward), float32(*right), settings.TrajectoryLength, settings.StepsToMatch),
		Current: lib.Reset(),
		Window:  settings.EvaluationWindow(),
	}
	best, stats := matcher.Search(q)
	if best.Total == motion.RejectCost {
		fmt.Fprintln(os.Stderr, "No eligible key")
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Desired:     %.2f %.2f %.2f\n", q.Desired.X, q.Desired.Y, q.Desired.Z)
	fmt.Printf("Best:        %s (%v)\n", lib.Clip(best.Key.ClipIndex).Name(), best.Key)
	fmt.Printf("Total:       %.4f\n", best.Total)
	fmt.Printf("Trajectory:  %.4f\n", best.Trajectory)
	fmt.Printf("Pose:        %.4f\n", best.Pose)
	fmt.Printf("Orientation: %.4f\n", best.Orientation)
	fmt.Fprintf(os.Stderr, "\n(%d keys scored, %d skipped)\n", stats.Visited, stats.Skipped)
}
