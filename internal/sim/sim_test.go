package sim

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Faultbox/motionmatch/internal/config"
	"github.com/Faultbox/motionmatch/internal/engine/debug"
	"github.com/Faultbox/motionmatch/pkg/math"
)

func testConfig(frames int, input ...config.InputConfig) *config.Config {
	cfg := config.Default()
	cfg.Simulation.Frames = frames
	cfg.Simulation.Input = input
	return cfg
}

func TestDefaultClips(t *testing.T) {
	skel, clips, err := DefaultClips()
	if err != nil {
		t.Fatalf("DefaultClips: %v", err)
	}
	if len(clips) != len(DefaultLocomotion()) {
		t.Fatalf("expected %d clips, got %d", len(DefaultLocomotion()), len(clips))
	}
	if skel.BoneIndex("foot_l") < 0 {
		t.Error("default skeleton has no foot_l")
	}
	for _, c := range clips {
		if c.Duration() <= 0 {
			t.Errorf("clip %s has no duration", c.Name())
		}
	}
}

const walkSet = `
clips:
  - name: walk
    duration: 1
    locomotion:
      velocity: [0, 50, 0]
      stride: 1
      swing: 0.5
`

const customSet = `
skeleton:
  - name: root
  - name: hips
    parent: root
clips:
  - name: sway
    duration: 1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadClips(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", walkSet)
	b := writeFile(t, dir, "b.yaml", walkSet)

	skel, clips, err := LoadClips([]string{a, b})
	if err != nil {
		t.Fatalf("LoadClips: %v", err)
	}
	if len(clips) != 2 {
		t.Errorf("expected 2 clips, got %d", len(clips))
	}
	if skel.NumBones() != 13 {
		t.Errorf("expected the humanoid skeleton, got %d bones", skel.NumBones())
	}

	custom := writeFile(t, dir, "custom.yaml", customSet)
	if _, _, err := LoadClips([]string{a, custom}); !errors.Is(err, ErrSkeletonMismatch) {
		t.Errorf("expected ErrSkeletonMismatch, got %v", err)
	}
	if _, _, err := LoadClips([]string{filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("expected error for a missing clip file")
	}
}

func TestRunWalksForward(t *testing.T) {
	s, err := New(testConfig(90, config.InputConfig{At: 0, Forward: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	res, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 90 {
		t.Errorf("expected 90 frames, got %d", res.Frames)
	}
	if res.Position.Y < 50 {
		t.Errorf("character only reached %v after 3s of forward input", res.Position)
	}
	if res.ClipFrames["walk_fwd"] == 0 {
		t.Errorf("walk_fwd never played: %v", res.ClipFrames)
	}
	if res.Searches < 2 {
		t.Errorf("expected repeated searches, got %d", res.Searches)
	}
}

func TestRunIdlesWithoutInput(t *testing.T) {
	s, err := New(testConfig(60))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ClipFrames["idle"] != 60 {
		t.Errorf("expected 60 idle frames, got %v", res.ClipFrames)
	}
	if res.Traveled > 1e-3 {
		t.Errorf("idle character traveled %f", res.Traveled)
	}
}

func TestRunSteersToDestination(t *testing.T) {
	cfg := testConfig(240)
	cfg.Simulation.Destination = []float32{0, 150}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := s.Character().Position.Distance(math.Vec3{Y: 150})
	res, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	end := res.Position.Distance(math.Vec3{Y: 150})
	if end > start/2 {
		t.Errorf("character did not approach the destination: %f -> %f", start, end)
	}
}

func TestRunWritesDebugPlot(t *testing.T) {
	cfg := testConfig(30, config.InputConfig{At: 0, Forward: 1})
	cfg.Debug.Enabled = true
	cfg.Debug.ScreenshotDir = t.TempDir()

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Screenshot == "" {
		t.Fatal("no debug plot written")
	}
	if !strings.Contains(filepath.Base(res.Screenshot), res.RunID[:8]) {
		t.Errorf("plot %s not named after run %s", res.Screenshot, res.RunID)
	}
	if _, err := os.Stat(res.Screenshot); err != nil {
		t.Errorf("debug plot missing: %v", err)
	}
}

func TestStepAppliesScript(t *testing.T) {
	s, err := New(testConfig(0,
		config.InputConfig{At: 0, Forward: 1},
		config.InputConfig{At: 0.5, Right: 1},
	))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 20; i++ {
		s.Step(1.0 / 30)
	}
	if f, r := s.Character().InputAxes(); f != 0 || r != 1 {
		t.Errorf("input after 0.66s = %f, %f; want 0, 1", f, r)
	}
}

func gridConfig() *config.Config {
	cfg := testConfig(0)
	cfg.Simulation.World = config.WorldConfig{
		Width:    10,
		Height:   10,
		CellSize: 50,
		Origin:   []float32{-250, -250},
		// Wall between the start and the target with a gap on the east side
		Obstacles: [][4]float32{{-250, 60, 140, 90}},
	}
	return cfg
}

func TestNewBuildsGrid(t *testing.T) {
	cfg := gridConfig()
	cfg.Simulation.Destination = []float32{0, 200}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g := s.Grid()
	if g == nil {
		t.Fatal("expected a grid")
	}
	if s.Character().Terrain == nil {
		t.Error("character should query the grid")
	}
	if g.IsWalkable(0, 75) {
		t.Error("obstacle cell should be blocked")
	}
	if !g.IsWalkable(200, 75) {
		t.Error("gap cell should be walkable")
	}

	c := s.Character()
	if !c.HasDestination {
		t.Fatal("expected a waypoint")
	}
	if c.DestY > 60 {
		t.Errorf("first waypoint (%v, %v) should be on the near side of the wall", c.DestX, c.DestY)
	}
}

func TestNewUnreachableDestination(t *testing.T) {
	cfg := gridConfig()
	cfg.Simulation.World.Obstacles = [][4]float32{{-250, 60, 249, 90}}
	cfg.Simulation.Destination = []float32{0, 200}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Character().HasDestination {
		t.Error("unreachable target should leave the character without a destination")
	}
}

func TestNewWithoutGrid(t *testing.T) {
	s, err := New(testConfig(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Grid() != nil || s.Character().Terrain != nil {
		t.Error("open ground should not build a grid")
	}
}

func TestDebugDrawsWorld(t *testing.T) {
	cfg := gridConfig()
	cfg.Simulation.Destination = []float32{0, 200}
	cfg.Debug.Enabled = true
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var gray, blue int
	for _, l := range s.lines.Lines() {
		switch l.Color {
		case debug.Gray:
			gray++
		case debug.Blue:
			blue++
		}
	}
	if gray != debug.BBoxWireframeVertexCount/2 {
		t.Errorf("expected %d obstacle edges, got %d", debug.BBoxWireframeVertexCount/2, gray)
	}
	if blue == 0 {
		t.Error("planned path not drawn")
	}
}

func TestRunIDs(t *testing.T) {
	a, err := New(testConfig(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(testConfig(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := uuid.Parse(a.ID()); err != nil {
		t.Errorf("run id %q is not a UUID: %v", a.ID(), err)
	}
	if a.ID() == b.ID() {
		t.Error("runs share an id")
	}

	res, err := a.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RunID != a.ID() {
		t.Errorf("Result.RunID = %q, want %q", res.RunID, a.ID())
	}
}
