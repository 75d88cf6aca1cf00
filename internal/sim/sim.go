// Package sim runs a motion matching node against a scripted character
// without a renderer.
package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/config"
	"github.com/Faultbox/motionmatch/internal/engine/character"
	"github.com/Faultbox/motionmatch/internal/engine/debug"
	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/internal/motion"
	"github.com/Faultbox/motionmatch/internal/world"
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// screenshotSize is the edge length of the debug line plot in pixels.
const screenshotSize = 512

// obstacleHeight is the height of obstacle wireframes.
const obstacleHeight = 100

// Result summarizes a finished run.
type Result struct {
	RunID      string
	Frames     int
	Elapsed    float32 // Simulated seconds
	Position   math.Vec3
	Yaw        float32
	Traveled   float32
	Searches   int
	Switches   int
	ClipFrames map[string]int // Frames spent playing each clip
	Screenshot string         // Path of the debug plot, if written
}

// Simulator drives a motion matching node with a scripted character.
type Simulator struct {
	id       string
	cfg      *config.Config
	log      *zap.Logger
	skeleton *anim.Hierarchy
	clips    []anim.Clip

	node   *motion.Node
	char   *character.Character
	script *character.InputScript
	lines  *debug.LineRecorder

	grid     *world.Grid
	follower *world.PathFollower // Nil without a grid

	frame      int
	sector     int
	clipFrames map[string]int
}

// New loads clips and wires the node, character and debug recorder.
func New(cfg *config.Config) (*Simulator, error) {
	id := uuid.NewString()
	s := &Simulator{
		id:         id,
		cfg:        cfg,
		log:        logger.Named("sim").With(zap.String("run", id)),
		sector:     -1,
		clipFrames: make(map[string]int),
	}

	var err error
	if len(cfg.Simulation.ClipFiles) > 0 {
		s.skeleton, s.clips, err = LoadClips(cfg.Simulation.ClipFiles)
	} else {
		s.skeleton, s.clips, err = DefaultClips()
	}
	if err != nil {
		return nil, fmt.Errorf("loading clips: %w", err)
	}

	s.char = character.New(math.Vec3{}, 0)
	s.lines = &debug.LineRecorder{}
	if wc := cfg.Simulation.World; wc.Enabled() {
		s.grid = buildGrid(wc)
		s.char.Terrain = s.grid
		s.follower = world.NewPathFollower(s.grid, s.char)
	}
	var path [][2]int
	if d := cfg.Simulation.Destination; len(d) == 2 {
		path = s.setDestination(d[0], d[1])
	}
	if cfg.Debug.Enabled {
		s.drawWorld(path)
	}
	// A destination replaces the input script
	entries := cfg.InputEntries()
	if len(cfg.Simulation.Destination) == 2 {
		entries = nil
	}
	s.script = character.NewInputScript(entries)

	start := time.Now()
	s.node = motion.NewNode(cfg.MotionSettings(), s.clips)
	s.node.Initialize(motion.InitContext{
		Skeleton: s.skeleton,
		Intent:   s.char,
		Movement: s.char,
		Debug:    s.lines,
	})

	s.log.Info("simulator initialized",
		zap.Int("clips", s.node.Library().Len()),
		zap.Int("bones", s.skeleton.NumBones()),
		zap.Duration("setup", time.Since(start)))
	return s, nil
}

func buildGrid(wc config.WorldConfig) *world.Grid {
	g := world.NewGrid(wc.Width, wc.Height, wc.CellSize)
	if len(wc.Origin) == 2 {
		g.Origin = math.Vec3{X: wc.Origin[0], Y: wc.Origin[1]}
	}
	for _, o := range wc.Obstacles {
		g.BlockRect(o[0], o[1], o[2], o[3])
	}
	return g
}

// setDestination plans a grid path when a grid is present and heads
// straight for the target otherwise. It returns the planned cells.
func (s *Simulator) setDestination(x, y float32) [][2]int {
	if s.follower == nil {
		s.char.SetDestination(x, y)
		return nil
	}
	path := s.follower.MoveToWorld(x, y)
	if path == nil {
		s.log.Warn("destination unreachable",
			zap.Float32("x", x),
			zap.Float32("y", y))
		return nil
	}
	s.log.Info("path planned",
		zap.Int("cells", len(path)),
		zap.Float32("x", x),
		zap.Float32("y", y))
	return path
}

// drawWorld records obstacle boxes and the planned path for the whole run.
func (s *Simulator) drawWorld(path [][2]int) {
	if s.grid == nil {
		return
	}
	life := float32(s.cfg.Simulation.Frames)*s.cfg.FrameDelta() + s.cfg.Debug.LinesLifetime

	for _, o := range s.cfg.Simulation.World.Obstacles {
		lo := math.Vec3{X: o[0], Y: o[1], Z: s.grid.Origin.Z}
		hi := math.Vec3{X: o[2], Y: o[3], Z: s.grid.Origin.Z + obstacleHeight}
		verts := debug.GenerateBBoxWireframeVertices(lo, hi)
		for i := 0; i+1 < len(verts); i += 2 {
			s.lines.DrawLine(verts[i], verts[i+1], debug.Gray, life)
		}
	}
	for i := 1; i < len(path); i++ {
		from := s.grid.CellToWorld(path[i-1][0], path[i-1][1])
		to := s.grid.CellToWorld(path[i][0], path[i][1])
		s.lines.DrawLine(from, to, debug.Blue, life)
	}
}

// Step advances the simulation by one frame of dt seconds and returns the
// node's output pose.
func (s *Simulator) Step(dt float32) anim.Pose {
	if s.follower != nil {
		s.follower.Update()
	}
	if s.char.HasDestination {
		s.char.Steer()
	} else if s.script.Advance(s.char, dt) {
		f, r := s.char.InputAxes()
		s.log.Debug("input changed",
			zap.Float32("t", s.script.Time()),
			zap.Float32("forward", f),
			zap.Float32("right", r))
	}

	searches := s.node.Stats().Searches
	s.node.Update(dt)
	pose := s.node.Evaluate()
	s.lines.Tick(dt)

	if st := s.node.Stats(); st.Searches != searches {
		s.logSearch(st)
	}
	if clip := s.node.Library().Clip(s.node.Playing().ClipIndex); clip != nil {
		s.clipFrames[clip.Name()]++
	}
	s.frame++
	return pose
}

func (s *Simulator) logSearch(st motion.NodeStats) {
	name := "none"
	if clip := s.node.Library().Clip(st.Last.Key.ClipIndex); clip != nil {
		name = clip.Name()
	}
	sector := character.CompassSector(s.char.Yaw, s.sector)
	s.sector = sector
	s.log.Debug("motion match",
		zap.Int("frame", s.frame),
		zap.String("clip", name),
		zap.Stringer("key", st.Last.Key),
		zap.Float32("cost", st.Last.Total),
		zap.Float32("trajectory", st.Last.Trajectory),
		zap.Float32("pose", st.Last.Pose),
		zap.Float32("orientation", st.Last.Orientation),
		zap.String("heading", character.SectorNames[sector]))
}

// Run simulates the configured number of frames.
func (s *Simulator) Run() (Result, error) {
	dt := s.cfg.FrameDelta()
	s.log.Info("starting simulation",
		zap.Int("frames", s.cfg.Simulation.Frames),
		zap.Float32("frameRate", s.cfg.Simulation.FrameRate))

	for i := 0; i < s.cfg.Simulation.Frames; i++ {
		s.Step(dt)
	}

	st := s.node.Stats()
	res := Result{
		RunID:      s.id,
		Frames:     s.frame,
		Elapsed:    float32(s.frame) * dt,
		Position:   s.char.Position,
		Yaw:        s.char.Yaw,
		Traveled:   s.char.Traveled,
		Searches:   st.Searches,
		Switches:   st.Switches,
		ClipFrames: s.clipFrames,
	}

	if dir := s.cfg.Debug.ScreenshotDir; dir != "" && s.cfg.Debug.Enabled {
		path, err := debug.NewScreenshotCapture(dir, "mmsim-"+s.id[:8]).CaptureLines(s.lines.Lines(), screenshotSize)
		if err != nil {
			return res, fmt.Errorf("writing debug plot: %w", err)
		}
		res.Screenshot = path
	}

	s.log.Info("simulation finished",
		zap.Int("frames", res.Frames),
		zap.Float32("x", res.Position.X),
		zap.Float32("y", res.Position.Y),
		zap.Float32("traveled", res.Traveled),
		zap.Int("searches", res.Searches),
		zap.Int("switches", res.Switches))
	return res, nil
}

// ID returns the run identifier attached to every log entry of this run.
func (s *Simulator) ID() string {
	return s.id
}

// Character returns the simulated character.
func (s *Simulator) Character() *character.Character {
	return s.char
}

// Grid returns the walkability grid, or nil when the ground is open.
func (s *Simulator) Grid() *world.Grid {
	return s.grid
}

// Node returns the motion matching node.
func (s *Simulator) Node() *motion.Node {
	return s.node
}

// Close releases simulator resources.
func (s *Simulator) Close() {
	s.log.Info("closing simulator",
		zap.Int("frames", s.frame),
		zap.Int("debugLines", s.lines.Total()))
}
