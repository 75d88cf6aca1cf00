package motion

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/engine/debug"
	"github.com/Faultbox/motionmatch/internal/logger"
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// debugLineScale stretches debug trajectories so they stay visible next to
// the character.
const debugLineScale = 10

// NodeStats reports search activity of a Node.
type NodeStats struct {
	Searches int       // Searches run since Initialize
	Switches int       // Searches that changed the playing selection
	Last     Candidate // Result of the most recent search
	LastScan ScanStats
}

// Node is a motion matching animation node. It periodically searches its
// clip library for the key whose future root motion and pose best match the
// character's intent, then plays and blends towards it.
type Node struct {
	settings Settings
	clips    []anim.Clip
	log      *zap.Logger

	lib        *Library
	cache      *BoneCache
	matcher    *Matcher
	controller *Controller
	throttle   Throttle

	intent   IntentSource
	movement MovementSink
	debug    DebugSink

	lastDelta     float32
	pendingSearch bool
	started       bool
	stats         NodeStats
}

var _ AnimNode = (*Node)(nil)

// NewNode creates a node over clips. Call Initialize before use.
func NewNode(settings Settings, clips []anim.Clip) *Node {
	return &Node{
		settings: settings,
		clips:    clips,
		log:      logger.Named("motion"),
		debug:    NopDebugSink{},
	}
}

// Initialize builds the library and bone cache and binds collaborators.
// Missing collaborators are logged and the node degrades.
func (n *Node) Initialize(ctx InitContext) {
	n.settings = n.settings.Sanitized()
	s := n.settings

	n.lib = NewLibrary(n.clips, s.SamplingInterval)
	if n.lib.Len() == 0 {
		n.log.Warn("motion library is empty, node will output an empty pose")
	}

	n.cache = nil
	if ctx.Skeleton == nil {
		n.log.Warn("no skeleton bound, pose cost disabled")
	} else {
		n.cache = BuildBoneCache(n.lib, ctx.Skeleton, s.TrackedJoints)
		n.log.Debug("bone cache built",
			zap.Int("clips", n.lib.Len()),
			zap.Int("joints", n.cache.NumJoints()))
	}

	eval := NewEvaluator(n.lib, n.cache, s.Weights)
	n.matcher = NewMatcher(n.lib, eval, s.StepsToMatch, s.ExcludeCurrentKey)
	n.controller = NewController(n.lib, s.BlendWeightDecrement)
	n.throttle = Throttle{DebugRate: s.DebugRate, UpdateRate: s.UpdateRate}

	n.intent = ctx.Intent
	if n.intent == nil {
		n.log.Warn("no intent source bound, using fallback trajectory")
	}
	n.movement = ctx.Movement
	if n.movement == nil {
		n.log.Warn("no movement sink bound, root motion is dropped")
	}
	n.debug = ctx.Debug
	if n.debug == nil {
		n.debug = NopDebugSink{}
	}

	n.lastDelta = 0
	n.pendingSearch = false
	n.started = false
	n.stats = NodeStats{}
}

// Update advances the node's timers by dt seconds.
func (n *Node) Update(dt float32) {
	if n.controller == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	n.lastDelta = dt
	if n.throttle.Advance(n.controller.State(), dt) {
		n.pendingSearch = true
	}
}

// Evaluate runs a due search, emits this tick's root motion and returns the
// blended output pose.
func (n *Node) Evaluate() anim.Pose {
	if n.controller == nil || n.lib.Len() == 0 {
		return anim.Pose{}
	}

	if !n.started {
		if c, ok := n.search(); ok {
			n.controller.Jump(c.Key)
		} else {
			n.controller.Jump(n.lib.Reset())
		}
		n.started = true
	} else if n.pendingSearch {
		if c, ok := n.search(); ok && !c.Key.Equal(n.controller.Playing()) {
			n.controller.Switch(c.Key)
			n.stats.Switches++
			switchTotal.Inc()
		}
	}
	n.pendingSearch = false

	if n.movement != nil && n.lastDelta > 0 {
		n.movement.ApplyRootMotion(n.controller.RootMotion(n.lastDelta))
	}
	pose := n.controller.Pose()
	n.controller.Step(n.lastDelta)
	return pose
}

// search builds a query from the intent source and scans the library.
// ok is false when no finite candidate exists.
func (n *Node) search() (Candidate, bool) {
	s := n.settings
	q := Query{
		Facing:  math.QuatIdentity(),
		Current: n.controller.Playing(),
		Window:  s.EvaluationWindow(),
	}

	var origin math.Vec3
	if n.intent != nil {
		q.Facing = n.intent.Facing().YawOnly()
		fwd, right := n.intent.InputAxes()
		q.Desired = DesiredTrajectory(q.Facing, fwd, right, s.TrajectoryLength, s.StepsToMatch)
		origin = n.intent.Location()
	} else {
		q.Desired = math.Vec3{X: 1, Y: 1, Z: 1}.Scale(s.TrajectoryLength)
	}

	start := time.Now()
	best, scan := n.matcher.Search(q)
	searchDuration.Observe(time.Since(start).Seconds())
	searchKeys.Observe(float64(scan.Visited))
	n.stats.Searches++
	n.stats.Last = best
	n.stats.LastScan = scan

	ok := best.Total < RejectCost
	if ok {
		searchTotal.WithLabelValues(resultMatch).Inc()
	} else {
		searchTotal.WithLabelValues(resultRejected).Inc()
		n.log.Debug("no eligible motion candidate")
	}
	if s.DebugMode {
		n.drawSearch(origin, q, best, ok)
	}
	return best, ok
}

func (n *Node) drawSearch(origin math.Vec3, q Query, best Candidate, ok bool) {
	life := n.settings.DebugLinesLifetime
	n.debug.DrawLine(origin, origin.Add(q.Desired.Scale(debugLineScale)), debug.Yellow, life)
	if !ok {
		return
	}
	rm := n.lib.ExtractRootMotion(best.Key, q.Window)
	world := q.Facing.Rotate(rm.Translation)
	n.debug.DrawLine(origin, origin.Add(world.Scale(debugLineScale)), debug.Red, life)
	n.debug.DrawPoint(origin, debug.Green, life)
}

// Stats returns search counters and the most recent candidate.
func (n *Node) Stats() NodeStats {
	return n.stats
}

// Playing returns the current playback position.
func (n *Node) Playing() SampleKey {
	if n.controller == nil {
		return SampleKey{}
	}
	return n.controller.Playing()
}

// Library returns the node's clip library, nil before Initialize.
func (n *Node) Library() *Library {
	return n.lib
}
