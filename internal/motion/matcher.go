package motion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motionmatch/internal/logger"
)

// ScanStats counts what a search visited.
type ScanStats struct {
	Visited int // Keys scored
	Skipped int // Keys excluded by the horizon bound or the current-key rule
}

// Matcher finds the lowest-cost key of a Library.
type Matcher struct {
	lib            *Library
	eval           *Evaluator
	stepsToMatch   int
	excludeCurrent bool
}

// NewMatcher creates a matcher. Keys closer than stepsToMatch·Δ to the end of
// their clip are never candidates. With excludeCurrent the key currently
// playing is skipped so the search always moves playback somewhere else.
func NewMatcher(lib *Library, eval *Evaluator, stepsToMatch int, excludeCurrent bool) *Matcher {
	if stepsToMatch < 1 {
		stepsToMatch = 1
	}
	return &Matcher{
		lib:            lib,
		eval:           eval,
		stepsToMatch:   stepsToMatch,
		excludeCurrent: excludeCurrent,
	}
}

// Search scans every key in ascending order and returns the first key with
// the strictly lowest total cost. With no eligible finite candidate the
// result is the first library key with RejectCost.
func (m *Matcher) Search(q Query) (Candidate, ScanStats) {
	best := Candidate{Key: m.lib.Reset(), Total: RejectCost}
	var stats ScanStats
	if m.lib.Len() == 0 {
		return best, stats
	}

	m.eval.Prepare(q)
	current := m.lib.KeyFor(q.Current.ClipIndex, q.Current.Time)
	horizon := float32(m.stepsToMatch) * m.lib.Interval()
	maxKey := m.lib.MaxKey()

	for key := m.lib.Reset(); key.Less(maxKey); key = m.lib.Increment(key) {
		if key.Time > m.lib.Duration(key.ClipIndex)-horizon+keyTolerance {
			stats.Skipped++
			continue
		}
		if m.excludeCurrent && key.ClipIndex == current.ClipIndex && key.KeyIndex == current.KeyIndex {
			stats.Skipped++
			continue
		}

		c := m.eval.Evaluate(key, q)
		stats.Visited++
		if c.Total < best.Total {
			best = c
		}
	}

	logger.Debug("motion search finished",
		zap.Stringer("best", best.Key),
		zap.Float32("cost", best.Total),
		zap.Int("visited", stats.Visited),
		zap.Int("skipped", stats.Skipped))
	return best, stats
}

// Throttle gates searches behind two timers: a fine debug tick and a coarser
// update timer that only advances on debug ticks.
type Throttle struct {
	DebugRate  float32
	UpdateRate float32
}

// Advance accumulates dt into the state's timers and reports whether a search
// is due. Both timers reset when it is.
func (t Throttle) Advance(s *PlaybackState, dt float32) bool {
	s.DebugTimer += dt
	if s.DebugTimer <= t.DebugRate {
		return false
	}
	s.UpdateTimer += s.DebugTimer
	s.DebugTimer = 0
	if s.UpdateTimer < t.UpdateRate {
		return false
	}
	s.UpdateTimer = 0
	return true
}
