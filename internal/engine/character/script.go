package character

import "sort"

// InputEntry sets the movement axes from time At onwards.
type InputEntry struct {
	At      float32
	Forward float32
	Right   float32
}

// InputScript replays timed input changes onto a character.
type InputScript struct {
	entries []InputEntry
	time    float32
	next    int
}

// NewInputScript creates a script; entries are ordered by time.
func NewInputScript(entries []InputEntry) *InputScript {
	sorted := append([]InputEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &InputScript{entries: sorted}
}

// Advance moves the script clock by dt and applies every entry that became
// due. It returns true when the input changed.
func (s *InputScript) Advance(c *Character, dt float32) bool {
	if dt > 0 {
		s.time += dt
	}
	changed := false
	for s.next < len(s.entries) && s.entries[s.next].At <= s.time {
		e := s.entries[s.next]
		c.SetInput(e.Forward, e.Right)
		s.next++
		changed = true
	}
	return changed
}

// Time returns the script clock in seconds.
func (s *InputScript) Time() float32 {
	return s.time
}

// Done reports whether every entry has been applied.
func (s *InputScript) Done() bool {
	return s.next >= len(s.entries)
}
