package debug

import "github.com/Faultbox/motionmatch/pkg/math"

// Color is an RGBA debug color.
type Color struct {
	R, G, B, A uint8
}

// Debug colors.
var (
	Yellow = Color{255, 255, 0, 255}
	Red    = Color{255, 0, 0, 255}
	Green  = Color{0, 255, 0, 255}
	Blue   = Color{0, 128, 255, 255}
	Gray   = Color{128, 128, 128, 255}
)

// Line is a world-space segment with a remaining lifetime in seconds.
type Line struct {
	From, To math.Vec3
	Color    Color
	Life     float32
}

// LineVertex is a line endpoint for rendering.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// LineRecorder collects draw requests and expires them as time passes.
// The zero value is ready to use.
type LineRecorder struct {
	lines []Line
	total int
}

// DrawLine records a segment that stays visible for lifetime seconds.
// A non-positive lifetime keeps it for a single Tick.
func (r *LineRecorder) DrawLine(from, to math.Vec3, color Color, lifetime float32) {
	r.lines = append(r.lines, Line{From: from, To: to, Color: color, Life: lifetime})
	r.total++
}

// DrawPoint records a small wireframe marker around p.
func (r *LineRecorder) DrawPoint(p math.Vec3, color Color, lifetime float32) {
	verts := GenerateMarkerVertices(p, DefaultMarkerSize)
	for i := 0; i+1 < len(verts); i += 2 {
		r.DrawLine(verts[i], verts[i+1], color, lifetime)
	}
}

// Tick ages every line by dt and drops the expired ones.
func (r *LineRecorder) Tick(dt float32) {
	kept := r.lines[:0]
	for _, l := range r.lines {
		l.Life -= dt
		if l.Life > 0 {
			kept = append(kept, l)
		}
	}
	// Clear the tail so dropped lines do not linger in the backing array
	for i := len(kept); i < len(r.lines); i++ {
		r.lines[i] = Line{}
	}
	r.lines = kept
}

// Lines returns the live lines. The slice is only valid until the next call
// that modifies the recorder.
func (r *LineRecorder) Lines() []Line {
	return r.lines
}

// Total returns how many lines were ever recorded.
func (r *LineRecorder) Total() int {
	return r.total
}

// Vertices returns two vertices per live line, colors normalized to [0, 1].
func (r *LineRecorder) Vertices() []LineVertex {
	out := make([]LineVertex, 0, len(r.lines)*2)
	for _, l := range r.lines {
		cr := float32(l.Color.R) / 255
		cg := float32(l.Color.G) / 255
		cb := float32(l.Color.B) / 255
		out = append(out,
			LineVertex{l.From.X, l.From.Y, l.From.Z, cr, cg, cb},
			LineVertex{l.To.X, l.To.Y, l.To.Z, cr, cg, cb},
		)
	}
	return out
}
