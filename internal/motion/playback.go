package motion

import (
	"github.com/Faultbox/motionmatch/pkg/anim"
	"github.com/Faultbox/motionmatch/pkg/math"
)

// PlaybackState is the mutable per-character playback state.
type PlaybackState struct {
	Current     SampleKey // Key selected by the last search
	Previous    SampleKey // Playing position of the prior selection when Current was chosen
	BlendWeight float32   // Remaining weight of Previous, decays to 0
	Elapsed     float32   // Seconds played since Current was chosen
	UpdateTimer float32
	DebugTimer  float32
}

// Controller plays the selected key forward and cross-fades out of the
// previous selection.
type Controller struct {
	lib       *Library
	decrement float32
	state     PlaybackState
}

// NewController creates a controller starting idle at the first library key.
func NewController(lib *Library, blendDecrement float32) *Controller {
	return &Controller{lib: lib, decrement: blendDecrement}
}

// State returns the controller's state for the throttle and inspection.
func (c *Controller) State() *PlaybackState {
	return &c.state
}

// Playing returns the current playback position.
func (c *Controller) Playing() SampleKey {
	return c.lib.Advance(c.state.Current, c.state.Elapsed)
}

// PlayingPrevious returns the playback position of the fading-out selection.
func (c *Controller) PlayingPrevious() SampleKey {
	return c.lib.Advance(c.state.Previous, c.state.Elapsed)
}

// Blending reports whether the previous selection still contributes.
func (c *Controller) Blending() bool {
	return c.state.BlendWeight > 0
}

// Switch starts playing next and begins fading out of the current position.
func (c *Controller) Switch(next SampleKey) {
	c.state.Previous = c.Playing()
	c.state.Current = next
	c.state.Elapsed = 0
	c.state.BlendWeight = 1
}

// Jump starts playing next with no cross-fade.
func (c *Controller) Jump(next SampleKey) {
	c.state.Current = next
	c.state.Previous = next
	c.state.Elapsed = 0
	c.state.BlendWeight = 0
}

// Pose samples the blended output pose at the current playback position.
func (c *Controller) Pose() anim.Pose {
	cur := c.lib.Pose(c.Playing())
	if !c.Blending() {
		return cur
	}
	prev := c.lib.Pose(c.PlayingPrevious())
	return anim.BlendPoses(prev, cur, 1-c.state.BlendWeight)
}

// RootMotion returns the blended root motion over the next dt seconds.
func (c *Controller) RootMotion(dt float32) math.Transform {
	cur := c.lib.ExtractRootMotion(c.Playing(), dt)
	if !c.Blending() {
		return cur
	}
	prev := c.lib.ExtractRootMotion(c.PlayingPrevious(), dt)
	return math.BlendTransforms(prev, cur, 1-c.state.BlendWeight)
}

// Step advances playback by dt and decays the blend weight once.
func (c *Controller) Step(dt float32) {
	if dt > 0 {
		c.state.Elapsed += dt
	}
	c.state.BlendWeight -= c.decrement
	if c.state.BlendWeight < 0 {
		c.state.BlendWeight = 0
	}
}
