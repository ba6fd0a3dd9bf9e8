package scene

import (
	"github.com/quillon/prism/viewer/math"
)

// DefaultFrameRate is assumed when an animation channel does not declare
// its own rate.
const DefaultFrameRate float32 = 60.0

// AnimationChannel is a single animated property stream inside a group.
// Key data stays with the loader; the viewer only needs timing.
type AnimationChannel struct {
	TargetName string
	FrameRate  float32
}

// AnimationGroup is a named set of channels that play together over a
// shared frame range.
type AnimationGroup struct {
	Name     string
	From     float32
	To       float32
	Loop     bool
	Channels []*AnimationChannel

	playing bool
	current float32
}

// FrameRate returns the rate declared by the group's first channel,
// falling back to DefaultFrameRate. Using the first channel as
// representative for the whole group is a known approximation; groups
// whose channels disagree on rate are driven by the first one.
func (g *AnimationGroup) FrameRate() float32 {
	if len(g.Channels) > 0 && g.Channels[0].FrameRate > 0 {
		return g.Channels[0].FrameRate
	}
	return DefaultFrameRate
}

// DurationSeconds converts the group's last frame to seconds.
func (g *AnimationGroup) DurationSeconds() float64 {
	return float64(g.To) / float64(g.FrameRate())
}

func (g *AnimationGroup) Play() {
	g.playing = true
}

func (g *AnimationGroup) Pause() {
	g.playing = false
}

// Stop pauses the group and rewinds it to its first frame.
func (g *AnimationGroup) Stop() {
	g.playing = false
	g.current = g.From
}

// GoToFrame jumps to an absolute frame, clamped to the group's range.
func (g *AnimationGroup) GoToFrame(frame float32) {
	g.current = math.Clamp(frame, g.From, g.To)
}

// Advance moves the playhead by one frame tick. Looping groups wrap;
// non-looping groups clamp at their last frame and keep their playing
// flag, leaving the stop decision to the synchronizer.
func (g *AnimationGroup) Advance(deltaTime float64) {
	if !g.playing {
		return
	}
	g.current += g.FrameRate() * float32(deltaTime)
	if g.current >= g.To {
		span := g.To - g.From
		if g.Loop && span > 0 {
			g.current = g.From + math.Mod(g.current-g.From, span)
		} else {
			g.current = g.To
		}
	}
}

func (g *AnimationGroup) CurrentFrame() float32 {
	return g.current
}

func (g *AnimationGroup) IsPlaying() bool {
	return g.playing
}

// AtEnd reports whether a non-looping group has reached its last frame.
func (g *AnimationGroup) AtEnd() bool {
	return !g.Loop && g.current >= g.To
}
