package viewer

import (
	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/math"
	"github.com/quillon/prism/viewer/scene"
)

// Synchronizer maps between normalized progress (0-100%), wall-clock
// seconds and the native frame timelines of the loaded animation
// groups. It is Idle while no groups are loaded and Active otherwise.
type Synchronizer struct {
	groups       []*scene.AnimationGroup
	totalSeconds float64
	playing      bool
	callbacks    *Callbacks
}

func NewSynchronizer(callbacks *Callbacks) *Synchronizer {
	return &Synchronizer{callbacks: callbacks}
}

// Init adopts a freshly loaded set of groups: every group is stopped
// and rewound, the total duration becomes the maximum group duration,
// and an availability notification is emitted. Init(nil) resets the
// synchronizer to Idle.
func (s *Synchronizer) Init(groups []*scene.AnimationGroup) {
	s.groups = groups
	s.playing = false
	s.totalSeconds = 0
	for _, g := range groups {
		g.Stop()
		if d := g.DurationSeconds(); d > s.totalSeconds {
			s.totalSeconds = d
		}
	}
	s.callbacks.emitAnimationsAvailable(len(groups) > 0, s.totalSeconds)
}

func (s *Synchronizer) Active() bool {
	return len(s.groups) > 0
}

func (s *Synchronizer) IsPlaying() bool {
	return s.playing
}

func (s *Synchronizer) TotalSeconds() float64 {
	return s.totalSeconds
}

// Play starts or pauses playback of every group.
func (s *Synchronizer) Play(play bool) {
	if !s.Active() || s.playing == play {
		return
	}
	for _, g := range s.groups {
		if play {
			g.Play()
		} else {
			g.Pause()
		}
	}
	s.playing = play
	s.callbacks.emitAnimationState(play)
}

// Tick advances playback by one frame interval. Progress is read from
// the first group, whose frame rate stands in for the whole set (a
// known approximation when groups disagree). A non-looping group that
// reaches its last frame is force-stopped; when no group is left
// playing the synchronizer emits a single stopped transition. That is
// the only state change not triggered by the user.
func (s *Synchronizer) Tick(deltaTime float64) {
	if !s.playing || !s.Active() {
		return
	}

	for _, g := range s.groups {
		g.Advance(deltaTime)
	}

	current, percent := s.progress()
	s.callbacks.emitAnimationProgress(percent, current, s.totalSeconds)

	stillPlaying := false
	for _, g := range s.groups {
		if g.AtEnd() {
			g.Pause()
			continue
		}
		if g.IsPlaying() {
			stillPlaying = true
		}
	}
	if !stillPlaying {
		s.playing = false
		core.LogDebug("animation reached its end, stopping")
		s.callbacks.emitAnimationState(false)
	}
}

// Seek jumps every group to the frame matching the given percentage of
// the total duration. Playback resumes when resume is set or when the
// synchronizer was playing before the seek; either way a progress
// update is emitted immediately, without waiting for the next tick.
func (s *Synchronizer) Seek(percent float64, resume bool) {
	if !s.Active() {
		return
	}
	percent = clampPercent(percent)
	wasPlaying := s.playing

	targetSeconds := percent / 100.0 * s.totalSeconds
	for _, g := range s.groups {
		g.Pause()
		g.GoToFrame(float32(targetSeconds) * g.FrameRate())
	}
	s.playing = false

	if resume || wasPlaying {
		for _, g := range s.groups {
			g.Play()
		}
		s.playing = true
	}

	current, actual := s.progress()
	s.callbacks.emitAnimationProgress(actual, current, s.totalSeconds)
}

// progress converts the first group's playhead to seconds and percent.
func (s *Synchronizer) progress() (currentSeconds, percent float64) {
	first := s.groups[0]
	currentSeconds = float64(first.CurrentFrame()) / float64(first.FrameRate())
	if s.totalSeconds > 0 {
		percent = clampPercent(currentSeconds / s.totalSeconds * 100.0)
	}
	return currentSeconds, percent
}

func clampPercent(p float64) float64 {
	return float64(math.Clamp(float32(p), 0, 100))
}
