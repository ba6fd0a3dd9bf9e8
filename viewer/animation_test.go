package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/prism/viewer/scene"
)

// group30 is a 4 second group at 30 frames per second.
func group30(loop bool) *scene.AnimationGroup {
	return &scene.AnimationGroup{
		Name: "walk",
		From: 0,
		To:   120,
		Loop: loop,
		Channels: []*scene.AnimationChannel{
			{TargetName: "hips", FrameRate: 30},
		},
	}
}

func newSyncFixture() (*Synchronizer, *recorder) {
	rec := &recorder{}
	return NewSynchronizer(rec.callbacks()), rec
}

func TestInitEmitsAvailability(t *testing.T) {
	sync, rec := newSyncFixture()
	sync.Init([]*scene.AnimationGroup{group30(true)})

	assert.True(t, sync.Active())
	assert.False(t, sync.IsPlaying())
	require.Len(t, rec.available, 1)
	assert.InDelta(t, 4.0, rec.available[0], 1e-6)
}

func TestInitWithoutGroupsReportsNotAvailable(t *testing.T) {
	sync, rec := newSyncFixture()
	sync.Init(nil)

	assert.False(t, sync.Active())
	assert.Empty(t, rec.available)
}

func TestInitRewindsGroups(t *testing.T) {
	sync, _ := newSyncFixture()
	g := group30(true)
	g.Play()
	g.GoToFrame(60)

	sync.Init([]*scene.AnimationGroup{g})
	assert.False(t, g.IsPlaying())
	assert.Equal(t, float32(0), g.CurrentFrame())
}

func TestPlayPauseTransitions(t *testing.T) {
	sync, rec := newSyncFixture()
	g := group30(true)
	sync.Init([]*scene.AnimationGroup{g})

	sync.Play(true)
	assert.True(t, sync.IsPlaying())
	assert.True(t, g.IsPlaying())

	// Redundant play commands do not re-fire the transition.
	sync.Play(true)

	sync.Play(false)
	assert.False(t, sync.IsPlaying())
	assert.False(t, g.IsPlaying())

	assert.Equal(t, []bool{true, false}, rec.states)
}

func TestTickEmitsProgress(t *testing.T) {
	sync, rec := newSyncFixture()
	sync.Init([]*scene.AnimationGroup{group30(true)})
	sync.Play(true)

	sync.Tick(1.0)
	require.Len(t, rec.progress, 1)
	assert.InDelta(t, 25.0, rec.progress[0], 1e-4)
}

func TestLoopingGroupWraps(t *testing.T) {
	sync, _ := newSyncFixture()
	g := group30(true)
	sync.Init([]*scene.AnimationGroup{g})
	sync.Play(true)

	sync.Tick(4.5)
	assert.True(t, sync.IsPlaying())
	assert.InDelta(t, 15.0, float64(g.CurrentFrame()), 1e-3)
}

func TestNonLoopingGroupStopsExactlyOnce(t *testing.T) {
	sync, rec := newSyncFixture()
	g := group30(false)
	sync.Init([]*scene.AnimationGroup{g})

	sync.Play(true)
	sync.Tick(5.0)

	assert.False(t, sync.IsPlaying())
	assert.False(t, g.IsPlaying())
	assert.Equal(t, []bool{true, false}, rec.states)

	// Further ticks must not re-fire the stopped transition.
	sync.Tick(1.0)
	sync.Tick(1.0)
	assert.Equal(t, []bool{true, false}, rec.states)
}

func TestSeekRoundTripBeforeAnyTick(t *testing.T) {
	sync, rec := newSyncFixture()
	g := group30(true)
	sync.Init([]*scene.AnimationGroup{g})

	sync.Seek(25.0, false)

	require.Len(t, rec.progress, 1)
	assert.InDelta(t, 25.0, rec.progress[0], 1e-4)
	assert.InDelta(t, 30.0, float64(g.CurrentFrame()), 1e-3)
	assert.False(t, sync.IsPlaying())
}

func TestSeekResumesPriorPlayback(t *testing.T) {
	sync, _ := newSyncFixture()
	sync.Init([]*scene.AnimationGroup{group30(true)})

	sync.Play(true)
	sync.Seek(50.0, false)
	assert.True(t, sync.IsPlaying())

	sync.Play(false)
	sync.Seek(10.0, false)
	assert.False(t, sync.IsPlaying())

	sync.Seek(10.0, true)
	assert.True(t, sync.IsPlaying())
}

func TestSeekClampsPercent(t *testing.T) {
	sync, rec := newSyncFixture()
	g := group30(true)
	sync.Init([]*scene.AnimationGroup{g})

	sync.Seek(250.0, false)
	assert.InDelta(t, 100.0, rec.progress[len(rec.progress)-1], 1e-4)
	assert.Equal(t, float32(120), g.CurrentFrame())
}

func TestTotalDurationIsMaximumAcrossGroups(t *testing.T) {
	sync, rec := newSyncFixture()
	short := &scene.AnimationGroup{
		Name: "blink", To: 30, Loop: true,
		Channels: []*scene.AnimationChannel{{FrameRate: 30}},
	}
	sync.Init([]*scene.AnimationGroup{short, group30(true)})

	require.Len(t, rec.available, 1)
	assert.InDelta(t, 4.0, rec.available[0], 1e-6)
	assert.InDelta(t, 4.0, sync.TotalSeconds(), 1e-6)
}

func TestUndeclaredFrameRateFallsBackToDefault(t *testing.T) {
	g := &scene.AnimationGroup{Name: "bare", To: 120}
	assert.Equal(t, scene.DefaultFrameRate, g.FrameRate())
	assert.InDelta(t, 2.0, g.DurationSeconds(), 1e-6)
}
