package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()

	// 120 frames at ~16.7ms cross the one second accumulator twice;
	// the last crossing counts roughly 60 frames.
	for i := 0; i < 121; i++ {
		m.Update(1.0 / 60.0)
	}
	assert.InDelta(t, 60.0, m.FPS(), 2.0)
}

func TestMetricsFrameTimeAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < avgCount; i++ {
		m.Update(0.010)
	}
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-6)
}
