package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusFireReachesListener(t *testing.T) {
	bus := NewEventBus()
	listener := struct{}{}

	var got EventContext
	bus.Register(EventMouseWheel, &listener, func(code EventCode, data EventContext) bool {
		got = data
		return false
	})

	ctx := EventContext{}
	ctx.F32[0] = 1.5
	bus.Fire(EventMouseWheel, ctx)
	assert.Equal(t, float32(1.5), got.F32[0])
}

func TestEventBusRejectsDuplicateRegistration(t *testing.T) {
	bus := NewEventBus()
	listener := struct{}{}
	cb := func(code EventCode, data EventContext) bool { return false }

	assert.True(t, bus.Register(EventQuit, &listener, cb))
	assert.False(t, bus.Register(EventQuit, &listener, cb))
}

func TestEventBusHandledStopsPropagation(t *testing.T) {
	bus := NewEventBus()
	first := struct{}{}
	second := struct{}{}

	reachedSecond := false
	bus.Register(EventKeyPressed, &first, func(code EventCode, data EventContext) bool {
		return true
	})
	bus.Register(EventKeyPressed, &second, func(code EventCode, data EventContext) bool {
		reachedSecond = true
		return false
	})

	assert.True(t, bus.Fire(EventKeyPressed, EventContext{}))
	assert.False(t, reachedSecond)
}

func TestEventBusUnregister(t *testing.T) {
	bus := NewEventBus()
	listener := struct{}{}
	fired := false
	bus.Register(EventQuit, &listener, func(code EventCode, data EventContext) bool {
		fired = true
		return false
	})

	assert.True(t, bus.Unregister(EventQuit, &listener))
	assert.False(t, bus.Unregister(EventQuit, &listener))

	bus.Fire(EventQuit, EventContext{})
	assert.False(t, fired)
}
