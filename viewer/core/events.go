package core

import "sync"

// EventContext carries the payload of a fired event. Which fields are
// meaningful depends on the event code.
type EventContext struct {
	F32 [4]float32
	U32 [4]uint32
	Str string
}

// EventCode identifies a category of event on the bus.
type EventCode int

const (
	// EventQuit shuts the viewer down on the next frame.
	EventQuit EventCode = iota + 1
	// EventResized carries the new framebuffer size in U32[0], U32[1].
	EventResized
	// EventKeyPressed carries the key code in U32[0].
	EventKeyPressed
	// EventMouseDragged carries the cursor delta in F32[0], F32[1] and
	// the held button in U32[0].
	EventMouseDragged
	// EventMouseWheel carries the scroll delta in F32[0].
	EventMouseWheel
	// EventFileChanged carries the changed path in Str.
	EventFileChanged
)

// FnOnEvent handles a fired event. Returning true marks the event as
// handled and stops propagation to later listeners.
type FnOnEvent func(code EventCode, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus is an owned publish/subscribe dispatcher. Each Session holds
// its own bus; there is no package-global registration.
type EventBus struct {
	mu         sync.RWMutex
	registered map[EventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]*registeredEvent),
	}
}

// Register adds a listener for the given code. Duplicate listener
// registrations for the same code are rejected.
func (b *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.registered[code] {
		if e.listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes a listener for the given code. Returns false when
// no matching registration exists.
func (b *EventBus) Unregister(code EventCode, listener interface{}) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fire dispatches an event to listeners of the given code. If a handler
// returns true the event is considered handled and is not passed on.
func (b *EventBus) Fire(code EventCode, data EventContext) bool {
	b.mu.RLock()
	events := make([]*registeredEvent, len(b.registered[code]))
	copy(events, b.registered[code])
	b.mu.RUnlock()

	for _, e := range events {
		if e.callback(code, data) {
			return true
		}
	}
	return false
}
