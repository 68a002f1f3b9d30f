package bus

import (
	"sync"
)

// Topic names the signals exchanged between tracker surfaces.
type Topic string

const (
	// OpenTracker asks the tracking UI to come to the foreground. If a
	// session is already active the UI should show the active view.
	OpenTracker Topic = "open-tracker"

	// StartFromTask asks for a session to begin for a specific project/task
	// pair, typically from a task list row rather than the tracker itself.
	StartFromTask Topic = "start-from-task"

	// SessionStarted is published after a session has been written to
	// storage, so passive displays can re-read consistent state.
	SessionStarted Topic = "session-started"

	// SessionStopped is published after a persisted session has been
	// removed from storage.
	SessionStopped Topic = "session-stopped"
)

// Event is the payload delivered to subscribers. ProjectID/TaskID are set for
// StartFromTask and SessionStarted; other topics carry the topic alone.
type Event struct {
	Topic     Topic
	ProjectID uint
	TaskID    *uint
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Bus is an in-process publish/subscribe hub. Subscribers to a topic are
// notified in registration order.
type Bus struct {
	mu       sync.Mutex
	handlers map[Topic][]*subscription
}

type subscription struct {
	fn Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[Topic][]*subscription)}
}

// Subscribe registers h for topic and returns a function that removes the
// subscription. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	sub := &subscription{fn: h}

	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, s := range subs {
			if s == sub {
				b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every subscriber of e.Topic, in registration order.
// Delivery is synchronous: Publish returns after the last handler has run.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := append([]*subscription(nil), b.handlers[e.Topic]...)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}
