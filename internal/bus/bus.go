// Package bus is a small in-process publish/subscribe hub. Pages use it to
// announce mutations so interested parties (the dashboard summary cache,
// audit logging) react without the handlers knowing about them.
package bus

import (
	"log/slog"
	"sync"
)

// Topic names an event stream.
type Topic string

// Mutation topics published by the resource handlers.
const (
	TopicRecordCreated Topic = "record-created"
	TopicRecordUpdated Topic = "record-updated"
	TopicRecordDeleted Topic = "record-deleted"
)

// Event is what subscribers receive.
type Event struct {
	Topic    Topic
	Resource string // collection name, e.g. "patients"
	ID       int64
}

// Handler consumes one event. Handlers run synchronously on the publishing
// goroutine, so they must be quick; anything slow should hand off itself.
type Handler func(Event)

type subscription struct {
	id int64
	fn Handler
}

// Bus fans events out to subscribers. Safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[Topic][]subscription
	logger *slog.Logger
}

// New builds an empty bus. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{subs: make(map[Topic][]subscription), logger: logger}
}

// Subscribe registers fn for a topic and returns an unsubscribe func.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(topic Topic, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every subscriber of its topic, in
// subscription order. A panicking handler is recovered and logged; the
// remaining handlers still run.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	list := make([]subscription, len(b.subs[ev.Topic]))
	copy(list, b.subs[ev.Topic])
	b.mu.RUnlock()

	for _, s := range list {
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"topic", string(ev.Topic),
				"resource", ev.Resource,
				"panic", r)
		}
	}()
	s.fn(ev)
}
