package event

import (
	"log"
	"sync"
)

// Subscriber consumes lifecycle events. Implementations must tolerate being
// called from the mutation path; slow or failing subscribers only cost the
// publisher a log line.
type Subscriber interface {
	HandleEvent(Event) error
}

// Publisher is the side of the bus handed to the engine.
type Publisher interface {
	Publish(Event)
}

// Bus fans events out to an explicit subscriber list. Subscribers are
// registered at wiring time; there is no global event manager.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

var _ Publisher = (*Bus)(nil)

func NewBus(subscribers ...Subscriber) *Bus {
	return &Bus{subscribers: subscribers}
}

// Subscribe adds a subscriber to the list.
func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// Publish delivers the event to every subscriber. Errors are logged and
// swallowed: event delivery never fails the mutation that triggered it.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subscribers {
		if err := s.HandleEvent(e); err != nil {
			log.Printf("event: subscriber failed to handle %s for resource %s: %v", e.Kind, e.ResourceID, err)
		}
	}
}

// NopPublisher discards all events. Useful for callers that do not care
// about notifications, bulk administrative paths included.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
