// internal/events/broker.go
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/versehub/versehub/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Event is a server-sent notification published by handlers (course
// created, file uploaded) and fanned out to every open event stream.
type Event struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
	Time time.Time      `json:"time"`
}

// Broker fans events out to subscribers. Slow subscribers never block a
// publish: an event is dropped for a subscriber whose buffer is full.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel along with
// a cancel function. The cancel function is safe to call once.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish stamps the event with an ID and timestamp and delivers it to
// every subscriber that has buffer room.
func (b *Broker) Publish(eventType string, data map[string]any) {
	event := Event{
		ID:   uuid.New().String(),
		Type: eventType,
		Data: data,
		Time: time.Now().UTC(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			customLog.Warnf("Broker: dropping %s event for slow subscriber", eventType)
		}
	}
}

// SubscriberCount returns the number of open subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
