package events

import (
	"sync"
)

// NotificationCreated is published after a notification row is persisted.
// It deliberately carries no payload beyond routing data: the real-time
// channel is a wake-up signal, clients re-fetch on receipt.
type NotificationCreated struct {
	NotificationID uint
	RecipientID    uint
	Type           string
}

// Bus fans NotificationCreated events out to in-process subscribers.
// Publishing never blocks and never fails: a subscriber that cannot keep up
// loses events, which is acceptable because delivery here is best effort and
// persistence has already succeeded by the time Publish runs.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan NotificationCreated
	closed bool
}

const subscriberBuffer = 64

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber channel.
func (b *Bus) Subscribe() <-chan NotificationCreated {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan NotificationCreated, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers the event to every subscriber whose buffer has room.
func (b *Bus) Publish(event NotificationCreated) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Subscriber backed up; drop rather than stall the request path.
		}
	}
}

// Close shuts down all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
