package events

import (
	"sync"
)

// Broker manages event distribution
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
}

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return NewBrokerWithBuffer(32)
}

// NewBrokerWithBuffer creates a broker whose subscriber channels hold size
// events before Publish starts dropping for that subscriber.
func NewBrokerWithBuffer(size int) *Broker {
	if size < 1 {
		size = 1
	}
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  size,
	}
}

// Subscribe creates a subscription to specific event types.
// With no types the subscription receives everything.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	if b.closed {
		close(ch)
		return ch
	}

	if len(eventTypes) == 0 {
		eventTypes = []EventType{Wildcard}
	}

	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a subscription from every event type and closes it.
func (b *Broker) Unsubscribe(target <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var found chan Event
	for eventType, subscribers := range b.subscribers {
		kept := subscribers[:0]
		for _, ch := range subscribers {
			if ch == target {
				found = ch
				continue
			}
			kept = append(kept, ch)
		}
		if len(kept) == 0 {
			delete(b.subscribers, eventType)
		} else {
			b.subscribers[eventType] = kept
		}
	}

	if found != nil {
		close(found)
	}
}

// Publish sends an event to all subscribers. A subscriber whose buffer is
// full misses the event; Publish never blocks.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers[event.Type] {
		select {
		case ch <- event:
		default:
		}
	}

	if event.Type == Wildcard {
		return
	}
	for _, ch := range b.subscribers[Wildcard] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes every subscription. Later publishes are dropped.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	seen := make(map[chan Event]struct{})
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if _, ok := seen[ch]; ok {
				continue
			}
			seen[ch] = struct{}{}
			close(ch)
		}
	}
	b.subscribers = make(map[EventType][]chan Event)
}
