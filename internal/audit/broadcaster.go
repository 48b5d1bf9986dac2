package audit

import (
	"sync"
)

// Subscriber represents a channel that receives audit records.
type Subscriber chan Record

// Broadcaster fans records out to subscribers.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[Subscriber]struct{}
}

var broadcaster = &Broadcaster{
	subscribers: make(map[Subscriber]struct{}),
}

// Subscribe adds a new subscriber and returns its channel.
// The channel has a buffer to prevent blocking on slow consumers.
func Subscribe() Subscriber {
	ch := make(Subscriber, 64) // Buffer to avoid blocking Emit
	broadcaster.mu.Lock()
	broadcaster.subscribers[ch] = struct{}{}
	broadcaster.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func Unsubscribe(sub Subscriber) {
	broadcaster.mu.Lock()
	delete(broadcaster.subscribers, sub)
	broadcaster.mu.Unlock()
	close(sub)
}

// broadcast sends a record to all subscribers.
// Non-blocking: if a subscriber's buffer is full, the record is dropped for
// that subscriber.
func broadcast(r Record) {
	broadcaster.mu.RLock()
	defer broadcaster.mu.RUnlock()

	for sub := range broadcaster.subscribers {
		select {
		case sub <- r:
		default:
			// Buffer full, drop record for this slow subscriber
		}
	}
}
