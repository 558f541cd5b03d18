// Package feed fans maze list snapshots out to live subscribers.
package feed

import (
	"sync"

	dmn "github.com/mazehub/mazehub-api/domain"
)

const subscriberBuffer = 16

// Hub distributes list snapshots to subscriber channels. Publishing
// never blocks: a subscriber that stops draining misses snapshots
// instead of holding everyone else up.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan []*dmn.Maze]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan []*dmn.Maze]struct{}),
	}
}

// Subscribe registers a listener. The returned cancel removes the
// listener and closes its channel; calling it twice is safe.
func (h *Hub) Subscribe() (<-chan []*dmn.Maze, func()) {
	ch := make(chan []*dmn.Maze, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish hands the snapshot to every subscriber.
func (h *Hub) Publish(snapshot []*dmn.Maze) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Channel full, skip slow subscriber.
		}
	}
}

// SubscriberCount returns the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
