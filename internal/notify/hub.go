// Package notify broadcasts saved-restaurants change notifications to every
// mounted view in the process. It is an explicit observer hub rather than
// an ambient global event: components subscribe, refresh their own cached
// copy on a signal, and cancel when unmounted.
package notify

import "sync"

// Change describes one mutation of a user's saved-restaurant collection.
type Change struct {
	UserID       uint64 `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Action       string `json:"action"` // "saved" or "removed"
}

// Hub fans Change events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses that event and refreshes on the
// next one, which is acceptable because subscribers re-read their full
// state on any signal. Safe for concurrent use.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Change)}
}

// Subscribe registers an observer and returns its channel plus a cancel
// function. Cancel is idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Change, 8)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the change to all current subscribers without blocking.
func (h *Hub) Publish(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
