// Package broadcast fans feed change events out to currently connected
// subscribers. Delivery is at-most-once: no replay, no queueing for
// subscribers that connect later or have gone away.
package broadcast

import (
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/amatveev/feedhub/internal/model"
)

// subscriber channel buffer; a subscriber that falls this far behind
// starts losing events rather than slowing down publishers.
const subscriberBuffer = 16

// Hub is the process-scoped fan-out point. Constructed on boot, closed on
// shutdown, and accessed only through Subscribe/Unsubscribe/Publish.
type Hub struct {
	mu     sync.Mutex
	subs   map[uuid.UUID]chan model.ChangeEvent
	closed bool
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]chan model.ChangeEvent)}
}

// Subscribe registers a new subscriber and returns its handle and event
// channel. The channel is closed by Unsubscribe or Close.
func (h *Hub) Subscribe() (uuid.UUID, <-chan model.ChangeEvent) {
	id := uuid.Must(uuid.NewV4())
	ch := make(chan model.ChangeEvent, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown handles
// are a no-op.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
}

// Publish delivers ev to every current subscriber without blocking: a full
// subscriber channel drops the event. Publish never delays the caller, so
// a mutation response is never held up by a slow stream consumer.
func (h *Hub) Publish(ev model.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Len reports the current subscriber count.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close closes all subscriber channels and turns further Publish and
// Subscribe calls into no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
