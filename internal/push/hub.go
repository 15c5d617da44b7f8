// Package push is the in-process live channel: services publish events after
// persisting them, and connected viewers receive them over per-subscriber
// buffered channels. Delivery is best-effort; a slow consumer loses events
// rather than blocking a publisher.
package push

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Event is a named payload delivered to subscribers.
type Event struct {
	Name    string
	Payload any
}

// Subscriber is one connected viewer's event stream. The role is captured at
// subscribe time so broadcast routing can apply the same visibility rule as
// the feed.
type Subscriber struct {
	userID uuid.UUID
	role   domain.Role
	ch     chan Event
}

// C returns the subscriber's receive channel. It is closed on Unsubscribe and
// on hub shutdown.
func (s *Subscriber) C() <-chan Event { return s.ch }

// Hub fans events out to subscribers keyed by user id.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*Subscriber]struct{}
	closed bool

	buffer int
	log    *slog.Logger
}

// NewHub creates a hub. buffer of 0 falls back to DefaultBuffer.
func NewHub(log *slog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[uuid.UUID]map[*Subscriber]struct{}),
		buffer: buffer,
		log:    log.With("component", "push"),
	}
}

// Subscribe registers a viewer's stream. A user may hold several
// subscriptions at once, one per open connection.
func (h *Hub) Subscribe(userID uuid.UUID, role domain.Role) *Subscriber {
	sub := &Subscriber{userID: userID, role: role, ch: make(chan Event, h.buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a stream and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.userID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.userID)
	}
	close(sub.ch)
}

// Publish delivers an event. A *domain.Notification payload follows the
// feed's visibility rule: direct recipients get it, a broadcast record goes
// to manager subscribers only. Any other payload goes to all subscribers.
// Full subscriber buffers drop the event.
func (h *Hub) Publish(event string, payload any) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return fmt.Errorf("push hub is closed")
	}

	e := Event{Name: event, Payload: payload}

	if n, ok := payload.(*domain.Notification); ok {
		if n.IsBroadcast() {
			for _, set := range h.subs {
				for sub := range set {
					if sub.role.IsManager() {
						h.send(sub, e)
					}
				}
			}
			return nil
		}
		for _, id := range n.Recipients {
			for sub := range h.subs[id] {
				h.send(sub, e)
			}
		}
		return nil
	}

	for _, set := range h.subs {
		for sub := range set {
			h.send(sub, e)
		}
	}
	return nil
}

// send must be called with the read lock held.
func (h *Hub) send(sub *Subscriber, e Event) {
	select {
	case sub.ch <- e:
	default:
		h.log.Warn("event dropped: subscriber buffer full",
			slog.String("event", e.Name),
			slog.String("user_id", sub.userID.String()),
		)
	}
}

// Close shuts the hub down and closes every subscriber channel. Publishing
// after Close returns an error.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for _, set := range h.subs {
		for sub := range set {
			close(sub.ch)
		}
	}
	h.subs = make(map[uuid.UUID]map[*Subscriber]struct{})
}
