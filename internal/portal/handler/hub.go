package handler

import (
	"sync"

	"item-portal/internal/items"
)

const subscriberBuffer = 16

// hub fans item state changes out to connected event streams.
// Slow subscribers drop updates instead of blocking the publisher.
type hub struct {
	mu   sync.Mutex
	subs map[chan items.State]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan items.State]struct{})}
}

func (h *hub) add() chan items.State {
	ch := make(chan items.State, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) remove(ch chan items.State) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

func (h *hub) broadcast(st items.State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- st:
		default:
		}
	}
}
