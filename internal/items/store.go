// Package items holds the list view's load state: the last fetched items,
// whether a fetch is in flight, and the last fetch error.
package items

import (
	"context"
	"encoding/json"
	"sync"

	"item-portal/internal/api"
	"item-portal/internal/events"
	"item-portal/internal/logger"
)

const (
	// FallbackError is shown when a failed fetch carries no message.
	FallbackError = "Failed to load items"

	// TopicChanged is published with the new State after every patch.
	TopicChanged = "items:changed"
)

// Lister is the slice of api.Client the store depends on.
type Lister interface {
	ListItems(ctx context.Context) ([]api.Item, error)
}

// State is a snapshot of the load lifecycle. Error is empty when there is
// no error, and always empty while IsLoading is true.
type State struct {
	Items     []api.Item
	IsLoading bool
	Error     string
}

// MarshalJSON renders an absent error as null and absent items as [].
func (s State) MarshalJSON() ([]byte, error) {
	type view struct {
		Items     []api.Item `json:"items"`
		IsLoading bool       `json:"isLoading"`
		Error     *string    `json:"error"`
	}

	v := view{Items: s.Items, IsLoading: s.IsLoading}
	if v.Items == nil {
		v.Items = []api.Item{}
	}
	if s.Error != "" {
		v.Error = &s.Error
	}
	return json.Marshal(v)
}

type Store struct {
	mu     sync.RWMutex
	state  State
	lister Lister
	bus    *events.Bus
}

func NewStore(lister Lister, bus *events.Bus) *Store {
	return &Store{
		lister: lister,
		bus:    bus,
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn for every state patch. Handlers run on the bus
// dispatcher and may call LoadItems.
func (s *Store) Subscribe(fn func(State)) error {
	return s.bus.Subscribe(TopicChanged, fn)
}

// LoadItems marks the store loading, fetches the items and patches the
// result in. On failure the previous items are kept and Error is set.
// Overlapping calls are not coalesced: whichever finishes last wins.
// The fetch is not cancelled by ctx.
func (s *Store) LoadItems(ctx context.Context) State {
	s.patch(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	fetched, err := s.lister.ListItems(context.WithoutCancel(ctx))
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = FallbackError
		}

		logger.Warn("item load failed", map[string]any{
			"error": msg,
		})

		return s.patch(func(st *State) {
			st.IsLoading = false
			st.Error = msg
		})
	}

	items := make([]api.Item, len(fetched))
	copy(items, fetched)

	return s.patch(func(st *State) {
		st.Items = items
		st.IsLoading = false
		st.Error = ""
	})
}

// Retry re-runs LoadItems.
func (s *Store) Retry(ctx context.Context) State {
	return s.LoadItems(ctx)
}

func (s *Store) patch(fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	next := s.state.clone()
	s.bus.Publish(TopicChanged, next)
	return next
}

func (st State) clone() State {
	out := st
	if st.Items != nil {
		out.Items = make([]api.Item, len(st.Items))
		copy(out.Items, st.Items)
	}
	return out
}
