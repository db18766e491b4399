package items

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"item-portal/internal/api"
	"item-portal/internal/events"
	"item-portal/internal/mockapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleItems = []api.Item{
	{ID: 1, Name: "Item One", Description: "First"},
	{ID: 2, Name: "Item Two", Description: "Second"},
}

type result struct {
	items []api.Item
	err   error
}

// scriptedLister answers each call with the next scripted result. A call
// blocks until its gate (if any) is released.
type scriptedLister struct {
	mu      sync.Mutex
	results []result
	gates   []chan struct{}
	calls   int
	started chan int
}

func (s *scriptedLister) ListItems(context.Context) ([]api.Item, error) {
	s.mu.Lock()
	n := s.calls
	s.calls++
	var gate chan struct{}
	if n < len(s.gates) {
		gate = s.gates[n]
	}
	s.mu.Unlock()

	if s.started != nil {
		s.started <- n
	}
	if gate != nil {
		<-gate
	}
	r := s.results[n]
	return r.items, r.err
}

func newBus(t *testing.T) *events.Bus {
	t.Helper()
	bus := events.New()
	t.Cleanup(bus.Close)
	return bus
}

func newStore(t *testing.T, results ...result) (*Store, *scriptedLister) {
	t.Helper()
	l := &scriptedLister{results: results}
	return NewStore(l, newBus(t)), l
}

func TestStore_InitialState(t *testing.T) {
	s, _ := newStore(t)

	st := s.State()
	assert.Empty(t, st.Items)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
}

func TestLoadItems_Success(t *testing.T) {
	s, l := newStore(t, result{items: sampleItems})

	st := s.LoadItems(context.Background())

	assert.Equal(t, 1, l.calls)
	assert.Equal(t, sampleItems, st.Items)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
	assert.Equal(t, st, s.State())
}

func TestLoadItems_SetsLoadingBeforeFetch(t *testing.T) {
	gate := make(chan struct{})
	l := &scriptedLister{
		results: []result{{items: sampleItems}},
		gates:   []chan struct{}{gate},
		started: make(chan int, 1),
	}
	s := NewStore(l, newBus(t))

	done := make(chan State)
	go func() { done <- s.LoadItems(context.Background()) }()

	<-l.started
	mid := s.State()
	assert.True(t, mid.IsLoading)
	assert.Empty(t, mid.Error)

	close(gate)
	final := <-done
	assert.False(t, final.IsLoading)
}

func TestLoadItems_FailureKeepsItems(t *testing.T) {
	s, _ := newStore(t,
		result{items: sampleItems},
		result{err: errors.New("Network error")},
	)

	s.LoadItems(context.Background())
	before := s.State().Items

	st := s.LoadItems(context.Background())

	assert.Equal(t, before, st.Items)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "Network error", st.Error)
}

func TestLoadItems_FallbackMessage(t *testing.T) {
	s, _ := newStore(t, result{err: errors.New("")})

	st := s.LoadItems(context.Background())

	assert.False(t, st.IsLoading)
	assert.Equal(t, FallbackError, st.Error)
	assert.Equal(t, "Failed to load items", st.Error)
	assert.Empty(t, st.Items)
}

func TestLoadItems_ClearsErrorOnNewLoad(t *testing.T) {
	s, _ := newStore(t,
		result{err: errors.New("first failure")},
		result{items: sampleItems},
	)

	var seen []State
	require.NoError(t, s.Subscribe(func(st State) { seen = append(seen, st) }))

	s.LoadItems(context.Background())
	st := s.Retry(context.Background())
	s.bus.Flush()

	assert.Empty(t, st.Error)
	require.Len(t, seen, 4)
	assert.True(t, seen[2].IsLoading)
	assert.Empty(t, seen[2].Error)
}

func TestLoadItems_LoadingImpliesNoError(t *testing.T) {
	s, _ := newStore(t,
		result{err: errors.New("a")},
		result{items: sampleItems},
		result{err: errors.New("")},
	)

	var seen []State
	require.NoError(t, s.Subscribe(func(st State) { seen = append(seen, st) }))

	for i := 0; i < 3; i++ {
		s.LoadItems(context.Background())
	}
	s.bus.Flush()

	require.Len(t, seen, 6)
	for _, st := range seen {
		if st.IsLoading {
			assert.Empty(t, st.Error)
		}
	}
}

func TestLoadItems_LastToCompleteWins(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	newer := []api.Item{{ID: 9, Name: "Newer", Description: "second call"}}
	l := &scriptedLister{
		results: []result{{items: sampleItems}, {items: newer}},
		gates:   []chan struct{}{first, second},
		started: make(chan int, 2),
	}
	s := NewStore(l, newBus(t))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.LoadItems(context.Background()) }()
	<-l.started
	go func() { defer wg.Done(); s.LoadItems(context.Background()) }()
	<-l.started

	// second call resolves first, then the older call overwrites it
	close(second)
	require.Eventually(t, func() bool {
		return len(s.State().Items) == 1
	}, time.Second, time.Millisecond)
	close(first)
	wg.Wait()

	assert.Equal(t, sampleItems, s.State().Items)
	assert.False(t, s.State().IsLoading)
}

func TestLoadItems_ReturnsCopies(t *testing.T) {
	s, _ := newStore(t, result{items: []api.Item{{ID: 1, Name: "a", Description: "b"}}})

	st := s.LoadItems(context.Background())
	st.Items[0].Name = "mutated"

	assert.Equal(t, "a", s.State().Items[0].Name)
}

func TestLoadItems_MockBackend(t *testing.T) {
	backend, err := mockapi.NewBackend(mockapi.Options{ItemsLatency: 10 * time.Millisecond})
	require.NoError(t, err)
	s := NewStore(backend, newBus(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := s.LoadItems(ctx)
	require.Empty(t, st.Error)
	require.Len(t, st.Items, 5)
	for i, it := range st.Items {
		assert.Equal(t, i+1, it.ID)
	}
}

func TestState_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(State{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"isLoading":false,"error":null}`, string(b))

	b, err = json.Marshal(State{Items: sampleItems[:1], Error: FallbackError})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"items":[{"id":1,"name":"Item One","description":"First"}],
		"isLoading":false,
		"error":"Failed to load items"
	}`, string(b))
}

func TestLoadItems_SubscriberMayReload(t *testing.T) {
	s, l := newStore(t,
		result{err: errors.New("Network error")},
		result{items: sampleItems},
	)

	var seen []State
	require.NoError(t, s.Subscribe(func(st State) {
		seen = append(seen, st)
		if st.Error != "" {
			s.Retry(context.Background())
		}
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.LoadItems(context.Background())
		s.bus.Flush()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("a subscriber that reloads blocked the store")
	}

	assert.Equal(t, 2, l.calls)
	assert.Equal(t, sampleItems, s.State().Items)
	assert.Empty(t, s.State().Error)
	require.Len(t, seen, 4)
	assert.Equal(t, "Network error", seen[1].Error)
	assert.Equal(t, sampleItems, seen[3].Items)
}
