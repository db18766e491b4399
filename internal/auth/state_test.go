package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"item-portal/internal/credstore"
	"item-portal/internal/events"
	"item-portal/internal/nav"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus(t *testing.T) *events.Bus {
	t.Helper()
	bus := events.New()
	t.Cleanup(bus.Close)
	return bus
}

func TestState_PublishesChanges(t *testing.T) {
	bus := newBus(t)
	state := NewState(bus)

	var seen []Session
	require.NoError(t, state.Subscribe(func(s Session) {
		seen = append(seen, s)
	}))

	state.signIn("user@example.com")
	state.reset()
	bus.Flush()

	assert.Equal(t, []Session{
		{Authenticated: true, UserEmail: "user@example.com"},
		{},
	}, seen)
}

func TestState_UserEmail(t *testing.T) {
	state := NewState(newBus(t))

	_, ok := state.UserEmail()
	assert.False(t, ok)

	state.signIn("user@example.com")

	email, ok := state.UserEmail()
	assert.True(t, ok)
	assert.Equal(t, "user@example.com", email)
	assert.True(t, state.IsAuthenticated())
}

func TestState_SubscriberMayNavigate(t *testing.T) {
	bus := newBus(t)
	ctx := context.Background()

	router := nav.NewRouter(bus)
	state := NewState(bus)
	router.Register(nav.PathLogin)
	router.Register(nav.PathDashboard, func(context.Context, string) bool {
		return state.IsAuthenticated()
	})

	var (
		mu    sync.Mutex
		paths []string
	)
	require.NoError(t, router.Subscribe(func(p string) {
		mu.Lock()
		paths = append(paths, p)
		mu.Unlock()
	}))
	require.NoError(t, state.Subscribe(func(s Session) {
		if s.Authenticated {
			_, _ = router.Navigate(ctx, nav.PathDashboard)
		}
	}))

	svc := NewService(ctx, credstore.NewMemoryStore(), state, &fakeClient{}, router)

	done := make(chan struct{})
	go func() {
		defer close(done)
		state.signIn("user@example.com")
		bus.Flush()
		svc.Logout(ctx)
		bus.Flush()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("a subscriber that navigates on session change blocked the portal")
	}

	assert.Equal(t, nav.PathLogin, router.Current())
	assert.False(t, state.IsAuthenticated())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{nav.PathDashboard, nav.PathLogin}, paths)
}

func TestState_SubscriberMayChangeSession(t *testing.T) {
	bus := newBus(t)
	state := NewState(bus)

	var seen []Session
	require.NoError(t, state.Subscribe(func(s Session) {
		seen = append(seen, s)
		if s.Authenticated {
			state.reset()
		}
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		state.signIn("user@example.com")
		bus.Flush()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("a subscriber that changes the session blocked the portal")
	}

	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, []Session{
		{Authenticated: true, UserEmail: "user@example.com"},
		{},
	}, seen)
}
