// Package nav is the portal's symbolic router: it tracks the active view
// and consults per-route guards before activating one.
package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"item-portal/internal/events"
)

const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathList      = "/list"

	// TopicNavigated is published with the new path after each activation.
	TopicNavigated = "nav:changed"
)

var ErrUnknownRoute = errors.New("nav: unknown route")

// Guard decides whether path may be activated. A guard may navigate
// elsewhere before returning false.
type Guard func(ctx context.Context, path string) bool

type Router struct {
	mu      sync.RWMutex
	routes  map[string][]Guard
	current string
	bus     *events.Bus
}

// NewRouter starts on the login view.
func NewRouter(bus *events.Bus) *Router {
	return &Router{
		routes:  make(map[string][]Guard),
		current: PathLogin,
		bus:     bus,
	}
}

// Register declares path with the guards that must all allow entry.
func (r *Router) Register(path string, guards ...Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = append([]Guard(nil), guards...)
}

// Navigate runs the route's guards in order and activates path if all of
// them allow it. Guards run without the router lock so they can redirect.
func (r *Router) Navigate(ctx context.Context, path string) (bool, error) {
	r.mu.RLock()
	guards, ok := r.routes[path]
	r.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	for _, g := range guards {
		if !g(ctx, path) {
			return false, nil
		}
	}

	r.mu.Lock()
	r.current = path
	r.bus.Publish(TopicNavigated, path)
	r.mu.Unlock()

	return true, nil
}

// Current returns the last activated path.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Subscribe registers fn for every activation.
func (r *Router) Subscribe(fn func(path string)) error {
	return r.bus.Subscribe(TopicNavigated, fn)
}
