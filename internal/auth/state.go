package auth

import (
	"sync"

	"item-portal/internal/events"
)

// TopicSessionChanged is published with the new Session after every change.
const TopicSessionChanged = "session:changed"

// Session is the in-memory authentication state of the portal.
// UserEmail is non-empty only while Authenticated is true.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	UserEmail     string `json:"userEmail,omitempty"`
}

// State holds the current Session. Only Service mutates it; everything else
// reads snapshots or subscribes to TopicSessionChanged.
type State struct {
	mu      sync.RWMutex
	session Session
	bus     *events.Bus
}

func NewState(bus *events.Bus) *State {
	return &State{bus: bus}
}

// Snapshot returns the Session as of the call.
func (s *State) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *State) IsAuthenticated() bool {
	return s.Snapshot().Authenticated
}

// UserEmail returns the signed-in email, if any.
func (s *State) UserEmail() (string, bool) {
	sess := s.Snapshot()
	return sess.UserEmail, sess.UserEmail != ""
}

// Subscribe registers fn for every Session change.
func (s *State) Subscribe(fn func(Session)) error {
	return s.bus.Subscribe(TopicSessionChanged, fn)
}

func (s *State) signIn(email string) {
	s.replace(Session{Authenticated: true, UserEmail: email})
}

func (s *State) reset() {
	s.replace(Session{})
}

func (s *State) replace(next Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = next
	s.bus.Publish(TopicSessionChanged, next)
}
