// Package auth owns the portal's session: it logs in through the API client,
// persists the returned credentials and exposes the resulting Session.
package auth

import (
	"context"
	"time"

	"item-portal/internal/api"
	"item-portal/internal/credstore"
	"item-portal/internal/logger"
)

const (
	TokenKey     = "auth_token"
	UserEmailKey = "user_email"

	DefaultCredentialTTL = 7 * 24 * time.Hour

	LoginPath = "/login"
)

// Navigator moves the portal to a symbolic route.
type Navigator interface {
	Navigate(ctx context.Context, path string) (bool, error)
}

type Service struct {
	store     credstore.Store
	state     *State
	client    api.Client
	navigator Navigator
	ttl       time.Duration
}

type Option func(*Service)

// WithCredentialTTL overrides the 7 day credential lifetime.
func WithCredentialTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewService restores the Session from the store: it is authenticated only
// when both the token and the email are present. A partial record is left in
// place and treated as signed out.
func NewService(
	ctx context.Context,
	store credstore.Store,
	state *State,
	client api.Client,
	navigator Navigator,
	opts ...Option,
) *Service {
	s := &Service{
		store:     store,
		state:     state,
		client:    client,
		navigator: navigator,
		ttl:       DefaultCredentialTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.restore(ctx)
	return s
}

func (s *Service) restore(ctx context.Context) {
	token, err := s.GetToken(ctx)
	if err != nil {
		logger.Warn("credential store unreadable, starting signed out", map[string]any{
			"error": err.Error(),
		})
		return
	}

	email, err := s.store.Get(ctx, UserEmailKey, s.scope())
	if err != nil {
		logger.Warn("credential store unreadable, starting signed out", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if token == "" || email == "" {
		if token != "" || email != "" {
			logger.Warn("partial credential record ignored", map[string]any{
				"token_present": token != "",
				"email_present": email != "",
			})
		}
		return
	}

	s.state.signIn(email)
	logger.Info("session restored", map[string]any{
		"email": email,
	})
}

func (s *Service) scope() credstore.Options {
	return credstore.Options{Path: credstore.DefaultPath, Expires: s.ttl}
}

// State exposes the Session for reading and subscription.
func (s *Service) State() *State {
	return s.state
}

// Login verifies credentials with the API and, on success, persists the
// token and email and marks the Session authenticated. API errors are
// returned unchanged and leave the Session as it was. The call is not
// cancelled by ctx.
func (s *Service) Login(ctx context.Context, req api.LoginRequest) (Session, error) {
	ctx = context.WithoutCancel(ctx)

	res, err := s.client.Login(ctx, req)
	if err != nil {
		logger.Info("login failed", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		return Session{}, err
	}

	if err := s.store.Set(ctx, TokenKey, res.Token, s.scope()); err != nil {
		return Session{}, err
	}
	if err := s.store.Set(ctx, UserEmailKey, res.User.Email, s.scope()); err != nil {
		if delErr := s.store.Delete(ctx, TokenKey, s.scope()); delErr != nil {
			logger.Error("failed to roll back token after email write failed", map[string]any{
				"error":          delErr.Error(),
				"cause":          err.Error(),
				"token_orphaned": true,
			})
		}
		return Session{}, err
	}

	s.state.signIn(res.User.Email)

	logger.Info("login succeeded", map[string]any{
		"email":         res.User.Email,
		"token_present": res.Token != "",
	})

	return s.state.Snapshot(), nil
}

// Logout clears the stored credentials and the Session, then navigates to
// the login view. It never fails; store errors are logged.
func (s *Service) Logout(ctx context.Context) {
	for _, key := range []string{TokenKey, UserEmailKey} {
		if err := s.store.Delete(ctx, key, s.scope()); err != nil {
			logger.Error("failed to clear credential", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	s.state.reset()
	logger.Info("logged out", nil)

	if s.navigator == nil {
		return
	}
	if _, err := s.navigator.Navigate(ctx, LoginPath); err != nil {
		logger.Warn("navigation after logout failed", map[string]any{
			"error": err.Error(),
		})
	}
}

// GetToken returns the stored session token, or "" when there is none.
func (s *Service) GetToken(ctx context.Context) (string, error) {
	return s.store.Get(ctx, TokenKey, s.scope())
}
