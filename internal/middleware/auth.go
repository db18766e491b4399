package middleware

import (
	"context"

	"item-portal/internal/logger"
	"item-portal/internal/nav"
)

// SessionReader is the read side of the portal session.
type SessionReader interface {
	IsAuthenticated() bool
}

// Navigator moves the portal to a symbolic route.
type Navigator interface {
	Navigate(ctx context.Context, path string) (bool, error)
}

// RequireAuth returns the route guard for protected views. It reads the
// session at call time and, when signed out, redirects to the login view
// and denies entry. Redirect failures are logged and never reach the caller.
func RequireAuth(session SessionReader, navigator Navigator) nav.Guard {
	return func(ctx context.Context, path string) bool {
		if session.IsAuthenticated() {
			return true
		}

		logger.Debug("guard denied navigation", map[string]any{
			"path": path,
		})

		if _, err := navigator.Navigate(ctx, nav.PathLogin); err != nil {
			logger.Warn("guard redirect failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}

		return false
	}
}
