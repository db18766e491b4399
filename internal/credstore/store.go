// Package credstore persists the small string credentials the portal keeps
// between restarts (session token, account email), each with an expiry.
package credstore

import (
	"context"
	"errors"
)

var (
	ErrInvalidKey    = errors.New("credstore: empty entry name")
	ErrInvalidExpiry = errors.New("credstore: expiry must be positive")
)

// Store defines how credential entries are stored and retrieved.
// A missing or expired entry reads as "" with a nil error.
type Store interface {
	Get(ctx context.Context, name string, opts Options) (string, error)
	Set(ctx context.Context, name, value string, opts Options) error
	Delete(ctx context.Context, name string, opts Options) error
}
