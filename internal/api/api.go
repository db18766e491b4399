// Package api defines the contract between the portal core and the
// simulated network API, plus the wire types both sides exchange.
package api

import (
	"context"
	"errors"
	"fmt"
)

const (
	LoginPath = "/api/login"
	ItemsPath = "/api/items"
)

// ErrInvalidCredentials is returned by Login when the email/password pair is
// not on the allow-list. Its message is shown to the user verbatim.
var ErrInvalidCredentials = errors.New("Invalid credentials") //nolint:staticcheck // user-facing message

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Item is immutable once fetched.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Client is the network boundary consumed by the authentication service and
// the item load state machine. Both calls may block for an arbitrary time.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ListItems(ctx context.Context) ([]Item, error)
}

// StatusError reports a non-2xx API response other than a credential mismatch.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Status)
	}
	return e.Message
}

// ErrorResponse is the JSON body the API sends with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
