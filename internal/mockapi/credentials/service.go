package credentials

import (
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is one allow-listed email/password pair, stored hashed.
type Account struct {
	Email        string
	PasswordHash string
	HashVersion  string
}

// AllowList verifies logins against a fixed set of accounts.
// It is immutable after construction and safe for concurrent use.
type AllowList struct {
	accounts map[string]Account
}

// NewAllowList hashes every plaintext password up front.
// Emails must be unique.
func NewAllowList(pairs map[string]string) (*AllowList, error) {
	accounts := make(map[string]Account, len(pairs))

	for email, password := range pairs {
		if email == "" {
			return nil, errors.New("credentials: empty email in allow-list")
		}

		hash, version, err := hashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("credentials: hash %s: %w", email, err)
		}

		accounts[email] = Account{
			Email:        email,
			PasswordHash: hash,
			HashVersion:  version,
		}
	}

	return &AllowList{accounts: accounts}, nil
}

// Authenticate returns the canonical email for a matching pair.
// Email comparison is exact, like the password check.
func (l *AllowList) Authenticate(email string, password string) (string, error) {
	acc, ok := l.accounts[email]
	if !ok {
		// hide whether the account exists or not
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(acc, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return acc.Email, nil
}

// Len reports the number of allow-listed accounts.
func (l *AllowList) Len() int {
	return len(l.accounts)
}
