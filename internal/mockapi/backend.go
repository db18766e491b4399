// Package mockapi simulates the remote API the portal logs in against and
// lists items from. It can be called in-process or served over HTTP.
package mockapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"item-portal/internal/api"
	"item-portal/internal/logger"
	"item-portal/internal/mockapi/credentials"
	"item-portal/internal/utils"

	"gopkg.in/yaml.v3"
)

const (
	TokenPrefix = "mock-token-"

	DefaultLoginLatency = 1000 * time.Millisecond
	DefaultItemsLatency = 800 * time.Millisecond
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the static data the backend serves.
type Fixtures struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Items []api.Item `yaml:"items"`
}

// ParseFixtures decodes and checks a fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mockapi: parse fixtures: %w", err)
	}

	seen := make(map[int]bool, len(f.Items))
	for _, it := range f.Items {
		if it.ID <= 0 {
			return nil, fmt.Errorf("mockapi: item id must be positive (got %d)", it.ID)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("mockapi: duplicate item id %d", it.ID)
		}
		if it.Name == "" || it.Description == "" {
			return nil, fmt.Errorf("mockapi: item %d has empty name or description", it.ID)
		}
		seen[it.ID] = true
	}

	return &f, nil
}

// DefaultFixtures returns the embedded two-user, five-item data set.
func DefaultFixtures() *Fixtures {
	f, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return f
}

type Options struct {
	LoginLatency time.Duration
	ItemsLatency time.Duration
	Fixtures     *Fixtures
}

// Backend implements api.Client against fixed fixtures, delaying every
// answer by a configured latency.
type Backend struct {
	users        *credentials.AllowList
	items        []api.Item
	loginLatency time.Duration
	itemsLatency time.Duration
	now          func() time.Time
}

func NewBackend(opts Options) (*Backend, error) {
	fx := opts.Fixtures
	if fx == nil {
		fx = DefaultFixtures()
	}

	pairs := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		if _, dup := pairs[u.Email]; dup {
			return nil, fmt.Errorf("mockapi: duplicate user %s", u.Email)
		}
		pairs[u.Email] = u.Password
	}

	users, err := credentials.NewAllowList(pairs)
	if err != nil {
		return nil, err
	}

	items := make([]api.Item, len(fx.Items))
	copy(items, fx.Items)

	return &Backend{
		users:        users,
		items:        items,
		loginLatency: opts.LoginLatency,
		itemsLatency: opts.ItemsLatency,
		now:          time.Now,
	}, nil
}

func (b *Backend) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	if err := wait(ctx, b.loginLatency); err != nil {
		return nil, err
	}

	email, err := b.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			return nil, api.ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := b.newToken()
	if err != nil {
		return nil, fmt.Errorf("mockapi: token: %w", err)
	}

	logger.Debug("mock login accepted", map[string]any{
		"email": email,
	})

	return &api.LoginResponse{
		Token: token,
		User:  api.User{Email: email},
	}, nil
}

func (b *Backend) ListItems(ctx context.Context) ([]api.Item, error) {
	if err := wait(ctx, b.itemsLatency); err != nil {
		return nil, err
	}

	out := make([]api.Item, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *Backend) newToken() (string, error) {
	suffix, err := utils.RandomString(8)
	if err != nil {
		return "", err
	}
	return TokenPrefix + suffix + strconv.FormatInt(b.now().UnixMilli(), 10), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
