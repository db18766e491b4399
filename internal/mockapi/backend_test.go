package mockapi

import (
	"context"
	"strings"
	"testing"
	"time"

	"item-portal/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := NewBackend(Options{})
	require.NoError(t, err)
	return b
}

func TestBackendLogin_ValidCredentials(t *testing.T) {
	b := newTestBackend(t)

	res, err := b.Login(context.Background(), api.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Token, TokenPrefix))
	assert.Equal(t, "user@example.com", res.User.Email)
}

func TestBackendLogin_AdminCredentials(t *testing.T) {
	b := newTestBackend(t)

	res, err := b.Login(context.Background(), api.LoginRequest{
		Email:    "admin@example.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", res.User.Email)
}

func TestBackendLogin_Rejects(t *testing.T) {
	b := newTestBackend(t)

	cases := []api.LoginRequest{
		{Email: "x@x.com", Password: "bad"},
		{Email: "user@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "password123"},
	}
	for _, req := range cases {
		_, err := b.Login(context.Background(), req)
		require.ErrorIs(t, err, api.ErrInvalidCredentials)
		assert.Equal(t, "Invalid credentials", err.Error())
	}
}

func TestBackendLogin_UniqueTokens(t *testing.T) {
	b := newTestBackend(t)
	req := api.LoginRequest{Email: "user@example.com", Password: "password123"}

	first, err := b.Login(context.Background(), req)
	require.NoError(t, err)
	second, err := b.Login(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestBackendLogin_Latency(t *testing.T) {
	b, err := NewBackend(Options{LoginLatency: 30 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = b.Login(context.Background(), api.LoginRequest{Email: "x@x.com", Password: "bad"})
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestBackendListItems(t *testing.T) {
	b := newTestBackend(t)

	items, err := b.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 5)

	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
		assert.NotEmpty(t, it.Name)
		assert.NotEmpty(t, it.Description)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, "Item One", items[0].Name)
}

func TestBackendListItems_ReturnsCopies(t *testing.T) {
	b := newTestBackend(t)

	first, err := b.ListItems(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := b.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Item One", second[0].Name)
}

func TestBackendListItems_ContextCanceled(t *testing.T) {
	b, err := NewBackend(Options{ItemsLatency: time.Minute})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.ListItems(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseFixtures_Invalid(t *testing.T) {
	tests := map[string]string{
		"non-positive id": "items:\n  - {id: 0, name: a, description: b}\n",
		"duplicate id":    "items:\n  - {id: 1, name: a, description: b}\n  - {id: 1, name: c, description: d}\n",
		"empty name":      "items:\n  - {id: 1, name: \"\", description: b}\n",
		"bad yaml":        "items: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestNewBackend_OverlongPassword(t *testing.T) {
	long := strings.Repeat("p", 73)
	fx, err := ParseFixtures([]byte("users:\n  - {email: a@b.c, password: " + long + "}\n"))
	require.NoError(t, err)

	_, err = NewBackend(Options{Fixtures: fx})
	assert.Error(t, err)
}
