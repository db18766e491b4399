package app

import (
	"context"
	"fmt"

	"item-portal/internal/api"
	"item-portal/internal/auth"
	"item-portal/internal/config"
	"item-portal/internal/credstore"
	"item-portal/internal/events"
	"item-portal/internal/items"
	"item-portal/internal/middleware"
	"item-portal/internal/mockapi"
	"item-portal/internal/nav"
)

// Core is the single owned context of the portal. Every component receives
// its collaborators from here; nothing is package-global.
type Core struct {
	Bus    *events.Bus
	Client api.Client
	Auth   *auth.Service
	Router *nav.Router
	Items  *items.Store
}

// NewCore restores the session from store and registers the routes.
// Close releases the event dispatcher.
func NewCore(ctx context.Context, cfg *config.Config, store credstore.Store, client api.Client) *Core {
	bus := events.New()
	router := nav.NewRouter(bus)

	authService := auth.NewService(
		ctx,
		store,
		auth.NewState(bus),
		client,
		router,
		auth.WithCredentialTTL(cfg.Auth.CredentialTTL),
	)

	guard := middleware.RequireAuth(authService.State(), router)
	router.Register(nav.PathLogin)
	router.Register(nav.PathDashboard, guard)
	router.Register(nav.PathList, guard)

	if httpClient, ok := client.(*api.HTTPClient); ok {
		httpClient.SetTokenSource(authService.GetToken)
	}

	return &Core{
		Bus:    bus,
		Client: client,
		Auth:   authService,
		Router: router,
		Items:  items.NewStore(client, bus),
	}
}

// Close delivers pending notifications and stops the event dispatcher.
func (c *Core) Close() {
	c.Bus.Close()
}

// setupClient picks the API transport. The mock backend is returned too so
// the embedded mock API server can serve it.
func setupClient(cfg *config.Config) (api.Client, *mockapi.Backend, error) {
	var backend *mockapi.Backend
	if cfg.API.Mode == config.APIModeInProcess || cfg.MockAPI.Enabled {
		b, err := newBackend(cfg)
		if err != nil {
			return nil, nil, err
		}
		backend = b
	}

	switch cfg.API.Mode {
	case config.APIModeHTTP:
		return api.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout), backend, nil
	case config.APIModeInProcess:
		return backend, backend, nil
	default:
		return nil, nil, fmt.Errorf("unknown api mode %q", cfg.API.Mode)
	}
}

func newBackend(cfg *config.Config) (*mockapi.Backend, error) {
	return mockapi.NewBackend(mockapi.Options{
		LoginLatency: cfg.MockAPI.LoginLatency,
		ItemsLatency: cfg.MockAPI.ItemsLatency,
	})
}
