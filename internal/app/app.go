package app

import (
	"context"
	"errors"
	"net/http"

	"item-portal/internal/config"
	"item-portal/internal/logger"

	"golang.org/x/sync/errgroup"
)

type App struct {
	servers []*http.Server
	Core    *Core
	cleanup func() error
}

// New builds the portal and, when enabled, the embedded mock API server.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	setGinMode(cfg)

	client, backend, err := setupClient(cfg)
	if err != nil {
		return nil, err
	}

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	core := NewCore(ctx, cfg, infra.Store, client)

	router, err := setupPortalHTTP(core)
	if err != nil {
		core.Close()
		_ = infra.Close()
		return nil, err
	}

	servers := []*http.Server{{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}}

	if cfg.MockAPI.Enabled {
		servers = append(servers, &http.Server{
			Addr:    ":" + cfg.MockAPI.Port,
			Handler: setupMockAPIHTTP(cfg, backend),
		})
	}

	cleanup := func() error {
		core.Close()
		return infra.Close()
	}

	return &App{
		servers: servers,
		Core:    core,
		cleanup: cleanup,
	}, nil
}

// NewMockAPI builds an App serving only the mock API.
func NewMockAPI(cfg *config.Config) (*App, error) {
	setGinMode(cfg)

	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		servers: []*http.Server{{
			Addr:    ":" + cfg.MockAPI.Port,
			Handler: setupMockAPIHTTP(cfg, backend),
		}},
	}, nil
}

// Run serves every server until one of them fails or all are shut down.
func (a *App) Run() error {
	var g errgroup.Group

	for _, srv := range a.servers {
		srv := srv
		g.Go(func() error {
			logger.Info("http server listening", map[string]any{"addr": srv.Addr})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range a.servers {
		errs = append(errs, srv.Shutdown(ctx))
	}
	if a.cleanup != nil {
		errs = append(errs, a.cleanup())
	}
	return errors.Join(errs...)
}
