package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"item-portal/internal/app"
	"item-portal/internal/config"
	"item-portal/internal/logger"
)

// portal serves the login, dashboard and list views over the shared session,
// with the mock API on its own port when MOCKAPI_ENABLED is set.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Fatal("http server failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("item-portal started", map[string]any{
		"port":     cfg.App.Port,
		"api_mode": cfg.API.Mode,
		"store":    cfg.Store.Driver,
		"mock_api": cfg.MockAPI.Enabled,
	})

	<-ctx.Done()

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("item-portal stopped cleanly", nil)
}
