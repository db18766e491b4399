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

// mockapi serves the simulated login and items endpoints on their own port.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewMockAPI(cfg)
	if err != nil {
		logger.Fatal("failed to initialize mock api", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Fatal("mock api server failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("mock api started", map[string]any{"port": cfg.MockAPI.Port})

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("mock api stopped", nil)
}
