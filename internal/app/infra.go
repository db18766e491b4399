package app

import (
	"context"
	"errors"
	"fmt"

	"item-portal/internal/config"
	"item-portal/internal/credstore"
	"item-portal/internal/db"
	"item-portal/internal/logger"
	"item-portal/internal/redis"
)

type Infra struct {
	Store   credstore.Store
	closers []func() error
}

func setupInfra(ctx context.Context, cfg *config.Config) (*Infra, error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		redisClient, err := redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", map[string]any{"addr": cfg.Redis.Addr})

		return &Infra{
			Store:   credstore.NewRedisStore(redisClient, cfg.Store.Prefix),
			closers: []func() error{redisClient.Close},
		}, nil

	case config.StorePostgres:
		database, err := db.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}

		if err := db.RunCredentialMigration(ctx, database.DB); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("db: migrate: %w", err)
		}

		logger.Info("database ready", nil)

		return &Infra{
			Store:   credstore.NewPostgresStore(database.DB),
			closers: []func() error{database.Close},
		}, nil

	default:
		logger.Warn("using in-memory credential store, sessions will not survive restarts", nil)
		return &Infra{Store: credstore.NewMemoryStore()}, nil
	}
}

func (i *Infra) Close() error {
	var errs []error
	for _, c := range i.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
