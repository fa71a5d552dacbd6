package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront-service/config"
	"storefront-service/database"
	"storefront-service/repository"
)

// openStore connects the account and cart backend selected by STORE_BACKEND.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(client), nil

	case config.BackendPostgres:
		db, err := database.ConnectPostgres(cfg.PostgresDSN(), log)
		if err != nil {
			return nil, err
		}
		store := repository.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("Database migrated")
		return store, nil

	case config.BackendFile:
		log.Info("Using flat-file store", zap.String("path", cfg.DBPath))
		store, err := repository.NewFileStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
