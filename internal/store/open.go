package store

import (
	"context"
	"fmt"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/config"
)

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (UserStore, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewInMemoryStore(), nil
	case config.BackendRedis:
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := NewSQLiteStore(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
