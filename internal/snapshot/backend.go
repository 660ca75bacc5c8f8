package snapshot

import (
	"context"
	"fmt"

	"github.com/gofiber/storage/redis/v3"

	"ghfavorites/internal/config"
	"ghfavorites/internal/db"
)

// New opens the backend selected by cfg.SnapshotBackend.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.SnapshotBackend {
	case config.BackendFile:
		return NewFileStore(cfg.SnapshotPath), nil

	case config.BackendRedis:
		storage := redis.New(redis.Config{
			URL: cfg.RedisURL,
		})
		return NewKVStore(storage, cfg.SnapshotKey), nil

	case config.BackendPostgres:
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return NewPostgresStore(database, cfg.SnapshotKey), nil

	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
