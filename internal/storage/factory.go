package storage

import (
	"fmt"
	"log/slog"

	"github.com/villagesim/npc-engine/internal/config"
)

// Open creates the Store named by the configuration.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return NewMockStore(), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr, 0, logger), nil
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (available: memory, redis, sqlite)", cfg.StorageBackend)
	}
}
