package storage

import (
	"context"
	"fmt"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/database"
)

// Open builds the backend named by cfg.Storage.Driver, wrapped in the configured namespace.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.Storage.Driver {
	case "memory":
		s = NewMemoryStore()
	case "file":
		s, err = NewFileStore(cfg.Storage.Path)
	case "sqlite":
		s, err = NewSQLiteStore(cfg.Storage.Path)
	case "redis":
		s, err = NewRedisStore(ctx, cfg.Redis)
	case "memcached":
		s, err = NewMemcachedStore(cfg.Memcached.Hosts...)
	case "postgres":
		pool, connErr := database.Connect(ctx, cfg.Database)
		if connErr != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", connErr)
		}
		s, err = NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return Prefixed(s, cfg.Storage.Namespace), nil
}
