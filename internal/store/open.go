package store

import (
	"context"
	"fmt"

	"fambalance/internal/config"
	"fambalance/internal/database"
)

// Open builds the store selected by cfg: in-memory, or SQL with migrations
// applied. A positive CacheSize puts an LRU in front. The returned close
// function releases the database connection, if any.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	var (
		s       Store
		closeFn = func() error { return nil }
	)

	if cfg.UsesDatabase() {
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if _, err := db.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s = NewSQLStore(db)
		closeFn = db.Close
	} else {
		s = NewMemoryStore()
	}

	if cfg.CacheSize > 0 {
		cached, err := NewCachedStore(s, cfg.CacheSize)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("failed to create cache: %w", err)
		}
		s = cached
	}

	return s, closeFn, nil
}
