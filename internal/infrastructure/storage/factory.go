package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq" // postgres driver
	"github.com/redis/go-redis/v9"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/config"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

// FromConfig builds the configured history store. Stores that hold a
// connection implement io.Closer; the application closes them on shutdown.
func FromConfig(ctx context.Context, cfg config.HistoryConfig, logger *slog.Logger) (ports.HistoryStore, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Path, logger), nil

	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres history backend requires a DSN")
		}
		db, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		store := NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return store, nil

	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis history backend requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(client), nil

	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.Backend)
	}
}
