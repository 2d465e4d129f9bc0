package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

const historyTable = "notification_history"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore persists the notification history in Postgres. Save replaces
// the table contents in one transaction, so concurrent readers never observe
// a partially written history.
type PostgresStore struct {
	db *sql.DB
}

var _ ports.HistoryStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the history table when absent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	query := `CREATE TABLE IF NOT EXISTS notification_history (
		hackathon_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		last_tier TEXT NOT NULL,
		last_notified_at TIMESTAMPTZ NOT NULL
	)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// Load reads the full history map.
func (s *PostgresStore) Load(ctx context.Context) (domain.History, error) {
	if s.db == nil {
		return domain.History{}, nil
	}

	query, args, err := psql.
		Select("hackathon_id", "name", "last_tier", "last_notified_at").
		From(historyTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	history := domain.History{}
	for rows.Next() {
		var (
			id, name, tier string
			notifiedAt     time.Time
		)
		if err := rows.Scan(&id, &name, &tier, &notifiedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history[id] = domain.HistoryEntry{
			LastNotifiedAt: notifiedAt.UTC(),
			LastTier:       domain.Tier(tier),
			Name:           name,
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}
	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return history, nil
}

// Save replaces the stored history with the given map.
func (s *PostgresStore) Save(ctx context.Context, history domain.History) error {
	if s.db == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	del, delArgs, err := psql.Delete(historyTable).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, del, delArgs...); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	if len(history) > 0 {
		ins := psql.Insert(historyTable).
			Columns("hackathon_id", "name", "last_tier", "last_notified_at")
		for id, entry := range history {
			ins = ins.Values(id, entry.Name, string(entry.LastTier), entry.LastNotifiedAt.UTC())
		}

		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
