package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

const historyKey = "hackwatch:history"

// RedisStore keeps the notification history in a single Redis hash, one
// JSON-encoded entry per hackathon ID.
type RedisStore struct {
	client *redis.Client
}

var _ ports.HistoryStore = (*RedisStore)(nil)

// NewRedisStore wires a connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load reads the full history hash.
func (s *RedisStore) Load(ctx context.Context) (domain.History, error) {
	if s.client == nil {
		return domain.History{}, nil
	}

	fields, err := s.client.HGetAll(ctx, historyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read history hash: %w", err)
	}

	history := make(domain.History, len(fields))
	for id, raw := range fields {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry %s: %w", id, err)
		}
		history[id] = entry
	}
	return history, nil
}

// Save replaces the history hash in one transaction: delete, then rewrite.
func (s *RedisStore) Save(ctx context.Context, history domain.History) error {
	if s.client == nil {
		return nil
	}

	values := make(map[string]string, len(history))
	for id, entry := range history {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode history entry %s: %w", id, err)
		}
		values[id] = string(raw)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, historyKey)
	if len(values) > 0 {
		pipe.HSet(ctx, historyKey, values)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write history hash: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
