// Package storage provides the notification-history stores: a JSON file for
// single-machine use, Postgres and Redis for shared deployments.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

// FileStore keeps the notification history in a JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ ports.HistoryStore = (*FileStore)(nil)

// NewFileStore wires the store to a state file path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the history map. A missing file is an empty history; a corrupt
// file is logged and treated as empty rather than blocking every future run.
func (s *FileStore) Load(_ context.Context) (domain.History, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var history domain.History
	if err := json.Unmarshal(raw, &history); err != nil {
		s.warn("history file corrupt, starting fresh", "path", s.path, "error", err)
		return domain.History{}, nil
	}
	if history == nil {
		history = domain.History{}
	}
	return history, nil
}

// Save atomically replaces the history file: write a temp file, then rename
// over the old one so a crash mid-save never leaves a half-written state.
func (s *FileStore) Save(_ context.Context, history domain.History) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

func (s *FileStore) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
