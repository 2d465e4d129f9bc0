package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/config"
)

func TestFromConfigDefaultsToFile(t *testing.T) {
	t.Parallel()

	store, err := FromConfig(context.Background(), config.HistoryConfig{
		Path: filepath.Join(t.TempDir(), "state.json"),
	}, nil)
	if err != nil {
		t.Fatalf("FromConfig error: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected *FileStore, got %T", store)
	}
}

func TestFromConfigValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if _, err := FromConfig(ctx, config.HistoryConfig{Backend: "postgres"}, nil); err == nil {
		t.Fatal("expected error for postgres without DSN")
	}
	if _, err := FromConfig(ctx, config.HistoryConfig{Backend: "redis"}, nil); err == nil {
		t.Fatal("expected error for redis without address")
	}
	if _, err := FromConfig(ctx, config.HistoryConfig{Backend: "etcd"}, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
