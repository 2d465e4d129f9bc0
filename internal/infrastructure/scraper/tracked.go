package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/scrape"
)

// TrackedFile reads manually added hackathons from a JSON list on disk. The
// add command writes to the same file, so externally hosted events flow
// through the pipeline alongside scraped ones.
type TrackedFile struct{}

func NewTrackedFile() *TrackedFile {
	return &TrackedFile{}
}

// Name identifies the strategy inside the registry.
func (t *TrackedFile) Name() string {
	return "tracked"
}

// Scrape loads the file named by the path option. A missing file means
// nothing has been added yet, not an error.
func (t *TrackedFile) Scrape(_ context.Context, req scrape.Request) ([]domain.Hackathon, error) {
	path := strings.TrimSpace(req.Options["path"])
	if path == "" {
		return nil, fmt.Errorf("source %s: path option is required", req.SourceName)
	}
	return LoadTracked(path)
}

// LoadTracked reads the tracked-hackathons list from disk. Entries saved by
// older versions may omit the id field, in which case the URL stands in.
func LoadTracked(path string) ([]domain.Hackathon, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tracked file: %w", err)
	}

	var items []domain.Hackathon
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse tracked file %s: %w", path, err)
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = items[i].URL
		}
	}
	return items, nil
}

// Upsert inserts the hackathon into the tracked file, replacing any existing
// entry with the same URL. Reports whether a new entry was created.
func Upsert(path string, h domain.Hackathon) (bool, error) {
	items, err := LoadTracked(path)
	if err != nil {
		return false, err
	}

	created := true
	for i := range items {
		if items[i].URL == h.URL {
			items[i] = h
			created = false
			break
		}
	}
	if created {
		items = append(items, h)
	}

	if err := saveTracked(path, items); err != nil {
		return false, err
	}
	return created, nil
}

func saveTracked(path string, items []domain.Hackathon) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create tracked dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tracked file: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write tracked file: %w", err)
	}
	return nil
}
