package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

// Request carries all parameters required to execute one source scrape.
// Now is the reference instant for future-deadline filtering; Options are
// free-form strategy settings from config (Devpost username, tracked-file
// path, page URL, ...).
type Request struct {
	SourceName string
	Now        time.Time
	Options    map[string]string
}

// Scraper captures a single acquisition strategy (Devpost profile, tracked
// file, generic page, ...).
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, req Request) ([]domain.Hackathon, error)
}

// Registry keeps a mapping from scraper names to their implementations.
type Registry struct {
	scrapers map[string]Scraper
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: map[string]Scraper{}}
}

// Register adds or replaces a scraper implementation.
func (r *Registry) Register(scraper Scraper) {
	if r.scrapers == nil {
		r.scrapers = map[string]Scraper{}
	}
	r.scrapers[scraper.Name()] = scraper
}

// Resolve returns a scraper by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scraper, error) {
	if scraper, ok := r.scrapers[name]; ok {
		return scraper, nil
	}
	return nil, fmt.Errorf("scraper %s is not registered", name)
}
