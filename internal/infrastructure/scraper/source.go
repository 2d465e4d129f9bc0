package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/config"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/metrics"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/scrape"
)

// StrategySource implements HackathonSource via registered scraper
// strategies.
type StrategySource struct {
	registry *scrape.Registry
	sources  []config.SourceConfig
	recorder *metrics.Recorder
	logger   *slog.Logger
}

var _ ports.HackathonSource = (*StrategySource)(nil)

// NewStrategySource wires the scraper registry with config-defined sources.
func NewStrategySource(reg *scrape.Registry, sources []config.SourceConfig, rec *metrics.Recorder, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		recorder: rec,
		logger:   log,
	}
}

// FetchActive runs every configured source and merges the results,
// deduplicating by ID. One failing source is logged and skipped so the
// remaining sources still produce alerts; the fetch as a whole fails only
// when every source fails.
func (s *StrategySource) FetchActive(ctx context.Context) ([]domain.Hackathon, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scraper registry is not configured")
	}

	s.debug("fetch active", "sources", len(s.sources))

	var (
		aggregated []domain.Hackathon
		seen       = map[string]struct{}{}
		failures   int
		lastErr    error
	)

	now := time.Now()
	for _, src := range s.sources {
		strategy, err := s.registry.Resolve(src.Scraper)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}

		req := scrape.Request{
			SourceName: src.Name,
			Now:        now,
			Options:    src.Options,
		}

		results, err := strategy.Scrape(ctx, req)
		if err != nil {
			failures++
			lastErr = fmt.Errorf("source %s: %w", src.Name, err)
			s.recorder.ScrapeError()
			s.warn("source failed, continuing with the rest", "source", src.Name, "error", err)
			continue
		}

		added := 0
		for _, h := range results {
			if _, ok := seen[h.ID]; ok {
				continue
			}
			seen[h.ID] = struct{}{}
			aggregated = append(aggregated, h)
			added++
		}
		s.debug("source produced hackathons", "source", src.Name, "count", added)
	}

	if failures > 0 && failures == len(s.sources) {
		return nil, fmt.Errorf("all sources failed: %w", lastErr)
	}

	s.debug("fetch done", "total", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
