// Package usecase orchestrates one alert cycle: fetch, classify, rank,
// gate, notify, persist.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/gate"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/metrics"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/urgency"
)

const defaultTopN = 3

// historyRetention is how long a history entry survives without a fresh
// notification before a run prunes it.
const historyRetention = 30 * 24 * time.Hour

// PipelineDeps wires all driven adapters into the alert pipeline.
type PipelineDeps struct {
	Source   ports.HackathonSource
	History  ports.HistoryStore
	Notifier ports.Notifier
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
	TopN     int
}

// RunOptions control a single pipeline execution.
type RunOptions struct {
	// DryRun computes the full cycle and logs what would fire, but sends
	// nothing and saves nothing.
	DryRun bool
	// Force alerts every ranked hackathon regardless of notification
	// history, and leaves the history untouched so scheduled runs keep
	// their re-notification intervals.
	Force bool
}

// Summary reports what a run did. In dry-run mode Fired carries the
// would-send count and Sent stays zero.
type Summary struct {
	Fetched int
	Skipped int
	Ranked  int
	Fired   int
	Sent    int
	Failed  int
}

// Pipeline implements the fetch → classify → rank → gate → notify cycle.
type Pipeline struct {
	source   ports.HackathonSource
	history  ports.HistoryStore
	notifier ports.Notifier
	metrics  *metrics.Recorder
	logger   *slog.Logger
	topN     int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	topN := deps.TopN
	if topN < 1 {
		topN = defaultTopN
	}
	return &Pipeline{
		source:   deps.Source,
		history:  deps.History,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		logger:   logger,
		topN:     topN,
	}
}

// Run executes one full cycle at the given instant. Gate decisions read the
// history as loaded; their updated entries fold into an independent copy so
// the stored map is replaced wholesale, never mutated in place.
func (p *Pipeline) Run(ctx context.Context, now time.Time, opts RunOptions) (Summary, error) {
	var sum Summary
	if p.source == nil {
		return sum, nil
	}
	if now.IsZero() {
		now = time.Now()
	}

	started := time.Now()
	log := p.logger.With("run_id", uuid.NewString())
	log.Info("starting run", "dry_run", opts.DryRun, "force", opts.Force, "top_n", p.topN)

	hackathons, err := p.source.FetchActive(ctx)
	if err != nil {
		return sum, fmt.Errorf("fetch hackathons: %w", err)
	}
	sum.Fetched = len(hackathons)

	scored := make([]domain.ScoredHackathon, 0, len(hackathons))
	for _, h := range hackathons {
		if h.URL == "" || h.Deadline.IsZero() {
			sum.Skipped++
			p.metrics.RecordSkipped()
			log.Warn("skipping malformed record", "id", h.ID, "name", h.Name)
			continue
		}
		scored = append(scored, urgency.Classify(h, now))
	}

	ranked := urgency.Rank(scored, p.topN)
	sum.Ranked = len(ranked)
	log.Info("ranked hackathons", "fetched", sum.Fetched, "skipped", sum.Skipped, "ranked", sum.Ranked)

	prior := domain.History{}
	if p.history != nil {
		prior, err = p.history.Load(ctx)
		if err != nil {
			return sum, fmt.Errorf("load history: %w", err)
		}
		if prior == nil {
			prior = domain.History{}
		}
	}
	next := prior.Clone()

	var due []domain.ScoredHackathon
	for _, s := range ranked {
		if opts.Force {
			if s.Tier != domain.TierIgnore {
				due = append(due, s)
			}
			continue
		}
		decision := gate.Decide(s, prior.Get(s.ID), now)
		if decision.Entry != nil {
			next[s.ID] = *decision.Entry
		}
		if decision.Fire {
			due = append(due, s)
		}
	}
	sum.Fired = len(due)
	if opts.Force {
		log.Info("force mode, notification history bypassed", "fired", sum.Fired)
	} else {
		log.Info("gate decided", "fired", sum.Fired, "suppressed", sum.Ranked-sum.Fired)
	}

	if opts.DryRun {
		for _, s := range due {
			log.Info("dry run, would send alert",
				"id", s.ID, "name", s.Name, "tier", string(s.Tier),
				"hours_remaining", s.HoursRemaining)
		}
	} else if p.notifier != nil {
		for _, s := range due {
			if err := p.notifier.Notify(ctx, s); err != nil {
				sum.Failed++
				p.metrics.SendFailed()
				log.Error("sending alert failed",
					"id", s.ID, "notifier", p.notifier.Name(), "error", err)
				continue
			}
			sum.Sent++
			p.metrics.AlertSent(string(s.Tier))
			log.Info("alert sent", "id", s.ID, "name", s.Name, "tier", string(s.Tier))
		}
	}

	if p.history != nil && !opts.DryRun && !opts.Force {
		if dropped := next.Prune(now, historyRetention); dropped > 0 {
			log.Info("pruned stale history entries", "dropped", dropped)
		}
		if err := p.history.Save(ctx, next); err != nil {
			return sum, fmt.Errorf("save history: %w", err)
		}
	}

	p.metrics.RunCompleted(time.Now(), time.Since(started), len(scored))
	log.Info("run complete",
		"fetched", sum.Fetched, "skipped", sum.Skipped, "ranked", sum.Ranked,
		"fired", sum.Fired, "sent", sum.Sent, "failed", sum.Failed)
	return sum, nil
}

// FetchScored pulls the current hackathon set and ranks all of it, without
// top-N truncation, gating, or touching history. The report view consumes
// this.
func (p *Pipeline) FetchScored(ctx context.Context, now time.Time) ([]domain.ScoredHackathon, error) {
	if p.source == nil {
		return nil, nil
	}
	if now.IsZero() {
		now = time.Now()
	}

	hackathons, err := p.source.FetchActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch hackathons: %w", err)
	}

	scored := make([]domain.ScoredHackathon, 0, len(hackathons))
	for _, h := range hackathons {
		if h.URL == "" || h.Deadline.IsZero() {
			p.logger.Warn("skipping malformed record", "id", h.ID, "name", h.Name)
			continue
		}
		scored = append(scored, urgency.Classify(h, now))
	}
	return urgency.Rank(scored, len(scored)), nil
}
