package ports

import (
	"context"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

// HackathonSource pulls the set of currently tracked hackathons from
// upstream providers (Devpost profile, manually tracked entries, ...).
type HackathonSource interface {
	FetchActive(ctx context.Context) ([]domain.Hackathon, error)
}

// HistoryStore loads the notification history before a run and replaces it
// wholesale afterwards. Saves are atomic full-map replacements, never
// partial merges.
type HistoryStore interface {
	Load(ctx context.Context) (domain.History, error)
	Save(ctx context.Context, history domain.History) error
}

// Notifier delivers one deadline alert to an outbound channel. The scored
// record carries everything a channel needs to render its own message
// format.
type Notifier interface {
	Notify(ctx context.Context, alert domain.ScoredHackathon) error
	Name() string
}

// Scheduler controls when runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
