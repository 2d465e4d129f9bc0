// Package gate decides whether a ranked hackathon is due for a fresh alert,
// based on when it was last notified and at which tier.
package gate

import (
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

// Re-notification intervals: the minimum wait before repeating an alert at
// the same tier.
var intervals = map[domain.Tier]time.Duration{
	domain.TierCritical: 1 * time.Hour,
	domain.TierHigh:     3 * time.Hour,
	domain.TierMedium:   12 * time.Hour,
	domain.TierLow:      24 * time.Hour,
}

// Interval returns the required re-notification interval for a tier. Tiers
// without one (IGNORE, unknown values from old state files) return zero.
func Interval(t domain.Tier) time.Duration {
	return intervals[t]
}

// Decision is the gate outcome for a single hackathon: whether to alert now,
// and the history entry to carry forward. Entry is the refreshed record when
// Fire is set; otherwise it is the prior entry unchanged, or nil if none
// existed.
type Decision struct {
	Fire  bool
	Entry *domain.HistoryEntry
}

// Decide is a pure function over (hackathon, prior state, clock).
//
// IGNORE-tier hackathons never alert and leave history untouched. An expired
// hackathon with a prior entry is permanently silenced; one without gets a
// single overdue notice and is silenced from then on. Otherwise a hackathon
// alerts on first sighting, when its tier interval has elapsed, or
// immediately when its tier has jumped to something strictly more urgent
// than the one last notified.
func Decide(s domain.ScoredHackathon, prior *domain.HistoryEntry, now time.Time) Decision {
	if s.Tier == domain.TierIgnore {
		return Decision{Fire: false, Entry: prior}
	}

	if s.Expired() && prior != nil {
		return Decision{Fire: false, Entry: prior}
	}

	if prior == nil {
		return fire(s, now)
	}

	if now.Sub(prior.LastNotifiedAt) >= Interval(s.Tier) || s.Tier.MoreUrgentThan(prior.LastTier) {
		return fire(s, now)
	}

	return Decision{Fire: false, Entry: prior}
}

func fire(s domain.ScoredHackathon, now time.Time) Decision {
	return Decision{
		Fire: true,
		Entry: &domain.HistoryEntry{
			LastNotifiedAt: now,
			LastTier:       s.Tier,
			Name:           s.Name,
		},
	}
}
