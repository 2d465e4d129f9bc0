package domain

import "time"

// Tier classifies how urgent a hackathon deadline is, from CRITICAL (final
// hours) down to IGNORE (more than a week away).
type Tier string

const (
	TierCritical Tier = "CRITICAL"
	TierHigh     Tier = "HIGH"
	TierMedium   Tier = "MEDIUM"
	TierLow      Tier = "LOW"
	TierIgnore   Tier = "IGNORE"
)

// Order returns the numeric rank of a tier for urgency comparison; higher
// means more urgent. Unknown tiers rank below IGNORE so that stale or
// hand-edited history values never suppress a real alert.
func (t Tier) Order() int {
	switch t {
	case TierCritical:
		return 4
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	case TierIgnore:
		return 0
	default:
		return -1
	}
}

// MoreUrgentThan reports whether t is strictly more urgent than other.
func (t Tier) MoreUrgentThan(other Tier) bool {
	return t.Order() > other.Order()
}

// Hackathon is a core entity describing one tracked competition as returned
// by a scraper. The URL doubles as the stable identifier. Immutable once
// fetched.
type Hackathon struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Deadline time.Time `json:"deadline"`
	Prize    float64   `json:"prize_amount,omitempty"` // USD-normalized; 0 when unknown
	Location string    `json:"location,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// ScoredHackathon carries the per-run urgency view of a hackathon. Derived
// fresh each cycle and never persisted.
type ScoredHackathon struct {
	Hackathon
	HoursRemaining float64 // negative once the deadline has passed
	Tier           Tier
	UrgencyScore   float64
	TagMatchScore  float64 // reserved interest-match term, always 0 today
	PriorityScore  float64
}

// Expired reports whether the deadline has already passed.
func (s ScoredHackathon) Expired() bool {
	return s.HoursRemaining < 0
}
