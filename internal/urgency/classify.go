// Package urgency scores hackathon deadlines and ranks them for alerting.
package urgency

import (
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

// Tier thresholds in hours remaining. Checked most urgent first; the first
// match wins.
const (
	criticalThresholdHours = 3
	highThresholdHours     = 12
	mediumThresholdHours   = 48
	lowThresholdHours      = 168 // 7 days
)

// minHoursFloor bounds the inverse-time score as a deadline is crossed: raw
// 1/x would spike toward infinity at the boundary and dominate every ranking.
const minHoursFloor = 0.1

// Classify derives the per-run urgency view of a hackathon at the given
// instant. Hours remaining stay fractional and may go negative; they are
// never rounded before threshold comparison.
func Classify(h domain.Hackathon, now time.Time) domain.ScoredHackathon {
	hours := h.Deadline.Sub(now).Hours()
	return domain.ScoredHackathon{
		Hackathon:      h,
		HoursRemaining: hours,
		Tier:           TierFor(hours),
		UrgencyScore:   Score(hours),
	}
}

// TierFor maps hours remaining to an alert tier. A passed deadline lands in
// CRITICAL; the escalation gate decides whether an expired hackathon still
// alerts.
func TierFor(hoursRemaining float64) domain.Tier {
	switch {
	case hoursRemaining <= criticalThresholdHours:
		return domain.TierCritical
	case hoursRemaining <= highThresholdHours:
		return domain.TierHigh
	case hoursRemaining <= mediumThresholdHours:
		return domain.TierMedium
	case hoursRemaining <= lowThresholdHours:
		return domain.TierLow
	default:
		return domain.TierIgnore
	}
}

// Score is the continuous inverse-time urgency measure. Past deadlines score
// zero so ranking deprioritizes them instead of inflating them.
func Score(hoursRemaining float64) float64 {
	if hoursRemaining <= 0 {
		return 0
	}
	if hoursRemaining < minHoursFloor {
		hoursRemaining = minHoursFloor
	}
	return 1 / hoursRemaining
}
