package urgency

import (
	"sort"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

// Priority weights: time urgency 50%, prize 20%, tag interest 30%. The tag
// term reads the reserved TagMatchScore field so a future matcher can plug in
// without changing the ranking contract.
const (
	urgencyWeight = 0.5
	prizeWeight   = 0.2
	tagWeight     = 0.3
)

// Rank computes priority scores over the set, orders it, and returns the top
// n entries. Urgency and prize are normalized against the set maximum; an
// all-zero column normalizes to zero rather than dividing by it. Ties break
// by ascending hours remaining, then by identifier, so the order is total
// and deterministic. The input slice is never reordered; when n meets or
// exceeds the set size the full ranking comes back.
func Rank(scored []domain.ScoredHackathon, n int) []domain.ScoredHackathon {
	if n < 1 || len(scored) == 0 {
		return nil
	}

	ranked := make([]domain.ScoredHackathon, len(scored))
	copy(ranked, scored)

	var maxUrgency, maxPrize float64
	for _, s := range ranked {
		if s.UrgencyScore > maxUrgency {
			maxUrgency = s.UrgencyScore
		}
		if s.Prize > maxPrize {
			maxPrize = s.Prize
		}
	}

	for i := range ranked {
		var normUrgency, normPrize float64
		if maxUrgency > 0 {
			normUrgency = ranked[i].UrgencyScore / maxUrgency
		}
		if maxPrize > 0 {
			normPrize = ranked[i].Prize / maxPrize
		}
		ranked[i].PriorityScore = urgencyWeight*normUrgency +
			prizeWeight*normPrize +
			tagWeight*ranked[i].TagMatchScore
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if a.HoursRemaining != b.HoursRemaining {
			return a.HoursRemaining < b.HoursRemaining
		}
		return a.ID < b.ID
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
