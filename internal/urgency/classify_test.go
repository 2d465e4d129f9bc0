package urgency

import (
	"math"
	"testing"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

func TestTierFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		want  domain.Tier
	}{
		{-5, domain.TierCritical},
		{0, domain.TierCritical},
		{2.5, domain.TierCritical},
		{3, domain.TierCritical},
		{3.001, domain.TierHigh},
		{12, domain.TierHigh},
		{12.5, domain.TierMedium},
		{48, domain.TierMedium},
		{48.5, domain.TierLow},
		{168, domain.TierLow},
		{168.1, domain.TierIgnore},
		{720, domain.TierIgnore},
	}

	for _, tc := range cases {
		if got := TierFor(tc.hours); got != tc.want {
			t.Fatalf("TierFor(%v) = %s, want %s", tc.hours, got, tc.want)
		}
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		want  float64
	}{
		{2, 0.5},
		{10, 0.1},
		{0.1, 10},
		{0.05, 10}, // floored, not 20
		{0, 0},
		{-3, 0},
	}

	for _, tc := range cases {
		if got := Score(tc.hours); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Score(%v) = %v, want %v", tc.hours, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)
	h := domain.Hackathon{
		ID:       "https://example.com/ai-jam",
		Name:     "AI Jam",
		URL:      "https://example.com/ai-jam",
		Deadline: now.Add(150 * time.Minute),
		Prize:    5000,
	}

	s := Classify(h, now)

	if s.ID != h.ID || s.Name != h.Name || s.Prize != h.Prize {
		t.Fatalf("classification lost record fields: %+v", s)
	}
	if math.Abs(s.HoursRemaining-2.5) > 1e-9 {
		t.Fatalf("hours remaining = %v, want 2.5", s.HoursRemaining)
	}
	if s.Tier != domain.TierCritical {
		t.Fatalf("tier = %s, want CRITICAL", s.Tier)
	}
	if math.Abs(s.UrgencyScore-0.4) > 1e-9 {
		t.Fatalf("urgency score = %v, want 0.4", s.UrgencyScore)
	}
	if s.Expired() {
		t.Fatal("future deadline reported expired")
	}
}

func TestClassifyExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)
	h := domain.Hackathon{
		ID:       "https://example.com/over",
		Name:     "Already Over",
		URL:      "https://example.com/over",
		Deadline: now.Add(-2 * time.Hour),
	}

	s := Classify(h, now)

	if !s.Expired() {
		t.Fatalf("hours remaining = %v, expected expired", s.HoursRemaining)
	}
	if s.Tier != domain.TierCritical {
		t.Fatalf("expired tier = %s, want CRITICAL", s.Tier)
	}
	if s.UrgencyScore != 0 {
		t.Fatalf("expired urgency score = %v, want 0", s.UrgencyScore)
	}
}

// Tiers may only become more urgent as the clock runs down.
func TestTierForMonotonic(t *testing.T) {
	t.Parallel()

	prev := domain.TierIgnore
	for hours := 200.0; hours >= -2; hours -= 0.25 {
		tier := TierFor(hours)
		if tier.Order() < prev.Order() {
			t.Fatalf("tier regressed from %s to %s at %v hours", prev, tier, hours)
		}
		prev = tier
	}
}
