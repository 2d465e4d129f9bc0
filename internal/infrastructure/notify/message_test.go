package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

func criticalAlert() domain.ScoredHackathon {
	return domain.ScoredHackathon{
		Hackathon: domain.Hackathon{
			ID:       "https://example.devpost.com/",
			Name:     "AI for Good [2026]",
			URL:      "https://example.devpost.com/",
			Deadline: time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC),
			Prize:    50000,
		},
		HoursRemaining: 2.25,
		Tier:           domain.TierCritical,
	}
}

func TestCountdown(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		want  string
	}{
		{0.75, "45m"},
		{2.25, "2h 15m"},
		{23.99, "23h 59m"},
		{76, "3d 4h"},
		{-2.5, "overdue"},
	}

	for _, tc := range cases {
		if got := Countdown(tc.hours); got != tc.want {
			t.Fatalf("Countdown(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}

func TestEmoji(t *testing.T) {
	t.Parallel()

	cases := map[domain.Tier]string{
		domain.TierCritical: "🔴",
		domain.TierHigh:     "🟠",
		domain.TierMedium:   "🟡",
		domain.TierLow:      "🟢",
		domain.TierIgnore:   "⚪",
	}
	for tier, want := range cases {
		if got := Emoji(tier); got != want {
			t.Fatalf("Emoji(%s) = %q, want %q", tier, got, want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	t.Parallel()

	got := EscapeMarkdown("Hack_the*Planet [2026]!")
	want := `Hack\_the\*Planet \[2026\]\!`
	if got != want {
		t.Fatalf("EscapeMarkdown = %q, want %q", got, want)
	}
}

func TestMessageCriticalAlert(t *testing.T) {
	t.Parallel()

	msg := Message(criticalAlert())

	for _, want := range []string{
		"🔴 *CRITICAL ALERT*",
		`*AI for Good \[2026\]*`,
		"⏰ *2h 15m remaining*",
		"📅 Deadline: 2026-03-17 00:00 UTC",
		"💰 Prize: $50,000",
		"🔗 [Submit Now](https://example.devpost.com/)",
		"FINAL HOURS",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestMessageTierEmphasis(t *testing.T) {
	t.Parallel()

	alert := criticalAlert()

	alert.Tier = domain.TierHigh
	if msg := Message(alert); !strings.Contains(msg, "Deadline approaching fast") {
		t.Fatalf("HIGH alert missing emphasis line:\n%s", msg)
	}

	alert.Tier = domain.TierMedium
	msg := Message(alert)
	if strings.Contains(msg, "FINAL HOURS") || strings.Contains(msg, "approaching fast") {
		t.Fatalf("MEDIUM alert should carry no emphasis line:\n%s", msg)
	}
}

func TestMessageSkipsZeroPrize(t *testing.T) {
	t.Parallel()

	alert := criticalAlert()
	alert.Prize = 0
	if msg := Message(alert); strings.Contains(msg, "💰") {
		t.Fatalf("zero prize should not render a prize line:\n%s", msg)
	}
}

func TestMessageOverdue(t *testing.T) {
	t.Parallel()

	alert := criticalAlert()
	alert.HoursRemaining = -3

	msg := Message(alert)
	if !strings.Contains(msg, "⏰ *overdue*") {
		t.Fatalf("expected overdue marker:\n%s", msg)
	}
	if strings.Contains(msg, "overdue remaining") {
		t.Fatalf("overdue should not read as remaining:\n%s", msg)
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{500, "500"},
		{2500, "2,500"},
		{50000, "50,000"},
		{1000000, "1,000,000"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
