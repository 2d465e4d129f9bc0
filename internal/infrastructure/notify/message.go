// Package notify renders deadline alerts and delivers them to outbound
// channels (Telegram, Slack webhook, terminal).
package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(", ")", "\\)",
	"~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.", "!", "\\!",
)

// Emoji returns the colored marker for an alert tier.
func Emoji(tier domain.Tier) string {
	switch tier {
	case domain.TierCritical:
		return "🔴"
	case domain.TierHigh:
		return "🟠"
	case domain.TierMedium:
		return "🟡"
	case domain.TierLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// Countdown renders remaining hours as "45m", "2h 15m" or "3d 4h". A passed
// deadline reads "overdue".
func Countdown(hoursRemaining float64) string {
	switch {
	case hoursRemaining < 0:
		return "overdue"
	case hoursRemaining < 1:
		return fmt.Sprintf("%dm", int(hoursRemaining*60))
	case hoursRemaining < 24:
		hours := int(hoursRemaining)
		minutes := int((hoursRemaining - float64(hours)) * 60)
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		days := int(hoursRemaining / 24)
		hours := int(hoursRemaining) % 24
		return fmt.Sprintf("%dd %dh", days, hours)
	}
}

// EscapeMarkdown neutralizes Telegram Markdown control characters in
// user-sourced text so a hackathon name cannot break message parsing.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// Message renders the alert body shared by all channels.
func Message(alert domain.ScoredHackathon) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s *%s ALERT*\n\n", Emoji(alert.Tier), alert.Tier)
	fmt.Fprintf(&b, "*%s*\n\n", EscapeMarkdown(alert.Name))
	if alert.Expired() {
		fmt.Fprintf(&b, "⏰ *%s*\n", Countdown(alert.HoursRemaining))
	} else {
		fmt.Fprintf(&b, "⏰ *%s remaining*\n", Countdown(alert.HoursRemaining))
	}
	fmt.Fprintf(&b, "📅 Deadline: %s UTC\n\n", alert.Deadline.UTC().Format("2006-01-02 15:04"))

	if alert.Prize > 0 {
		fmt.Fprintf(&b, "💰 Prize: $%s\n\n", formatAmount(alert.Prize))
	}

	fmt.Fprintf(&b, "🔗 [Submit Now](%s)\n\n", alert.URL)

	switch alert.Tier {
	case domain.TierCritical:
		b.WriteString("⚠️ *FINAL HOURS \\- SUBMIT NOW\\!*")
	case domain.TierHigh:
		b.WriteString("⚡ *Deadline approaching fast\\!*")
	}

	return b.String()
}

// formatAmount renders 50000 as "50,000".
func formatAmount(v float64) string {
	digits := strconv.FormatFloat(v, 'f', 0, 64)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
