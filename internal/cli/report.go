package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/notify"
)

const reportWidth = 80

// reportStyles contains the lipgloss styles for the report view.
type reportStyles struct {
	Title    lipgloss.Style
	Meta     lipgloss.Style
	Name     lipgloss.Style
	URL      lipgloss.Style
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
}

func defaultReportStyles() reportStyles {
	return reportStyles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Name:     lipgloss.NewStyle().Bold(true),
		URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		High:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Medium:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Low:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

func (s reportStyles) tier(t domain.Tier) lipgloss.Style {
	switch t {
	case domain.TierCritical:
		return s.Critical
	case domain.TierHigh:
		return s.High
	case domain.TierMedium:
		return s.Medium
	default:
		return s.Low
	}
}

// NewReportCmd creates the report command: a full deadline overview grouped
// by tier, without sending or recording anything.
func NewReportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print a deadline report for all active hackathons",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := a.loadConfig()

			application, err := a.newApplication(ctx, cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			now := time.Now()
			scored, err := application.FetchScored(ctx, now)
			if err != nil {
				return err
			}

			renderReport(cmd.OutOrStdout(), scored, now, cfg.Scheduler.Location())
			return nil
		},
	}
}

// renderReport prints the grouped overview with timestamps in the configured
// timezone.
func renderReport(out io.Writer, scored []domain.ScoredHackathon, now time.Time, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	styles := defaultReportStyles()
	divider := styles.Meta.Render(strings.Repeat("=", reportWidth))

	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, styles.Title.Render("🏆 HACKATHON DEADLINE REPORT"))
	fmt.Fprintln(out, styles.Meta.Render("📅 Generated: "+now.In(loc).Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintln(out, divider)

	if len(scored) == 0 {
		fmt.Fprintln(out, "\nNo active hackathons found.")
		return
	}

	byTier := make(map[domain.Tier][]domain.ScoredHackathon)
	for _, s := range scored {
		byTier[s.Tier] = append(byTier[s.Tier], s)
	}

	sections := []struct {
		tier  domain.Tier
		title string
	}{
		{domain.TierCritical, "CRITICAL - Submit NOW (≤3h)"},
		{domain.TierHigh, "HIGH PRIORITY - Closing Soon (≤12h)"},
		{domain.TierMedium, "MEDIUM PRIORITY - Approaching (≤48h)"},
		{domain.TierLow, "LOW PRIORITY - Coming Up (≤7 days)"},
	}

	for _, section := range sections {
		entries := byTier[section.tier]
		if len(entries) == 0 {
			continue
		}

		header := fmt.Sprintf("%s %s (%d)", notify.Emoji(section.tier), section.title, len(entries))
		fmt.Fprintf(out, "\n%s\n", styles.tier(section.tier).Render(header))
		fmt.Fprintln(out, styles.Meta.Render(strings.Repeat("-", reportWidth)))

		for i, s := range entries {
			countdown := notify.Countdown(s.HoursRemaining) + " remaining"
			if s.Expired() {
				countdown = "overdue"
			}
			fmt.Fprintf(out, "  %d. %s\n", i+1, styles.Name.Render(truncateName(s.Name, 50)))
			fmt.Fprintf(out, "     ⏰ %s | 📅 %s | 💰 %s\n",
				countdown,
				s.Deadline.In(loc).Format("Jan 2, 2006 03:04 PM MST"),
				formatPrize(s.Prize))
			fmt.Fprintf(out, "     🔗 %s\n\n", styles.URL.Render(s.URL))
		}
	}

	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, styles.Title.Render("📊 SUMMARY"))
	fmt.Fprintf(out, "  🔴 Critical: %d\n", len(byTier[domain.TierCritical]))
	fmt.Fprintf(out, "  🟠 High:     %d\n", len(byTier[domain.TierHigh]))
	fmt.Fprintf(out, "  🟡 Medium:   %d\n", len(byTier[domain.TierMedium]))
	fmt.Fprintf(out, "  🟢 Low:      %d\n", len(byTier[domain.TierLow]))
	fmt.Fprintf(out, "  📋 Total active: %d\n", len(scored))
	fmt.Fprintln(out, divider)
}

// formatPrize renders the compact report form: TBA when unknown, $NK above
// a thousand dollars.
func formatPrize(amount float64) string {
	switch {
	case amount == 0:
		return "TBA"
	case amount > 1000:
		return fmt.Sprintf("$%.0fK", amount/1000)
	default:
		return fmt.Sprintf("$%.0f", amount)
	}
}

func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}
