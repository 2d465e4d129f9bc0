package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/scraper"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/logging"
)

// NewAddCmd creates the add command: track a hackathon by URL, outside the
// Devpost profile.
func NewAddCmd(a *App) *cobra.Command {
	var deadline string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Track an external hackathon by page URL",
		Long: `Add scrapes the page for a title and submission deadline and stores
the hackathon in the tracked file, where every run picks it up. Pass
--deadline when the page does not state one; the day ends at 23:59 UTC.
Adding the same URL twice replaces the earlier entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := a.loadConfig()
			logger := logging.New(cfg.Logging.Level)

			pageURL := args[0]
			sc := scraper.NewPageScraper(nil, logger.With("component", "scraper.page"))
			h, err := sc.ScrapeURL(ctx, pageURL, time.Now())
			if err != nil {
				return fmt.Errorf("scrape %s: %w", pageURL, err)
			}

			if deadline != "" {
				day, err := time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("invalid --deadline %q, use YYYY-MM-DD", deadline)
				}
				h.Deadline = time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, time.UTC)
			}

			path := cfg.TrackedPath()
			created, err := scraper.Upsert(path, h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found: %s\n", h.Name)
			fmt.Fprintf(out, "Deadline: %s\n", h.Deadline.UTC().Format("2006-01-02 15:04 UTC"))
			if created {
				fmt.Fprintf(out, "Added new entry to %s\n", path)
			} else {
				fmt.Fprintf(out, "Updated existing entry in %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&deadline, "deadline", "",
		"Manual deadline (YYYY-MM-DD), overrides the scraped one")

	return cmd
}
