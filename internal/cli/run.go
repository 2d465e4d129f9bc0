package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/usecase"
)

// NewRunCmd creates the run command: one full alert cycle.
func NewRunCmd(a *App) *cobra.Command {
	var opts usecase.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a single alert cycle",
		Long: `Run fetches active hackathons, scores and ranks them, and sends
alerts for the ones whose re-notification interval has elapsed.

Use --dry-run to preview what would fire without sending anything,
or --force to alert every ranked hackathon right now. Forced runs
leave the notification history untouched so scheduled runs keep
their intervals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := a.loadConfig()

			application, err := a.newApplication(ctx, cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			sum, err := application.RunOnce(ctx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d hackathons (%d skipped), ranked top %d\n",
				sum.Fetched, sum.Skipped, sum.Ranked)
			if opts.DryRun || cfg.DryRun {
				fmt.Fprintf(out, "Dry run: would send %d alerts\n", sum.Fired)
				return nil
			}
			fmt.Fprintf(out, "Sent %d alerts", sum.Sent)
			if sum.Failed > 0 {
				fmt.Fprintf(out, " (%d failed)", sum.Failed)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false,
		"Compute and log alerts without sending or saving anything")
	cmd.Flags().BoolVar(&opts.Force, "force", false,
		"Send every ranked alert regardless of notification history")

	return cmd
}
