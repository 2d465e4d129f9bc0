package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command: recurring runs until interrupted.
func NewWatchCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run alert cycles on the configured cadence",
		Long: `Watch keeps the tracker running, re-checking deadlines on the
scheduler interval from the configuration. When a metrics address is
configured it also serves Prometheus metrics. Stops on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := a.newApplication(ctx, a.loadConfig())
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Watch(ctx)
		},
	}
}
