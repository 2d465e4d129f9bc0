// Package cli defines the hackwatch command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/app"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/config"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/logging"
)

// App represents the CLI application with all wired dependencies.
type App struct {
	rootCmd *cobra.Command

	verbose bool

	// Version information (set via ldflags)
	version string
	commit  string
	date    string
}

// New creates a new CLI application.
func New() *App {
	a := &App{}
	a.setupRootCmd()
	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the build metadata shown by the version command.
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "hackwatch",
		Short: "Hackathon deadline tracker with escalating alerts",
		Long: `Hackwatch tracks your active hackathon deadlines and sends
increasingly urgent alerts as each deadline approaches, without
repeating itself before the tier's re-notification interval elapses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")

	a.rootCmd.AddCommand(
		NewRunCmd(a),
		NewWatchCmd(a),
		NewReportCmd(a),
		NewAddCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig resolves the effective configuration, honoring --verbose over
// the configured log level.
func (a *App) loadConfig() config.Config {
	cfg := config.Load()
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg
}

// newApplication builds a fully wired application from the effective
// configuration. Callers own the returned application's Close.
func (a *App) newApplication(ctx context.Context, cfg config.Config) (*app.Application, error) {
	return app.New(ctx, cfg, logging.New(cfg.Logging.Level))
}
