package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

// TerminalNotifier writes alerts to stderr. It is the zero-configuration
// fallback channel and the dry-run preview target.
type TerminalNotifier struct {
	mu  sync.Mutex // serializes concurrent writes
	out io.Writer
}

var _ ports.Notifier = (*TerminalNotifier)(nil)

// NewTerminalNotifier creates a terminal notifier writing to stderr.
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{out: os.Stderr}
}

// Name identifies the channel for logs and config.
func (t *TerminalNotifier) Name() string {
	return "terminal"
}

// Notify prints the alert with its tier marker.
func (t *TerminalNotifier) Notify(ctx context.Context, alert domain.ScoredHackathon) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "\n%s [%s] %s\n", Emoji(alert.Tier), alert.Tier, alert.Name)
	if alert.Expired() {
		fmt.Fprintf(t.out, "   %s\n", Countdown(alert.HoursRemaining))
	} else {
		fmt.Fprintf(t.out, "   %s remaining (deadline %s UTC)\n", Countdown(alert.HoursRemaining), alert.Deadline.UTC().Format("2006-01-02 15:04"))
	}
	if alert.Prize > 0 {
		fmt.Fprintf(t.out, "   Prize: $%s\n", formatAmount(alert.Prize))
	}
	fmt.Fprintf(t.out, "   %s\n", alert.URL)

	return nil
}
