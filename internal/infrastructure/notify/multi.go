package notify

import (
	"context"
	"sync"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

// Multi fans one alert out to several channels.
type Multi struct {
	notifiers []ports.Notifier
}

var _ ports.Notifier = (*Multi)(nil)

// NewMulti creates a notifier that sends to all provided backends.
func NewMulti(notifiers ...ports.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Name identifies the channel for logs and config.
func (m *Multi) Name() string {
	return "multi"
}

// Notify sends the alert to all backends concurrently. Returns the first
// error encountered but keeps sending to the remaining backends.
func (m *Multi) Notify(ctx context.Context, alert domain.ScoredHackathon) error {
	if len(m.notifiers) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, n := range m.notifiers {
		wg.Add(1)
		go func(n ports.Notifier) {
			defer wg.Done()
			if err := n.Notify(ctx, alert); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(n)
	}

	wg.Wait()
	return firstErr
}
