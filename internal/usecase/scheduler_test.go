package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/scheduler"
)

// countingStore is a mutex-guarded history store safe to observe while the
// scheduler runs the pipeline in the background.
type countingStore struct {
	mu    sync.Mutex
	saves int
}

func (c *countingStore) Load(context.Context) (domain.History, error) {
	return domain.History{}, nil
}

func (c *countingStore) Save(context.Context, domain.History) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	return nil
}

func (c *countingStore) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func TestSchedulerRunsOnCadence(t *testing.T) {
	t.Parallel()

	store := &countingStore{}
	pipeline := NewPipeline(PipelineDeps{
		Source:  &fakeSource{},
		History: store,
	})

	driver := scheduler.NewTickerScheduler(5 * time.Millisecond)
	sched := NewScheduler(driver, pipeline, RunOptions{}, nil)

	ctx := context.Background()
	require.NoError(t, sched.Start(ctx))

	// One immediate run plus at least one tick.
	require.Eventually(t, func() bool { return store.saveCount() >= 2 },
		time.Second, 5*time.Millisecond, "scheduled runs never happened")

	require.NoError(t, sched.Stop(ctx))
	time.Sleep(20 * time.Millisecond) // drain any in-flight run

	stopped := store.saveCount()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, stopped, store.saveCount(), "runs continued after Stop")
}

// Scheduled runs must honor the gate even when the caller's options carry
// a leftover force flag.
func TestNewSchedulerStripsForce(t *testing.T) {
	t.Parallel()

	sched := NewScheduler(nil, nil, RunOptions{Force: true, DryRun: true}, nil)
	require.False(t, sched.opts.Force)
	require.True(t, sched.opts.DryRun)
}

func TestSchedulerNilDriver(t *testing.T) {
	t.Parallel()

	sched := NewScheduler(nil, nil, RunOptions{}, nil)
	require.NoError(t, sched.Start(context.Background()))
	require.NoError(t, sched.Stop(context.Background()))
}
