package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
)

var runNow = time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	hackathons []domain.Hackathon
	err        error
}

func (f *fakeSource) FetchActive(context.Context) ([]domain.Hackathon, error) {
	return f.hackathons, f.err
}

type fakeStore struct {
	loaded domain.History
	saved  domain.History
	loads  int
	saves  int
	err    error
}

func (f *fakeStore) Load(context.Context) (domain.History, error) {
	f.loads++
	return f.loaded, f.err
}

func (f *fakeStore) Save(_ context.Context, history domain.History) error {
	f.saves++
	f.saved = history
	return nil
}

type fakeNotifier struct {
	sent    []domain.ScoredHackathon
	failFor map[string]error
}

func (f *fakeNotifier) Notify(_ context.Context, alert domain.ScoredHackathon) error {
	if err := f.failFor[alert.ID]; err != nil {
		return err
	}
	f.sent = append(f.sent, alert)
	return nil
}

func (f *fakeNotifier) Name() string { return "fake" }

func dueIn(id string, in time.Duration, prize float64) domain.Hackathon {
	url := "https://example.com/" + id
	return domain.Hackathon{ID: url, Name: id, URL: url, Deadline: runNow.Add(in), Prize: prize}
}

func newTestPipeline(source *fakeSource, store *fakeStore, notifier *fakeNotifier, topN int) *Pipeline {
	return NewPipeline(PipelineDeps{
		Source:   source,
		History:  store,
		Notifier: notifier,
		TopN:     topN,
	})
}

func TestRunFirstSighting(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("later", 30*time.Hour, 0),
		dueIn("soon", 2*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Fetched != 2 || sum.Ranked != 2 || sum.Fired != 2 || sum.Sent != 2 || sum.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	// Most urgent first.
	if notifier.sent[0].Name != "soon" || notifier.sent[1].Name != "later" {
		t.Fatalf("send order: %s then %s", notifier.sent[0].Name, notifier.sent[1].Name)
	}

	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	entry, ok := store.saved["https://example.com/soon"]
	if !ok {
		t.Fatal("no history entry recorded for soon")
	}
	if !entry.LastNotifiedAt.Equal(runNow) || entry.LastTier != domain.TierCritical {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestRunRespectsGate(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("fresh", 2*time.Hour, 0),
		dueIn("recent", 30*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{
		"https://example.com/recent": {
			LastNotifiedAt: runNow.Add(-30 * time.Minute),
			LastTier:       domain.TierMedium,
		},
	}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Fired != 1 || sum.Sent != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if notifier.sent[0].Name != "fresh" {
		t.Fatalf("sent %s, want fresh", notifier.sent[0].Name)
	}

	// The suppressed entry survives the save untouched.
	kept := store.saved["https://example.com/recent"]
	if !kept.LastNotifiedAt.Equal(runNow.Add(-30 * time.Minute)) {
		t.Fatalf("suppressed entry was rewritten: %+v", kept)
	}
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{dueIn("soon", 2*time.Hour, 0)}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Fired != 1 {
		t.Fatalf("fired = %d, want 1", sum.Fired)
	}
	if sum.Sent != 0 || len(notifier.sent) != 0 {
		t.Fatal("dry run sent alerts")
	}
	if store.saves != 0 {
		t.Fatal("dry run saved history")
	}
}

func TestRunForceBypassesHistory(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("a", 2*time.Hour, 0),
		dueIn("b", 30*time.Hour, 0),
	}}
	// Both were alerted moments ago; a normal run would stay quiet.
	store := &fakeStore{loaded: domain.History{
		"https://example.com/a": {LastNotifiedAt: runNow.Add(-time.Minute), LastTier: domain.TierCritical},
		"https://example.com/b": {LastNotifiedAt: runNow.Add(-time.Minute), LastTier: domain.TierMedium},
	}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{Force: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Fired != 2 || sum.Sent != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if store.saves != 0 {
		t.Fatal("forced run rewrote history")
	}
}

func TestRunForceSkipsIgnoreTier(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("soon", 2*time.Hour, 0),
		dueIn("distant", 400*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{Force: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Fired != 1 || notifier.sent[0].Name != "soon" {
		t.Fatalf("force alerted an IGNORE hackathon: %+v", sum)
	}
}

func TestRunSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		{ID: "no-deadline", Name: "No Deadline", URL: "https://example.com/no-deadline"},
		{ID: "no-url", Name: "No URL", Deadline: runNow.Add(5 * time.Hour)},
		dueIn("good", 5*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Fetched != 3 || sum.Skipped != 2 || sum.Ranked != 1 || sum.Sent != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestRunTopNLimitsAlerts(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("first", 2*time.Hour, 0),
		dueIn("second", 10*time.Hour, 0),
		dueIn("third", 30*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 1).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Ranked != 1 || sum.Sent != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if notifier.sent[0].Name != "first" {
		t.Fatalf("sent %s, want first", notifier.sent[0].Name)
	}
	if len(store.saved) != 1 {
		t.Fatalf("history has %d entries, want 1", len(store.saved))
	}
}

func TestRunLeavesLoadedHistoryUntouched(t *testing.T) {
	t.Parallel()

	before := runNow.Add(-13 * time.Hour)
	loaded := domain.History{
		"https://example.com/stale": {LastNotifiedAt: before, LastTier: domain.TierMedium},
	}
	source := &fakeSource{hackathons: []domain.Hackathon{dueIn("stale", 30*time.Hour, 0)}}
	store := &fakeStore{loaded: loaded}
	notifier := &fakeNotifier{}

	if _, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	// 13h beats the 12h MEDIUM interval, so the alert fired and the saved
	// copy was refreshed. The map handed to Load must still be the old view.
	if got := loaded["https://example.com/stale"].LastNotifiedAt; !got.Equal(before) {
		t.Fatalf("loaded history mutated in place: %v", got)
	}
	if got := store.saved["https://example.com/stale"].LastNotifiedAt; !got.Equal(runNow) {
		t.Fatalf("saved history not refreshed: %v", got)
	}
}

func TestRunRecordsHistoryDespiteSendFailure(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("ok", 2*time.Hour, 0),
		dueIn("broken", 10*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{failFor: map[string]error{
		"https://example.com/broken": errors.New("telegram: 502"),
	}}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Sent != 1 || sum.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if _, ok := store.saved["https://example.com/broken"]; !ok {
		t.Fatal("failed send dropped the history entry")
	}
}

func TestRunPrunesStaleEntries(t *testing.T) {
	t.Parallel()

	store := &fakeStore{loaded: domain.History{
		"https://example.com/retired": {
			LastNotifiedAt: runNow.Add(-31 * 24 * time.Hour),
			LastTier:       domain.TierLow,
		},
		"https://example.com/kept": {
			LastNotifiedAt: runNow.Add(-2 * 24 * time.Hour),
			LastTier:       domain.TierLow,
		},
	}}
	source := &fakeSource{}
	notifier := &fakeNotifier{}

	if _, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if _, ok := store.saved["https://example.com/retired"]; ok {
		t.Fatal("stale entry survived the prune")
	}
	if _, ok := store.saved["https://example.com/kept"]; !ok {
		t.Fatal("recent entry was pruned")
	}
}

func TestRunEmptySource(t *testing.T) {
	t.Parallel()

	store := &fakeStore{loaded: domain.History{}}
	sum, err := newTestPipeline(&fakeSource{}, store, &fakeNotifier{}, 3).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if sum != (Summary{}) {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestRunIgnoreTierStaysQuiet(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{dueIn("distant", 400*time.Hour, 0)}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	sum, err := newTestPipeline(source, store, notifier, 3).Run(context.Background(), runNow, RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Ranked != 1 || sum.Fired != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if len(store.saved) != 0 {
		t.Fatalf("IGNORE tier wrote history: %v", store.saved)
	}
}

func TestRunFetchErrorAborts(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("devpost unreachable")
	source := &fakeSource{err: wantErr}

	_, err := newTestPipeline(source, &fakeStore{}, &fakeNotifier{}, 3).Run(context.Background(), runNow, RunOptions{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestRunLoadErrorAborts(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("postgres down")
	source := &fakeSource{hackathons: []domain.Hackathon{dueIn("soon", 2*time.Hour, 0)}}
	store := &fakeStore{err: wantErr}

	_, err := newTestPipeline(source, store, &fakeNotifier{}, 3).Run(context.Background(), runNow, RunOptions{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestFetchScored(t *testing.T) {
	t.Parallel()

	source := &fakeSource{hackathons: []domain.Hackathon{
		dueIn("later", 30*time.Hour, 0),
		dueIn("soon", 2*time.Hour, 0),
		dueIn("distant", 400*time.Hour, 0),
	}}
	store := &fakeStore{loaded: domain.History{}}
	notifier := &fakeNotifier{}

	scored, err := newTestPipeline(source, store, notifier, 3).FetchScored(context.Background(), runNow)
	if err != nil {
		t.Fatalf("FetchScored error: %v", err)
	}

	// Full ranking, including IGNORE, most urgent first.
	if len(scored) != 3 {
		t.Fatalf("got %d entries, want 3", len(scored))
	}
	if scored[0].Name != "soon" {
		t.Fatalf("top entry = %s, want soon", scored[0].Name)
	}
	if scored[2].Tier != domain.TierIgnore {
		t.Fatalf("last tier = %s, want IGNORE", scored[2].Tier)
	}

	if store.loads != 0 || len(notifier.sent) != 0 {
		t.Fatal("report path touched history or notifications")
	}
}
