package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/services"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "tasks.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client := newTestClient(t)
	assert.True(t, client.Stop(context.Background()))
}

type testTask struct {
	Value string `json:"value"`
}

func (t testTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
		Retention:   defaultRetention(),
	}
}

func TestClientEnqueue(t *testing.T) {
	client := newTestClient(t)

	executed := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task testTask) error {
		executed <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	id, err := client.Enqueue(testTask{Value: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}

	assert.Eventually(t, func() bool {
		status, err := client.Status(ctx, id)
		return err == nil && status == backlite.TaskStatusSuccess
	}, 5*time.Second, 50*time.Millisecond)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.Tasks{Workers: 4})

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter, "unset fields keep defaults")
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestTaskConfigs(t *testing.T) {
	tests := []struct {
		task        backlite.Task
		name        string
		maxAttempts int
	}{
		{EnrichWordTask{WordID: 1}, "enrich_word", 3},
		{EnrichPendingWordsTask{Limit: 10}, "enrich_pending_words", 1},
		{ReconcileWordCountsTask{}, "reconcile_word_counts", 3},
		{CleanupOrphanDefinitionsTask{}, "cleanup_orphan_definitions", 1},
		{CleanupAuditEventsTask{RetentionDays: 7}, "cleanup_audit_events", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.task.Config()
			assert.Equal(t, tt.name, cfg.Name)
			assert.Equal(t, tt.maxAttempts, cfg.MaxAttempts)
			assert.NotNil(t, cfg.Retention)
		})
	}
}

type fakeEnricher struct {
	defs  map[uint]int
	errs  map[uint]error
	calls []uint
}

func (f *fakeEnricher) EnrichWord(_ context.Context, wordID uint) ([]services.DefinitionView, error) {
	f.calls = append(f.calls, wordID)
	if err := f.errs[wordID]; err != nil {
		return nil, err
	}
	return make([]services.DefinitionView, f.defs[wordID]), nil
}

type fakeFinder struct {
	words     []services.WordView
	lastLimit int
}

func (f *fakeFinder) FindWordsWithoutDefinitions(_ context.Context, limit int) ([]services.WordView, error) {
	f.lastLimit = limit
	return f.words, nil
}

// dictionaryLookups reads myvoca_dictionary_lookups_total{status} from the
// default registry.
func dictionaryLookups(t *testing.T, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "myvoca_dictionary_lookups_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" && l.GetValue() == status {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestEnrichWordProcessor(t *testing.T) {
	enricher := &fakeEnricher{
		defs: map[uint]int{1: 2},
		errs: map[uint]error{2: services.ErrNoWord, 3: errors.New("dictionary unavailable")},
	}
	process := EnrichWordProcessor(enricher, nil)
	ctx := context.Background()
	successes := dictionaryLookups(t, "success")
	failures := dictionaryLookups(t, "error")

	assert.NoError(t, process(ctx, EnrichWordTask{WordID: 1}))
	assert.NoError(t, process(ctx, EnrichWordTask{WordID: 2}), "deleted word is not retried")

	err := process(ctx, EnrichWordTask{WordID: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dictionary unavailable")

	assert.Equal(t, successes+1, dictionaryLookups(t, "success"))
	assert.Equal(t, failures+1, dictionaryLookups(t, "error"), "a deleted word is not a lookup")
}

func TestEnrichPendingWordsProcessor(t *testing.T) {
	finder := &fakeFinder{words: []services.WordView{
		{WordID: 1, Expression: "apple"},
		{WordID: 2, Expression: "pear"},
		{WordID: 3, Expression: "plum"},
	}}
	enricher := &fakeEnricher{errs: map[uint]error{2: errors.New("timeout")}}
	successes := dictionaryLookups(t, "success")
	failures := dictionaryLookups(t, "error")

	err := EnrichPendingWordsProcessor(finder, enricher, nil)(context.Background(), EnrichPendingWordsTask{Limit: 25})
	require.NoError(t, err, "single failures do not fail the batch")

	assert.Equal(t, 25, finder.lastLimit)
	assert.Equal(t, []uint{1, 2, 3}, enricher.calls)
	assert.Equal(t, successes+2, dictionaryLookups(t, "success"))
	assert.Equal(t, failures+1, dictionaryLookups(t, "error"))
}

func TestEnrichPendingWordsProcessor_Cancelled(t *testing.T) {
	finder := &fakeFinder{words: []services.WordView{{WordID: 1}}}
	enricher := &fakeEnricher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := EnrichPendingWordsProcessor(finder, enricher, nil)(ctx, EnrichPendingWordsTask{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, enricher.calls)
}

type fakeReconciler struct {
	fixed int
	err   error
}

func (f fakeReconciler) ReconcileWordCounts(context.Context) (int, error) {
	return f.fixed, f.err
}

func TestReconcileWordCountsProcessor(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, ReconcileWordCountsProcessor(fakeReconciler{fixed: 2}, nil)(ctx, ReconcileWordCountsTask{}))
	assert.Error(t, ReconcileWordCountsProcessor(fakeReconciler{err: errors.New("locked")}, nil)(ctx, ReconcileWordCountsTask{}))
	assert.Error(t, ReconcileWordCountsProcessor(nil, nil)(ctx, ReconcileWordCountsTask{}))
}

type fakeOrphanCleaner struct{ called bool }

func (f *fakeOrphanCleaner) DeleteOrphanDefinitions(context.Context) (int64, error) {
	f.called = true
	return 3, nil
}

func TestCleanupOrphanDefinitionsProcessor(t *testing.T) {
	cleaner := &fakeOrphanCleaner{}
	require.NoError(t, CleanupOrphanDefinitionsProcessor(cleaner)(context.Background(), CleanupOrphanDefinitionsTask{}))
	assert.True(t, cleaner.called)
}

type fakeAuditCleaner struct {
	retention time.Duration
}

func (f *fakeAuditCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return 0, nil
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &fakeAuditCleaner{}
	process := CleanupAuditEventsProcessor(cleaner)

	require.NoError(t, process(context.Background(), CleanupAuditEventsTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)

	require.NoError(t, process(context.Background(), CleanupAuditEventsTask{}))
	assert.Equal(t, defaultAuditRetentionDays*24*time.Hour, cleaner.retention)
}
