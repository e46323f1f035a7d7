package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/tasks"
)

type recordingQueue struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (q *recordingQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.names = append(q.names, task.Config().Name)
	return "task-id", nil
}

func testSchedulerConfig() config.Scheduler {
	return config.Scheduler{
		Enabled:           true,
		ReconcileSchedule: "30 3 * * *",
		AuditSchedule:     "0 4 * * *",
		EnrichBatchSize:   10,
	}
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.NoError(t, ValidateSchedule("30 3 * * 1-5"))
	assert.Error(t, ValidateSchedule("every day"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestMaintenanceScheduler_StartStop(t *testing.T) {
	s := NewMaintenanceScheduler(&recordingQueue{}, testSchedulerConfig(), config.Audit{RetentionDays: 30})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	runs := s.NextRuns()
	assert.Contains(t, runs, "reconcile")
	assert.Contains(t, runs, "audit_cleanup")
	assert.NotContains(t, runs, "enrich", "empty schedule is skipped")

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Empty(t, s.NextRuns())

	// Restarting must not duplicate entries.
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.NextRuns(), 2)
	s.Stop()
}

func TestMaintenanceScheduler_InvalidSchedule(t *testing.T) {
	cfg := testSchedulerConfig()
	cfg.EnrichSchedule = "not a cron"
	s := NewMaintenanceScheduler(&recordingQueue{}, cfg, config.Audit{})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrich")
	assert.False(t, s.IsRunning())
}

func TestMaintenanceScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewMaintenanceScheduler(&recordingQueue{}, testSchedulerConfig(), config.Audit{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestMaintenanceScheduler_RunEnqueuesJobTasks(t *testing.T) {
	queue := &recordingQueue{}
	s := NewMaintenanceScheduler(queue, testSchedulerConfig(), config.Audit{RetentionDays: 7})

	for _, j := range s.jobs {
		s.run(j)
	}

	assert.Equal(t, []string{
		"reconcile_word_counts",
		"cleanup_orphan_definitions",
		"enrich_pending_words",
		"cleanup_audit_events",
	}, queue.names)

	enrich := s.jobs[1].tasks[0].(tasks.EnrichPendingWordsTask)
	assert.Equal(t, 10, enrich.Limit)
	cleanup := s.jobs[2].tasks[0].(tasks.CleanupAuditEventsTask)
	assert.Equal(t, 7, cleanup.RetentionDays)
}

func TestMaintenanceScheduler_RunSurvivesEnqueueErrors(t *testing.T) {
	queue := &recordingQueue{err: errors.New("queue closed")}
	s := NewMaintenanceScheduler(queue, testSchedulerConfig(), config.Audit{})

	assert.NotPanics(t, func() { s.run(s.jobs[0]) })
	assert.Empty(t, queue.names)
}
