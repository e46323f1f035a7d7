package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/tasks"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands a task to the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

type job struct {
	name     string
	schedule string
	tasks    []backlite.Task
	entryID  cron.EntryID
}

// MaintenanceScheduler periodically enqueues the maintenance tasks:
// word count reconciliation with orphan definition cleanup, pending word
// enrichment and audit retention. Jobs with an empty schedule are skipped.
type MaintenanceScheduler struct {
	queue Enqueuer
	jobs  []*job

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewMaintenanceScheduler(queue Enqueuer, cfg config.Scheduler, auditCfg config.Audit) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		queue: queue,
		jobs: []*job{
			{
				name:     "reconcile",
				schedule: cfg.ReconcileSchedule,
				tasks:    []backlite.Task{tasks.ReconcileWordCountsTask{}, tasks.CleanupOrphanDefinitionsTask{}},
			},
			{
				name:     "enrich",
				schedule: cfg.EnrichSchedule,
				tasks:    []backlite.Task{tasks.EnrichPendingWordsTask{Limit: cfg.EnrichBatchSize}},
			},
			{
				name:     "audit_cleanup",
				schedule: cfg.AuditSchedule,
				tasks:    []backlite.Task{tasks.CleanupAuditEventsTask{RetentionDays: auditCfg.RetentionDays}},
			},
		},
		cron: cron.New(cron.WithParser(parser)),
	}
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// Start registers every scheduled job and starts the cron loop. The
// scheduler stops itself when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	for _, j := range s.jobs {
		if j.schedule == "" {
			continue
		}
		if err := ValidateSchedule(j.schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", j.schedule, j.name, err)
		}
	}

	for _, j := range s.jobs {
		if j.schedule == "" {
			log.Printf("[SCHEDULER] %s: no schedule, skipping", j.name)
			continue
		}
		j := j
		entryID, err := s.cron.AddFunc(j.schedule, func() { s.run(j) })
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
		j.entryID = entryID
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	for _, j := range s.jobs {
		if next := s.nextRunLocked(j); next != nil {
			log.Printf("[SCHEDULER] %s: schedule '%s', next run %v", j.name, j.schedule, *next)
		}
	}

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	for _, j := range s.jobs {
		if j.entryID != 0 {
			s.cron.Remove(j.entryID)
			j.entryID = 0
		}
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("[SCHEDULER] stopped")
}

func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRuns returns the next run time of every active job, keyed by job name.
func (s *MaintenanceScheduler) NextRuns() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make(map[string]time.Time)
	for _, j := range s.jobs {
		if next := s.nextRunLocked(j); next != nil {
			runs[j.name] = *next
		}
	}
	return runs
}

func (s *MaintenanceScheduler) nextRunLocked(j *job) *time.Time {
	if !s.isRunning || j.entryID == 0 {
		return nil
	}
	entry := s.cron.Entry(j.entryID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Schedule.Next(time.Now())
	return &next
}

func (s *MaintenanceScheduler) run(j *job) {
	for _, task := range j.tasks {
		id, err := s.queue.Enqueue(task)
		if err != nil {
			log.Printf("[SCHEDULER] %s: failed to enqueue %s: %v", j.name, task.Config().Name, err)
			continue
		}
		log.Printf("[SCHEDULER] %s: enqueued %s (%s)", j.name, task.Config().Name, id)
	}
}
