package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/myvoca/internal/audit"
)

// WordCountReconciler repairs cached vocab word counts.
type WordCountReconciler interface {
	ReconcileWordCounts(ctx context.Context) (int, error)
}

// OrphanDefinitionsCleaner deletes definitions no word links to.
type OrphanDefinitionsCleaner interface {
	DeleteOrphanDefinitions(ctx context.Context) (int64, error)
}

// ReconcileWordCountsTask recomputes every drifted vocab word count.
type ReconcileWordCountsTask struct{}

func (t ReconcileWordCountsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "reconcile_word_counts",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     5 * time.Minute,
		Retention:   defaultRetention(),
	}
}

func ReconcileWordCountsProcessor(reconciler WordCountReconciler, auditSvc *audit.Service) backlite.QueueProcessor[ReconcileWordCountsTask] {
	return func(ctx context.Context, task ReconcileWordCountsTask) error {
		if reconciler == nil {
			return fmt.Errorf("word count reconciler not configured")
		}

		fixed, err := reconciler.ReconcileWordCounts(ctx)
		auditSvc.LogMaintenance("reconcile_word_counts",
			fmt.Sprintf("Reconciled %d vocab word counts", fixed),
			map[string]any{"fixed": fixed}, err)
		if err != nil {
			return fmt.Errorf("reconcile word counts: %w", err)
		}

		log.Printf("[TASK] Reconciled %d vocab word counts", fixed)
		return nil
	}
}

func NewReconcileWordCountsQueue(reconciler WordCountReconciler, auditSvc *audit.Service) backlite.Queue {
	return backlite.NewQueue(ReconcileWordCountsProcessor(reconciler, auditSvc))
}

// CleanupOrphanDefinitionsTask removes definitions left behind by deleted words.
type CleanupOrphanDefinitionsTask struct{}

func (t CleanupOrphanDefinitionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_definitions",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention:   defaultRetention(),
	}
}

func CleanupOrphanDefinitionsProcessor(cleaner OrphanDefinitionsCleaner) backlite.QueueProcessor[CleanupOrphanDefinitionsTask] {
	return func(ctx context.Context, task CleanupOrphanDefinitionsTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan definitions cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanDefinitions(ctx)
		if err != nil {
			return fmt.Errorf("cleanup orphan definitions: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan definitions", deleted)
		return nil
	}
}

func NewCleanupOrphanDefinitionsQueue(cleaner OrphanDefinitionsCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanDefinitionsProcessor(cleaner))
}
