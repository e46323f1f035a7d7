package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/middleware"
	"github.com/mrlokans/myvoca/internal/services"
)

// WordEnricher attaches dictionary definitions to a word.
type WordEnricher interface {
	EnrichWord(ctx context.Context, wordID uint) ([]services.DefinitionView, error)
}

// PendingWordsFinder lists words that still have no definition.
type PendingWordsFinder interface {
	FindWordsWithoutDefinitions(ctx context.Context, limit int) ([]services.WordView, error)
}

// EnrichWordTask enriches a single word with dictionary definitions.
type EnrichWordTask struct {
	WordID uint `json:"word_id"`
}

func (t EnrichWordTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_word",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention:   defaultRetention(),
	}
}

// EnrichWordProcessor retries on dictionary failures but gives up silently
// when the word was deleted in the meantime.
func EnrichWordProcessor(enricher WordEnricher, auditSvc *audit.Service) backlite.QueueProcessor[EnrichWordTask] {
	return func(ctx context.Context, task EnrichWordTask) error {
		defs, err := enricher.EnrichWord(ctx, task.WordID)
		if errors.Is(err, services.ErrNoWord) {
			log.Printf("[TASK] Word %d no longer exists, skipping enrichment", task.WordID)
			return nil
		}
		middleware.RecordDictionaryLookup(err == nil)
		auditSvc.LogEnrich(audit.Entry{
			EntityID:    task.WordID,
			Description: fmt.Sprintf("Attached %d dictionary definitions", len(defs)),
			Metadata:    map[string]any{"definitions": len(defs)},
		}, err)
		if err != nil {
			return fmt.Errorf("enrich word %d: %w", task.WordID, err)
		}

		log.Printf("[TASK] Enriched word %d with %d definitions", task.WordID, len(defs))
		return nil
	}
}

func NewEnrichWordQueue(enricher WordEnricher, auditSvc *audit.Service) backlite.Queue {
	return backlite.NewQueue(EnrichWordProcessor(enricher, auditSvc))
}

// EnrichPendingWordsTask enriches up to Limit words that have no definition yet.
type EnrichPendingWordsTask struct {
	Limit int `json:"limit,omitempty"` // 0 = no limit
}

func (t EnrichPendingWordsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_pending_words",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention:   defaultRetention(),
	}
}

func EnrichPendingWordsProcessor(finder PendingWordsFinder, enricher WordEnricher, auditSvc *audit.Service) backlite.QueueProcessor[EnrichPendingWordsTask] {
	return func(ctx context.Context, task EnrichPendingWordsTask) error {
		words, err := finder.FindWordsWithoutDefinitions(ctx, task.Limit)
		if err != nil {
			return fmt.Errorf("find pending words: %w", err)
		}

		var enriched, failed int
		for _, word := range words {
			select {
			case <-ctx.Done():
				log.Printf("[TASK] Context cancelled, enriched %d words, %d failed", enriched, failed)
				return ctx.Err()
			default:
			}

			_, err := enricher.EnrichWord(ctx, word.WordID)
			if errors.Is(err, services.ErrNoWord) {
				continue
			}
			middleware.RecordDictionaryLookup(err == nil)
			if err != nil {
				log.Printf("[TASK] Failed to enrich %q: %v", word.Expression, err)
				failed++
				continue
			}
			enriched++
		}

		auditSvc.LogMaintenance("enrich_pending_words",
			fmt.Sprintf("Enriched %d of %d words without definitions", enriched, len(words)),
			map[string]any{"enriched": enriched, "failed": failed, "total": len(words)}, nil)
		log.Printf("[TASK] Enriched %d words, %d failed out of %d total", enriched, failed, len(words))
		return nil
	}
}

func NewEnrichPendingWordsQueue(finder PendingWordsFinder, enricher WordEnricher, auditSvc *audit.Service) backlite.Queue {
	return backlite.NewQueue(EnrichPendingWordsProcessor(finder, enricher, auditSvc))
}
