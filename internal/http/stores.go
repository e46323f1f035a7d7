package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	auditRepo "github.com/mrlokans/myvoca/internal/database/audit"
	"github.com/mrlokans/myvoca/internal/entities"
	"github.com/mrlokans/myvoca/internal/services"
)

// VocabService defines the vocab operations used by VocabsController.
type VocabService interface {
	GetVocabs(ctx context.Context, userID uint) ([]services.VocabView, error)
	GetVocabDetail(ctx context.Context, vocabID uint) (services.VocabView, error)
	CreateVocab(ctx context.Context, userID uint, req services.VocabRequest) (services.VocabView, error)
	EditVocab(ctx context.Context, vocabID uint, req services.VocabRequest) (services.VocabView, error)
	DeleteVocab(ctx context.Context, vocabID uint) (services.VocabView, error)
}

// WordService defines the word operations used by WordsController.
type WordService interface {
	GetWords(ctx context.Context, vocabID uint) ([]services.WordView, error)
	CreateWord(ctx context.Context, vocabID uint, req services.WordRequest) (services.WordView, error)
	GetWordDetail(ctx context.Context, wordID uint) (services.WordView, error)
	EditWord(ctx context.Context, wordID uint, req services.WordRequest) (services.WordView, error)
	DeleteWord(ctx context.Context, wordID uint) (services.WordView, error)
}

type StatService interface {
	GetStat(ctx context.Context, wordID uint) (services.StatView, error)
	UpdateStat(ctx context.Context, wordID uint, req services.UpdateStatRequest) (services.StatView, error)
	RecordAnswer(ctx context.Context, wordID uint, req services.AnswerRequest) (services.StatView, error)
	GetVocabStats(ctx context.Context, vocabID uint) (services.VocabStatsView, error)
}

type DefinitionService interface {
	GetDefinitions(ctx context.Context, wordID uint) ([]services.DefinitionView, error)
	AttachDefinition(ctx context.Context, wordID uint, req services.DefinitionRequest) (services.DefinitionView, error)
	DetachDefinition(ctx context.Context, wordID, definitionID uint) (services.DefinitionView, error)
	EnrichWord(ctx context.Context, wordID uint) ([]services.DefinitionView, error)
}

// AuditReader lists recorded audit events.
type AuditReader interface {
	ListEvents(ctx context.Context, f auditRepo.Filter, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
