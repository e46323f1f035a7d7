package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/database/definitions"
	"github.com/mrlokans/myvoca/internal/database/stats"
	"github.com/mrlokans/myvoca/internal/database/words"
	"github.com/mrlokans/myvoca/internal/entities"
)

// WordService manages the words of a vocab. Every mutation recomputes the
// parent's word count inside the same transaction.
type WordService struct {
	db    *gorm.DB
	stats *StatService
}

func NewWordService(db *gorm.DB, stats *StatService) *WordService {
	return &WordService{db: db, stats: stats}
}

func (s *WordService) GetWords(ctx context.Context, vocabID uint) ([]WordView, error) {
	db := s.db.WithContext(ctx)
	if _, err := getVocab(db, vocabID); err != nil {
		return nil, err
	}
	list, err := words.NewRepository(db).GetByVocab(vocabID)
	if err != nil {
		return nil, fmt.Errorf("failed to list words of vocab %d: %w", vocabID, err)
	}
	return toWordViews(list), nil
}

// CreateWord adds an expression to a vocab, refreshes the vocab's word count
// and initializes a zeroed stat, all in one transaction.
// It returns ErrNoVocab or ErrDuplicatedWord when the business rules reject the word.
func (s *WordService) CreateWord(ctx context.Context, vocabID uint, req WordRequest) (WordView, error) {
	var view WordView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getVocab(tx, vocabID); err != nil {
			return err
		}
		if err := ensureUniqueExpression(tx, vocabID, req.Expression, 0); err != nil {
			return err
		}

		word := &entities.Word{VocabID: vocabID, Expression: req.Expression}
		if err := words.NewRepository(tx).Create(word); err != nil {
			return translateWriteError(err, "create word")
		}
		if _, err := refreshWordCount(tx, vocabID); err != nil {
			return err
		}
		if _, err := s.stats.upsert(tx, word.ID, UpdateStatRequest{}); err != nil {
			return err
		}

		view = toWordView(word)
		return nil
	})
	return view, err
}

func (s *WordService) GetWordDetail(ctx context.Context, wordID uint) (WordView, error) {
	word, err := getWord(s.db.WithContext(ctx), wordID)
	if err != nil {
		return WordView{}, err
	}
	return toWordView(word), nil
}

// EditWord changes the expression of a word. Re-submitting the current
// expression is not a duplicate.
func (s *WordService) EditWord(ctx context.Context, wordID uint, req WordRequest) (WordView, error) {
	var view WordView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := getWord(tx, wordID)
		if err != nil {
			return err
		}
		if err := ensureUniqueExpression(tx, word.VocabID, req.Expression, word.ID); err != nil {
			return err
		}

		word.Expression = req.Expression
		if err := words.NewRepository(tx).UpdateExpression(word); err != nil {
			return translateWriteError(err, "update word")
		}
		view = toWordView(word)
		return nil
	})
	return view, err
}

// DeleteWord removes a word with its stat and definition links and returns
// the word as it was before deletion.
func (s *WordService) DeleteWord(ctx context.Context, wordID uint) (WordView, error) {
	var view WordView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := getWord(tx, wordID)
		if err != nil {
			return err
		}
		if _, err := getVocab(tx, word.VocabID); err != nil {
			return err
		}
		view = toWordView(word)

		ids := []uint{word.ID}
		if err := stats.NewRepository(tx).DeleteByWordIDs(ids); err != nil {
			return fmt.Errorf("failed to delete stat of word %d: %w", wordID, err)
		}
		defRepo := definitions.NewRepository(tx)
		if err := defRepo.DeleteLinksByWordIDs(ids); err != nil {
			return fmt.Errorf("failed to delete definition links of word %d: %w", wordID, err)
		}
		if _, err := defRepo.DeleteOrphans(); err != nil {
			return fmt.Errorf("failed to delete orphaned definitions: %w", err)
		}
		if err := words.NewRepository(tx).Delete(word.ID); err != nil {
			return fmt.Errorf("failed to delete word %d: %w", wordID, err)
		}
		_, err = refreshWordCount(tx, word.VocabID)
		return err
	})
	return view, err
}

// FindWordsWithoutDefinitions lists up to limit words that have no definition yet.
func (s *WordService) FindWordsWithoutDefinitions(ctx context.Context, limit int) ([]WordView, error) {
	list, err := words.NewRepository(s.db.WithContext(ctx)).FindWithoutDefinitions(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find words without definitions: %w", err)
	}
	return toWordViews(list), nil
}
