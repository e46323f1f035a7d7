package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/database/stats"
	"github.com/mrlokans/myvoca/internal/entities"
)

// StatService tracks learning progress per word.
type StatService struct {
	db *gorm.DB
}

func NewStatService(db *gorm.DB) *StatService {
	return &StatService{db: db}
}

func (s *StatService) GetStat(ctx context.Context, wordID uint) (StatView, error) {
	db := s.db.WithContext(ctx)
	if _, err := getWord(db, wordID); err != nil {
		return StatView{}, err
	}
	stat, err := loadStat(db, wordID)
	if err != nil {
		return StatView{}, err
	}
	return toStatView(stat), nil
}

// UpdateStat overwrites the counters of a word, creating the row if needed.
func (s *StatService) UpdateStat(ctx context.Context, wordID uint, req UpdateStatRequest) (StatView, error) {
	var view StatView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getWord(tx, wordID); err != nil {
			return err
		}
		stat, err := s.upsert(tx, wordID, req)
		if err != nil {
			return err
		}
		view = toStatView(stat)
		return nil
	})
	return view, err
}

// RecordAnswer counts one quiz answer for the word.
func (s *StatService) RecordAnswer(ctx context.Context, wordID uint, req AnswerRequest) (StatView, error) {
	var view StatView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getWord(tx, wordID); err != nil {
			return err
		}

		repo := stats.NewRepository(tx)
		increment := repo.IncrementIncorrect
		if req.Correct != nil && *req.Correct {
			increment = repo.IncrementCorrect
		}
		touched, err := increment(wordID)
		if err != nil {
			return fmt.Errorf("failed to record answer for word %d: %w", wordID, err)
		}
		if touched == 0 {
			return ErrNoStat
		}

		stat, err := loadStat(tx, wordID)
		if err != nil {
			return err
		}
		view = toStatView(stat)
		return nil
	})
	return view, err
}

func (s *StatService) GetVocabStats(ctx context.Context, vocabID uint) (VocabStatsView, error) {
	db := s.db.WithContext(ctx)
	if _, err := getVocab(db, vocabID); err != nil {
		return VocabStatsView{}, err
	}
	agg, err := stats.NewRepository(db).AggregateByVocab(vocabID)
	if err != nil {
		return VocabStatsView{}, fmt.Errorf("failed to aggregate stats of vocab %d: %w", vocabID, err)
	}
	return VocabStatsView{
		VocabID:        vocabID,
		TotalWords:     agg.TotalWords,
		LearnedWords:   agg.LearnedWords,
		CorrectCount:   agg.CorrectCount,
		IncorrectCount: agg.IncorrectCount,
	}, nil
}

// upsert writes a stat row on the given handle so that callers can include
// it in their own transaction.
func (s *StatService) upsert(tx *gorm.DB, wordID uint, req UpdateStatRequest) (*entities.Stat, error) {
	stat := &entities.Stat{
		WordID:         wordID,
		IsLearned:      req.IsLearned,
		CorrectCount:   req.CorrectCount,
		IncorrectCount: req.IncorrectCount,
	}
	if err := stats.NewRepository(tx).Upsert(stat); err != nil {
		return nil, fmt.Errorf("failed to save stat of word %d: %w", wordID, err)
	}
	return stat, nil
}

func loadStat(db *gorm.DB, wordID uint) (*entities.Stat, error) {
	stat, err := stats.NewRepository(db).GetByWordID(wordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoStat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stat of word %d: %w", wordID, err)
	}
	return stat, nil
}
