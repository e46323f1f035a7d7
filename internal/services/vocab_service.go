package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/database/definitions"
	"github.com/mrlokans/myvoca/internal/database/stats"
	"github.com/mrlokans/myvoca/internal/database/vocabs"
	"github.com/mrlokans/myvoca/internal/database/words"
	"github.com/mrlokans/myvoca/internal/entities"
)

// VocabService manages vocab lists and keeps their cached word count honest.
type VocabService struct {
	db *gorm.DB
}

func NewVocabService(db *gorm.DB) *VocabService {
	return &VocabService{db: db}
}

// GetVocabs returns every vocab of the user, oldest first. An unknown user
// simply has no vocabs.
func (s *VocabService) GetVocabs(ctx context.Context, userID uint) ([]VocabView, error) {
	list, err := vocabs.NewRepository(s.db.WithContext(ctx)).GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabs of user %d: %w", userID, err)
	}
	views := make([]VocabView, 0, len(list))
	for i := range list {
		views = append(views, toVocabView(&list[i]))
	}
	return views, nil
}

func (s *VocabService) GetVocabDetail(ctx context.Context, vocabID uint) (VocabView, error) {
	vocab, err := getVocab(s.db.WithContext(ctx), vocabID)
	if err != nil {
		return VocabView{}, err
	}
	return toVocabView(vocab), nil
}

func (s *VocabService) CreateVocab(ctx context.Context, userID uint, req VocabRequest) (VocabView, error) {
	vocab := &entities.Vocab{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return vocabs.NewRepository(tx).Create(vocab)
	})
	if err != nil {
		return VocabView{}, fmt.Errorf("failed to create vocab: %w", err)
	}
	return toVocabView(vocab), nil
}

func (s *VocabService) EditVocab(ctx context.Context, vocabID uint, req VocabRequest) (VocabView, error) {
	var view VocabView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vocab, err := getVocab(tx, vocabID)
		if err != nil {
			return err
		}
		vocab.Title = req.Title
		vocab.Description = req.Description
		if err := vocabs.NewRepository(tx).Update(vocab); err != nil {
			return fmt.Errorf("failed to update vocab %d: %w", vocabID, err)
		}
		view = toVocabView(vocab)
		return nil
	})
	return view, err
}

// DeleteVocab removes the vocab together with its words, their stats and
// definition links, and returns the vocab as it was before deletion.
func (s *VocabService) DeleteVocab(ctx context.Context, vocabID uint) (VocabView, error) {
	var view VocabView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vocab, err := getVocab(tx, vocabID)
		if err != nil {
			return err
		}
		view = toVocabView(vocab)

		wordRepo := words.NewRepository(tx)
		wordIDs, err := wordRepo.IDsByVocab(vocabID)
		if err != nil {
			return fmt.Errorf("failed to list words of vocab %d: %w", vocabID, err)
		}
		if err := stats.NewRepository(tx).DeleteByWordIDs(wordIDs); err != nil {
			return fmt.Errorf("failed to delete stats: %w", err)
		}
		defRepo := definitions.NewRepository(tx)
		if err := defRepo.DeleteLinksByWordIDs(wordIDs); err != nil {
			return fmt.Errorf("failed to delete definition links: %w", err)
		}
		if _, err := defRepo.DeleteOrphans(); err != nil {
			return fmt.Errorf("failed to delete orphaned definitions: %w", err)
		}
		if _, err := wordRepo.DeleteByVocab(vocabID); err != nil {
			return fmt.Errorf("failed to delete words: %w", err)
		}
		if err := vocabs.NewRepository(tx).Delete(vocabID); err != nil {
			return fmt.Errorf("failed to delete vocab %d: %w", vocabID, err)
		}
		return nil
	})
	return view, err
}

// CountWords counts the words stored under the vocab.
func (s *VocabService) CountWords(ctx context.Context, vocabID uint) (int64, error) {
	db := s.db.WithContext(ctx)
	if _, err := getVocab(db, vocabID); err != nil {
		return 0, err
	}
	return vocabs.NewRepository(db).CountWords(vocabID)
}

// ReconcileWordCounts repairs every vocab whose cached word count drifted
// from the word table and returns how many were fixed.
func (s *VocabService) ReconcileWordCounts(ctx context.Context) (int, error) {
	fixed := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := vocabs.NewRepository(tx)
		mismatches, err := repo.FindStaleWordCounts()
		if err != nil {
			return fmt.Errorf("failed to find stale word counts: %w", err)
		}
		for _, m := range mismatches {
			if err := repo.SetWordCount(m.VocabID, m.Actual); err != nil {
				return fmt.Errorf("failed to fix word count of vocab %d: %w", m.VocabID, err)
			}
			log.Printf("Reconciled word count of vocab %d: %d -> %d", m.VocabID, m.Cached, m.Actual)
		}
		fixed = len(mismatches)
		return nil
	})
	return fixed, err
}
