package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/database/vocabs"
	"github.com/mrlokans/myvoca/internal/database/words"
	"github.com/mrlokans/myvoca/internal/entities"
)

// Lookups shared by the services. They run on whatever handle they are given,
// usually a transaction.

func getVocab(db *gorm.DB, vocabID uint) (*entities.Vocab, error) {
	vocab, err := vocabs.NewRepository(db).GetByID(vocabID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoVocab
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vocab %d: %w", vocabID, err)
	}
	return vocab, nil
}

func getWord(db *gorm.DB, wordID uint) (*entities.Word, error) {
	word, err := words.NewRepository(db).GetByID(wordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoWord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load word %d: %w", wordID, err)
	}
	return word, nil
}

// refreshWordCount rewrites the cached count from a fresh COUNT query and
// returns the new value.
func refreshWordCount(db *gorm.DB, vocabID uint) (int64, error) {
	repo := vocabs.NewRepository(db)
	count, err := repo.CountWords(vocabID)
	if err != nil {
		return 0, fmt.Errorf("failed to count words of vocab %d: %w", vocabID, err)
	}
	if err := repo.SetWordCount(vocabID, count); err != nil {
		return 0, fmt.Errorf("failed to store word count of vocab %d: %w", vocabID, err)
	}
	return count, nil
}

// ensureUniqueExpression fails with ErrDuplicatedWord when another word of the
// vocab already uses expression. exceptWordID lets a word keep its own expression.
func ensureUniqueExpression(db *gorm.DB, vocabID uint, expression string, exceptWordID uint) error {
	existing, err := words.NewRepository(db).FindByExpression(vocabID, expression)
	if err != nil {
		return fmt.Errorf("failed to check expression: %w", err)
	}
	if existing != nil && existing.ID != exceptWordID {
		return ErrDuplicatedWord
	}
	return nil
}

// translateWriteError maps a unique index violation to ErrDuplicatedWord.
func translateWriteError(err error, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicatedWord
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
