// Package words provides database operations for the words of a vocab.
package words

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(word *entities.Word) error {
	return r.db.Create(word).Error
}

// GetByID returns gorm.ErrRecordNotFound when the word does not exist.
func (r *Repository) GetByID(id uint) (*entities.Word, error) {
	var word entities.Word
	if err := r.db.First(&word, id).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// GetByVocab returns the words of a vocab in insertion order.
func (r *Repository) GetByVocab(vocabID uint) ([]entities.Word, error) {
	var words []entities.Word
	err := r.db.Where("vocab_id = ?", vocabID).Order("word_id ASC").Find(&words).Error
	return words, err
}

// FindByExpression looks up an exact, case-sensitive expression inside a vocab.
// It returns (nil, nil) when no word matches.
func (r *Repository) FindByExpression(vocabID uint, expression string) (*entities.Word, error) {
	var word entities.Word
	err := r.db.Where("vocab_id = ? AND expression = ?", vocabID, expression).First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (r *Repository) UpdateExpression(word *entities.Word) error {
	return r.db.Model(word).Update("expression", word.Expression).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Word{}, id).Error
}

// IDsByVocab returns the ids of every word in the vocab.
func (r *Repository) IDsByVocab(vocabID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Word{}).Where("vocab_id = ?", vocabID).Pluck("word_id", &ids).Error
	return ids, err
}

func (r *Repository) DeleteByVocab(vocabID uint) (int64, error) {
	result := r.db.Where("vocab_id = ?", vocabID).Delete(&entities.Word{})
	return result.RowsAffected, result.Error
}

// FindWithoutDefinitions returns up to limit words that have no linked definition.
func (r *Repository) FindWithoutDefinitions(limit int) ([]entities.Word, error) {
	var words []entities.Word
	query := r.db.Where("NOT EXISTS (SELECT 1 FROM word_definition wd WHERE wd.word_id = word.word_id)").
		Order("word_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&words).Error
	return words, err
}
