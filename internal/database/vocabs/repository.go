// Package vocabs provides database operations for vocab lists and their
// cached word count.
//
// # Usage
//
//	repo := vocabs.NewRepository(tx)
//	vocab, err := repo.GetByID(vocabID)
//	count, err := repo.CountWords(vocabID)
//	err = repo.SetWordCount(vocabID, count)
package vocabs

import (
	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/entities"
)

// Repository handles all vocab database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new vocab repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WordCountMismatch describes a vocab whose cached count drifted from the word table.
type WordCountMismatch struct {
	VocabID uint
	Cached  int64
	Actual  int64
}

func (r *Repository) Create(vocab *entities.Vocab) error {
	return r.db.Create(vocab).Error
}

// GetByID returns gorm.ErrRecordNotFound when the vocab does not exist.
func (r *Repository) GetByID(id uint) (*entities.Vocab, error) {
	var vocab entities.Vocab
	if err := r.db.First(&vocab, id).Error; err != nil {
		return nil, err
	}
	return &vocab, nil
}

// GetByUser returns every vocab owned by the user, oldest first.
func (r *Repository) GetByUser(userID uint) ([]entities.Vocab, error) {
	var vocabs []entities.Vocab
	err := r.db.Where("user_id = ?", userID).Order("vocab_id ASC").Find(&vocabs).Error
	return vocabs, err
}

// Update persists title and description only; the word count has its own path.
func (r *Repository) Update(vocab *entities.Vocab) error {
	return r.db.Model(vocab).Select("title", "description", "updated_at").Updates(vocab).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Vocab{}, id).Error
}

// CountWords counts the word rows that belong to the vocab.
func (r *Repository) CountWords(vocabID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Word{}).Where("vocab_id = ?", vocabID).Count(&count).Error
	return count, err
}

func (r *Repository) SetWordCount(vocabID uint, count int64) error {
	return r.db.Model(&entities.Vocab{}).
		Where("vocab_id = ?", vocabID).
		Update("word_count", count).Error
}

// FindStaleWordCounts lists vocabs whose word_count disagrees with the word table.
func (r *Repository) FindStaleWordCounts() ([]WordCountMismatch, error) {
	var mismatches []WordCountMismatch
	err := r.db.Table("vocab").
		Select("vocab.vocab_id AS vocab_id, vocab.word_count AS cached, COUNT(word.word_id) AS actual").
		Joins("LEFT JOIN word ON word.vocab_id = vocab.vocab_id").
		Group("vocab.vocab_id, vocab.word_count").
		Having("vocab.word_count <> COUNT(word.word_id)").
		Order("vocab.vocab_id").
		Scan(&mismatches).Error
	return mismatches, err
}
