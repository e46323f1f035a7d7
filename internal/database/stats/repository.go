// Package stats provides database operations for per-word learning stats.
package stats

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/myvoca/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Aggregate summarises the stats of every word in a vocab.
type Aggregate struct {
	TotalWords     int64
	LearnedWords   int64
	CorrectCount   int64
	IncorrectCount int64
}

// GetByWordID returns gorm.ErrRecordNotFound when the word has no stat row.
func (r *Repository) GetByWordID(wordID uint) (*entities.Stat, error) {
	var stat entities.Stat
	if err := r.db.Where("word_id = ?", wordID).First(&stat).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}

// Upsert inserts the stat or overwrites every counter of an existing row.
func (r *Repository) Upsert(stat *entities.Stat) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "word_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_learned", "correct_count", "incorrect_count", "updated_at"}),
	}).Create(stat).Error
}

// IncrementCorrect bumps the correct counter in a single UPDATE.
// It returns the number of rows touched (0 when the stat row is missing).
func (r *Repository) IncrementCorrect(wordID uint) (int64, error) {
	return r.increment(wordID, "correct_count")
}

func (r *Repository) IncrementIncorrect(wordID uint) (int64, error) {
	return r.increment(wordID, "incorrect_count")
}

func (r *Repository) increment(wordID uint, column string) (int64, error) {
	result := r.db.Model(&entities.Stat{}).
		Where("word_id = ?", wordID).
		Update(column, gorm.Expr(column+" + ?", 1))
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteByWordIDs(wordIDs []uint) error {
	if len(wordIDs) == 0 {
		return nil
	}
	return r.db.Where("word_id IN ?", wordIDs).Delete(&entities.Stat{}).Error
}

// AggregateByVocab computes totals over the words of a vocab. Words without
// a stat row still count towards TotalWords.
func (r *Repository) AggregateByVocab(vocabID uint) (*Aggregate, error) {
	var agg Aggregate
	err := r.db.Table("word").
		Select(`COUNT(word.word_id) AS total_words,
			COALESCE(SUM(CASE WHEN stat.is_learned = 1 THEN 1 ELSE 0 END), 0) AS learned_words,
			COALESCE(SUM(stat.correct_count), 0) AS correct_count,
			COALESCE(SUM(stat.incorrect_count), 0) AS incorrect_count`).
		Joins("LEFT JOIN stat ON stat.word_id = word.word_id").
		Where("word.vocab_id = ?", vocabID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
