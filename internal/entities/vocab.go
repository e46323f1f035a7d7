package entities

import "time"

// Vocab is a user-owned list of words.
// WordCount caches the number of Word rows pointing at the vocab and is
// rewritten from a COUNT query after every word insert or delete.
type Vocab struct {
	ID          uint   `gorm:"primaryKey;column:vocab_id"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	WordCount   int64  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Word is a single expression inside a vocab. Expressions are unique per vocab
// (case-sensitive), enforced both by the service layer and by a composite index.
type Word struct {
	ID         uint   `gorm:"primaryKey;column:word_id"`
	VocabID    uint   `gorm:"not null;uniqueIndex:idx_word_vocab_expression,priority:1"`
	Expression string `gorm:"size:32;not null;uniqueIndex:idx_word_vocab_expression,priority:2"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Definition is a reusable meaning that can be linked to many words.
type Definition struct {
	ID           uint   `gorm:"primaryKey;column:definition_id"`
	Text         string `gorm:"size:1000;not null;uniqueIndex"`
	PartOfSpeech string `gorm:"size:50"`
	Example      string `gorm:"size:1000"`
	Source       string `gorm:"size:50"` // "manual" or the dictionary client name
	CreatedAt    time.Time
}

// WordDefinition links a word to a definition (composite primary key).
type WordDefinition struct {
	WordID       uint `gorm:"primaryKey;autoIncrement:false"`
	DefinitionID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt    time.Time
}

// Stat holds learning progress for exactly one word.
type Stat struct {
	WordID         uint `gorm:"primaryKey;autoIncrement:false"`
	IsLearned      int  `gorm:"not null"` // 0 or 1
	CorrectCount   int  `gorm:"not null"`
	IncorrectCount int  `gorm:"not null"`
	UpdatedAt      time.Time
}

const DefinitionSourceManual = "manual"

func (Vocab) TableName() string {
	return "vocab"
}

func (Word) TableName() string {
	return "word"
}

func (Definition) TableName() string {
	return "definition"
}

func (WordDefinition) TableName() string {
	return "word_definition"
}

func (Stat) TableName() string {
	return "stat"
}
