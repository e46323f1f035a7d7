package services

import "github.com/mrlokans/myvoca/internal/entities"

// Request bodies. Binding tags are checked by gin before a service is called.

type VocabRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type WordRequest struct {
	Expression string `json:"expression" binding:"required,notblank,max=32"`
}

// UpdateStatRequest replaces every counter of a stat row.
type UpdateStatRequest struct {
	IsLearned      int `json:"isLearned" binding:"oneof=0 1"`
	CorrectCount   int `json:"correctCount" binding:"min=0"`
	IncorrectCount int `json:"incorrectCount" binding:"min=0"`
}

type AnswerRequest struct {
	Correct *bool `json:"correct" binding:"required"`
}

type DefinitionRequest struct {
	Text         string `json:"text" binding:"required,notblank,max=1000"`
	PartOfSpeech string `json:"partOfSpeech" binding:"max=50"`
	Example      string `json:"example" binding:"max=1000"`
}

// Response views.

type VocabView struct {
	VocabID     uint   `json:"vocabId"`
	UserID      uint   `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WordCount   int64  `json:"wordCount"`
}

type WordView struct {
	WordID     uint   `json:"wordId"`
	VocabID    uint   `json:"vocabId"`
	Expression string `json:"expression"`
}

type StatView struct {
	WordID         uint `json:"wordId"`
	IsLearned      int  `json:"isLearned"`
	CorrectCount   int  `json:"correctCount"`
	IncorrectCount int  `json:"incorrectCount"`
}

type DefinitionView struct {
	DefinitionID uint   `json:"definitionId"`
	Text         string `json:"text"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Example      string `json:"example,omitempty"`
	Source       string `json:"source"`
}

type VocabStatsView struct {
	VocabID        uint  `json:"vocabId"`
	TotalWords     int64 `json:"totalWords"`
	LearnedWords   int64 `json:"learnedWords"`
	CorrectCount   int64 `json:"correctCount"`
	IncorrectCount int64 `json:"incorrectCount"`
}

func toVocabView(v *entities.Vocab) VocabView {
	return VocabView{
		VocabID:     v.ID,
		UserID:      v.UserID,
		Title:       v.Title,
		Description: v.Description,
		WordCount:   v.WordCount,
	}
}

func toWordView(w *entities.Word) WordView {
	return WordView{WordID: w.ID, VocabID: w.VocabID, Expression: w.Expression}
}

func toWordViews(words []entities.Word) []WordView {
	views := make([]WordView, 0, len(words))
	for i := range words {
		views = append(views, toWordView(&words[i]))
	}
	return views
}

func toStatView(s *entities.Stat) StatView {
	return StatView{
		WordID:         s.WordID,
		IsLearned:      s.IsLearned,
		CorrectCount:   s.CorrectCount,
		IncorrectCount: s.IncorrectCount,
	}
}

func toDefinitionView(d *entities.Definition) DefinitionView {
	return DefinitionView{
		DefinitionID: d.ID,
		Text:         d.Text,
		PartOfSpeech: d.PartOfSpeech,
		Example:      d.Example,
		Source:       d.Source,
	}
}

func toDefinitionViews(defs []entities.Definition) []DefinitionView {
	views := make([]DefinitionView, 0, len(defs))
	for i := range defs {
		views = append(views, toDefinitionView(&defs[i]))
	}
	return views
}
