package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/middleware"
	"github.com/mrlokans/myvoca/internal/services"
)

type WordsController struct {
	words WordService
	audit *audit.Service
}

func NewWordsController(words WordService, auditService *audit.Service) *WordsController {
	registerValidation()
	return &WordsController{words: words, audit: auditService}
}

// GetWords lists the words of a vocab.
// GET /api/vocabs/:id/words
func (wc *WordsController) GetWords(c *gin.Context) {
	vocabID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	words, err := wc.words.GetWords(c.Request.Context(), vocabID)
	if err != nil {
		respondServiceError(c, err, "get words")
		return
	}
	respondOK(c, words)
}

// CreateWord adds a word to a vocab. A duplicate expression answers 409.
// POST /api/vocabs/:id/words
func (wc *WordsController) CreateWord(c *gin.Context) {
	vocabID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.WordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	word, err := wc.words.CreateWord(c.Request.Context(), vocabID, req)
	if err != nil {
		respondServiceError(c, err, "create word")
		return
	}

	middleware.RecordWordCreated()
	wc.audit.LogCreate(wordEntry(c, word, fmt.Sprintf("Added %q", word.Expression)))
	respondOK(c, word)
}

// GetWordDetail returns one word.
// GET /api/words/:id
func (wc *WordsController) GetWordDetail(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := wc.words.GetWordDetail(c.Request.Context(), wordID)
	if err != nil {
		respondServiceError(c, err, "get word detail")
		return
	}
	respondOK(c, word)
}

// EditWord renames a word. Keeping its own expression is allowed.
// PATCH /api/words/:id
func (wc *WordsController) EditWord(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.WordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	word, err := wc.words.EditWord(c.Request.Context(), wordID, req)
	if err != nil {
		respondServiceError(c, err, "edit word")
		return
	}

	wc.audit.LogUpdate(wordEntry(c, word, fmt.Sprintf("Renamed to %q", word.Expression)))
	respondOK(c, word)
}

// DeleteWord removes a word and returns it as it was before deletion.
// DELETE /api/words/:id
func (wc *WordsController) DeleteWord(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := wc.words.DeleteWord(c.Request.Context(), wordID)
	if err != nil {
		respondServiceError(c, err, "delete word")
		return
	}

	middleware.RecordWordDeleted()
	wc.audit.LogDelete(wordEntry(c, word, fmt.Sprintf("Deleted %q", word.Expression)))
	respondOK(c, word)
}

func wordEntry(c *gin.Context, word services.WordView, description string) audit.Entry {
	return audit.Entry{
		EntityType:  "word",
		EntityID:    word.WordID,
		Description: description,
		RequestID:   middleware.GetRequestID(c),
		Metadata:    map[string]any{"vocab_id": word.VocabID},
	}
}
