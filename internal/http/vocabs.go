package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/middleware"
	"github.com/mrlokans/myvoca/internal/services"
)

type VocabsController struct {
	vocabs VocabService
	stats  StatService
	audit  *audit.Service
}

func NewVocabsController(vocabs VocabService, stats StatService, auditService *audit.Service) *VocabsController {
	registerValidation()
	return &VocabsController{vocabs: vocabs, stats: stats, audit: auditService}
}

// GetVocabs lists every vocab of a user.
// GET /api/vocabs/all?user_id=
func (vc *VocabsController) GetVocabs(c *gin.Context) {
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	vocabs, err := vc.vocabs.GetVocabs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "get vocabs")
		return
	}
	respondOK(c, vocabs)
}

// GetVocabDetail returns one vocab.
// GET /api/vocabs/detail?vocab_id=
func (vc *VocabsController) GetVocabDetail(c *gin.Context) {
	vocabID, ok := parseQueryID(c, "vocab_id")
	if !ok {
		return
	}

	vocab, err := vc.vocabs.GetVocabDetail(c.Request.Context(), vocabID)
	if err != nil {
		respondServiceError(c, err, "get vocab detail")
		return
	}
	respondOK(c, vocab)
}

// CreateVocab creates a vocab owned by the user in the path.
// POST /api/vocabs/:id
func (vc *VocabsController) CreateVocab(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.VocabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vocab, err := vc.vocabs.CreateVocab(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "create vocab")
		return
	}

	vc.audit.LogCreate(audit.Entry{
		UserID:      vocab.UserID,
		EntityType:  "vocab",
		EntityID:    vocab.VocabID,
		Description: fmt.Sprintf("Created vocab %q", vocab.Title),
		RequestID:   middleware.GetRequestID(c),
	})
	respondOK(c, vocab)
}

// EditVocab updates title and description.
// PATCH /api/vocabs/:id
func (vc *VocabsController) EditVocab(c *gin.Context) {
	vocabID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.VocabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vocab, err := vc.vocabs.EditVocab(c.Request.Context(), vocabID, req)
	if err != nil {
		respondServiceError(c, err, "edit vocab")
		return
	}

	vc.audit.LogUpdate(audit.Entry{
		UserID:      vocab.UserID,
		EntityType:  "vocab",
		EntityID:    vocab.VocabID,
		Description: fmt.Sprintf("Updated vocab %q", vocab.Title),
		RequestID:   middleware.GetRequestID(c),
	})
	respondOK(c, vocab)
}

// DeleteVocab deletes a vocab with its words and returns the deleted vocab.
// DELETE /api/vocabs/:id
func (vc *VocabsController) DeleteVocab(c *gin.Context) {
	vocabID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vocab, err := vc.vocabs.DeleteVocab(c.Request.Context(), vocabID)
	if err != nil {
		respondServiceError(c, err, "delete vocab")
		return
	}

	vc.audit.LogDelete(audit.Entry{
		UserID:      vocab.UserID,
		EntityType:  "vocab",
		EntityID:    vocab.VocabID,
		Description: fmt.Sprintf("Deleted vocab %q with %d words", vocab.Title, vocab.WordCount),
		RequestID:   middleware.GetRequestID(c),
	})
	respondOK(c, vocab)
}

// GetVocabStats aggregates the learning stats of a vocab.
// GET /api/vocabs/:id/stats
func (vc *VocabsController) GetVocabStats(c *gin.Context) {
	vocabID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := vc.stats.GetVocabStats(c.Request.Context(), vocabID)
	if err != nil {
		respondServiceError(c, err, "get vocab stats")
		return
	}
	respondOK(c, stats)
}
