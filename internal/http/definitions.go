package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/middleware"
	"github.com/mrlokans/myvoca/internal/services"
	"github.com/mrlokans/myvoca/internal/tasks"
)

type DefinitionsController struct {
	definitions DefinitionService
	words       WordService
	queue       TaskQueue
	audit       *audit.Service
}

// NewDefinitionsController accepts a nil queue; enrichment then runs inline.
func NewDefinitionsController(definitions DefinitionService, words WordService, queue TaskQueue, auditService *audit.Service) *DefinitionsController {
	registerValidation()
	return &DefinitionsController{
		definitions: definitions,
		words:       words,
		queue:       queue,
		audit:       auditService,
	}
}

// GetDefinitions lists the definitions linked to a word.
// GET /api/words/:id/definitions
func (dc *DefinitionsController) GetDefinitions(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	defs, err := dc.definitions.GetDefinitions(c.Request.Context(), wordID)
	if err != nil {
		respondServiceError(c, err, "get definitions")
		return
	}
	respondOK(c, defs)
}

// AttachDefinition links a manual definition to a word.
// POST /api/words/:id/definitions
func (dc *DefinitionsController) AttachDefinition(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.DefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	def, err := dc.definitions.AttachDefinition(c.Request.Context(), wordID, req)
	if err != nil {
		respondServiceError(c, err, "attach definition")
		return
	}

	dc.audit.LogCreate(audit.Entry{
		EntityType:  "definition",
		EntityID:    def.DefinitionID,
		Description: fmt.Sprintf("Attached definition to word %d", wordID),
		RequestID:   middleware.GetRequestID(c),
		Metadata:    map[string]any{"word_id": wordID},
	})
	respondOK(c, def)
}

// DetachDefinition unlinks a definition from a word and deletes it once no
// other word uses it.
// DELETE /api/words/:id/definitions/:definition_id
func (dc *DefinitionsController) DetachDefinition(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	definitionID, ok := parseIDParam(c, "definition_id")
	if !ok {
		return
	}

	def, err := dc.definitions.DetachDefinition(c.Request.Context(), wordID, definitionID)
	if err != nil {
		respondServiceError(c, err, "detach definition")
		return
	}

	dc.audit.LogDelete(audit.Entry{
		EntityType:  "definition",
		EntityID:    def.DefinitionID,
		Description: fmt.Sprintf("Detached definition from word %d", wordID),
		RequestID:   middleware.GetRequestID(c),
		Metadata:    map[string]any{"word_id": wordID},
	})
	respondOK(c, def)
}

// EnrichWord fetches dictionary definitions for a word. With a task queue the
// lookup is queued and 202 is returned, otherwise it runs in the request.
// POST /api/words/:id/enrich
func (dc *DefinitionsController) EnrichWord(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if dc.queue != nil {
		if _, err := dc.words.GetWordDetail(c.Request.Context(), wordID); err != nil {
			respondServiceError(c, err, "enrich word")
			return
		}
		taskID, err := dc.queue.Enqueue(tasks.EnrichWordTask{WordID: wordID})
		if err != nil {
			respondInternalError(c, err, "enqueue enrich word")
			return
		}
		respondAccepted(c, "enrichment queued", gin.H{"taskId": taskID, "wordId": wordID})
		return
	}

	defs, err := dc.definitions.EnrichWord(c.Request.Context(), wordID)
	middleware.RecordDictionaryLookup(err == nil)
	if err != nil {
		respondServiceError(c, err, "enrich word")
		return
	}

	dc.audit.LogEnrich(audit.Entry{
		EntityID:    wordID,
		Description: fmt.Sprintf("Attached %d dictionary definitions", len(defs)),
		RequestID:   middleware.GetRequestID(c),
		Metadata:    map[string]any{"definitions": len(defs)},
	}, nil)
	respondOK(c, defs)
}
