package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/myvoca/internal/services"
)

type StatsController struct {
	stats StatService
}

func NewStatsController(stats StatService) *StatsController {
	registerValidation()
	return &StatsController{stats: stats}
}

// GetStat returns the learning stat of a word.
// GET /api/words/:id/stat
func (sc *StatsController) GetStat(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stat, err := sc.stats.GetStat(c.Request.Context(), wordID)
	if err != nil {
		respondServiceError(c, err, "get stat")
		return
	}
	respondOK(c, stat)
}

// UpdateStat replaces the counters and learned flag of a word.
// PUT /api/words/:id/stat
func (sc *StatsController) UpdateStat(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	stat, err := sc.stats.UpdateStat(c.Request.Context(), wordID, req)
	if err != nil {
		respondServiceError(c, err, "update stat")
		return
	}
	respondOK(c, stat)
}

// RecordAnswer counts one quiz answer.
// POST /api/words/:id/stat/answer
func (sc *StatsController) RecordAnswer(c *gin.Context) {
	wordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	stat, err := sc.stats.RecordAnswer(c.Request.Context(), wordID, req)
	if err != nil {
		respondServiceError(c, err, "record answer")
		return
	}
	respondOK(c, stat)
}
