package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/myvoca/internal/middleware"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	registerValidation()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	vocabs := NewVocabsController(cfg.VocabService, cfg.StatService, cfg.AuditService)
	words := NewWordsController(cfg.WordService, cfg.AuditService)
	stats := NewStatsController(cfg.StatService)
	definitions := NewDefinitionsController(cfg.DefinitionService, cfg.WordService, cfg.TaskQueue, cfg.AuditService)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")

	// Vocab endpoints
	api.GET("/vocabs/all", vocabs.GetVocabs)
	api.GET("/vocabs/detail", vocabs.GetVocabDetail)
	api.POST("/vocabs/:id", vocabs.CreateVocab)
	api.PATCH("/vocabs/:id", vocabs.EditVocab)
	api.DELETE("/vocabs/:id", vocabs.DeleteVocab)
	api.GET("/vocabs/:id/stats", vocabs.GetVocabStats)

	// Word endpoints
	api.GET("/vocabs/:id/words", words.GetWords)
	api.POST("/vocabs/:id/words", words.CreateWord)
	api.GET("/words/:id", words.GetWordDetail)
	api.PATCH("/words/:id", words.EditWord)
	api.DELETE("/words/:id", words.DeleteWord)

	// Stat endpoints
	api.GET("/words/:id/stat", stats.GetStat)
	api.PUT("/words/:id/stat", stats.UpdateStat)
	api.POST("/words/:id/stat/answer", stats.RecordAnswer)

	// Definition endpoints
	api.GET("/words/:id/definitions", definitions.GetDefinitions)
	api.POST("/words/:id/definitions", definitions.AttachDefinition)
	api.DELETE("/words/:id/definitions/:definition_id", definitions.DetachDefinition)
	if cfg.EnrichmentEnabled {
		api.POST("/words/:id/enrich", definitions.EnrichWord)
	}

	// Task queue endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Scheduler, cfg.Audit)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:id/run", tasksController.RunTask)
	}

	// Audit log
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	return router
}
