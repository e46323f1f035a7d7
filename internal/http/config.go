package http

import (
	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/config"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core services
	VocabService      VocabService
	WordService       WordService
	StatService       StatService
	DefinitionService DefinitionService

	// Health check target
	Database Pinger

	// Audit logging (optional, nil disables it)
	AuditService *audit.Service

	// Task queue (optional). Leave nil rather than assigning a nil pointer.
	TaskQueue TaskQueue

	// Enrichment routes are only registered when a dictionary is configured.
	EnrichmentEnabled bool

	Scheduler config.Scheduler
	Audit     config.Audit

	MetricsEnabled bool

	// Application info
	Version string
}
