package interfaces

// This file contains compile-time interface implementation checks.
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/database"
	"github.com/mrlokans/myvoca/internal/dictionary"
	"github.com/mrlokans/myvoca/internal/http"
	"github.com/mrlokans/myvoca/internal/scheduler"
	"github.com/mrlokans/myvoca/internal/services"
	"github.com/mrlokans/myvoca/internal/tasks"
)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.VocabService = (*services.VocabService)(nil)
var _ http.WordService = (*services.WordService)(nil)
var _ http.StatService = (*services.StatService)(nil)
var _ http.DefinitionService = (*services.DefinitionService)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.WordEnricher = (*services.DefinitionService)(nil)
var _ tasks.PendingWordsFinder = (*services.WordService)(nil)
var _ tasks.WordCountReconciler = (*services.VocabService)(nil)
var _ tasks.OrphanDefinitionsCleaner = (*services.DefinitionService)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ dictionary.Client = (*dictionary.FreeDictionaryClient)(nil)
