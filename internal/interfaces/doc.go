// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## HTTP Layer
//
//   - VocabService, WordService, StatService, DefinitionService: business
//     operations behind the controllers (internal/http/stores.go)
//   - AuditReader: audit log queries (internal/http/stores.go)
//   - TaskQueue: background task submission and status (internal/http/stores.go)
//   - Pinger: health check target (internal/http/health.go)
//
// ## Background Tasks
//
//   - WordEnricher, PendingWordsFinder: dictionary enrichment (internal/tasks/enrich_word.go)
//   - WordCountReconciler, OrphanDefinitionsCleaner: maintenance (internal/tasks/maintenance.go)
//   - AuditEventCleaner: audit retention (internal/tasks/cleanup_audit.go)
//   - Enqueuer: scheduler to queue hand-off (internal/scheduler/maintenance.go)
//
// ## External Service Interfaces
//
//   - dictionary.Client: word definitions (internal/dictionary/client.go)
//
// # Adding a New Dictionary Provider
//
//  1. Implement dictionary.Client in internal/dictionary/
//
//     type MerriamWebsterClient struct {
//         apiKey string
//     }
//
//     func (c *MerriamWebsterClient) Lookup(ctx context.Context, expression string) (*LookupResult, error)
//     func (c *MerriamWebsterClient) Name() string
//
//     var _ Client = (*MerriamWebsterClient)(nil)
//
//  2. Configure it in internal/entrypoint/entrypoint.go
//
// # Adding a New Background Task
//
//  1. Define the task and its processor in internal/tasks/ with a Config()
//     returning a backlite.QueueConfig
//  2. Register the queue in entrypoint.Run
//  3. Optionally schedule it in internal/scheduler or expose it through
//     POST /api/tasks/:id/run
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
