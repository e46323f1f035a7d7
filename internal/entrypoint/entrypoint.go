package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/myvoca/internal/audit"
	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/database"
	auditRepo "github.com/mrlokans/myvoca/internal/database/audit"
	"github.com/mrlokans/myvoca/internal/dictionary"
	http_controllers "github.com/mrlokans/myvoca/internal/http"
	"github.com/mrlokans/myvoca/internal/scheduler"
	"github.com/mrlokans/myvoca/internal/services"
	"github.com/mrlokans/myvoca/internal/tasks"
)

// App holds the database and the services built on top of it. The CLI
// commands and the HTTP server share it.
type App struct {
	Config *config.Config
	DB     *database.Database

	Vocabs      *services.VocabService
	Words       *services.WordService
	Stats       *services.StatService
	Definitions *services.DefinitionService

	// Audit is nil when audit logging is disabled.
	Audit *audit.Service
	// Dictionary is nil when no dictionary URL is configured.
	Dictionary dictionary.Client
}

// NewApp opens the configured database, migrates it and wires the services.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Driver, cfg.Database.DataSource())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{Config: cfg, DB: db}

	if cfg.Dictionary.BaseURL != "" {
		app.Dictionary = dictionary.NewFreeDictionaryClient(cfg.Dictionary)
	}

	app.Stats = services.NewStatService(db.DB)
	app.Vocabs = services.NewVocabService(db.DB)
	app.Words = services.NewWordService(db.DB, app.Stats)
	app.Definitions = services.NewDefinitionService(db.DB, app.Dictionary)

	if cfg.Audit.Enabled {
		app.Audit = audit.NewService(auditRepo.NewRepository(db.DB))
	}

	return app, nil
}

// Close flushes pending audit writes and closes the database.
func (a *App) Close() error {
	a.Audit.Wait()
	return a.DB.Close()
}

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Stop background work after the last request has been answered.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
	return nil
}

// Run starts the HTTP server together with the task queue and the
// maintenance scheduler, and blocks until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting MyVoca v%s (database: %s)", version, cfg.Database.Driver)

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if app.Dictionary == nil {
		log.Printf("WARNING: DICTIONARY_BASE_URL is empty, word enrichment is disabled")
	}

	var taskClient *tasks.Client
	var maintenance *scheduler.MaintenanceScheduler
	taskCtx, taskCtxCancel := context.WithCancel(context.Background())
	defer taskCtxCancel()

	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichWordQueue(app.Definitions, app.Audit),
			tasks.NewEnrichPendingWordsQueue(app.Words, app.Definitions, app.Audit),
			tasks.NewReconcileWordCountsQueue(app.Vocabs, app.Audit),
			tasks.NewCleanupOrphanDefinitionsQueue(app.Definitions),
			tasks.NewCleanupAuditEventsQueue(auditCleaner(app.Audit)),
		)
		taskClient.Start(taskCtx)

		if cfg.Scheduler.Enabled {
			maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Scheduler, cfg.Audit)
			if err := maintenance.Start(taskCtx); err != nil {
				return fmt.Errorf("failed to start maintenance scheduler: %w", err)
			}
		}
	} else {
		log.Printf("Task queue disabled, enrichment runs inline and the scheduler is off")
	}

	routerCfg := http_controllers.RouterConfig{
		VocabService:      app.Vocabs,
		WordService:       app.Words,
		StatService:       app.Stats,
		DefinitionService: app.Definitions,
		Database:          app.DB,
		AuditService:      app.Audit,
		EnrichmentEnabled: app.Dictionary != nil,
		Scheduler:         cfg.Scheduler,
		Audit:             cfg.Audit,
		MetricsEnabled:    cfg.Metrics.Enabled,
		Version:           version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}
	router := http_controllers.NewRouter(routerCfg)

	return Serve(router, cfg, func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		taskCtxCancel()
	})
}

// auditCleaner keeps a disabled audit service from reaching the cleanup queue
// as a non-nil interface holding a nil pointer.
func auditCleaner(svc *audit.Service) tasks.AuditEventCleaner {
	if svc == nil {
		return nil
	}
	return svc
}
