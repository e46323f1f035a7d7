package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DatabaseDriverPostgres DatabaseDriver = "postgres" // DSN taken from DATABASE_DSN
)

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		Scheduler
		Audit
		Dictionary
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // sqlite file path
		DSN    string // postgres connection string
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string // backlite always runs on its own sqlite file
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Scheduler struct {
		Enabled           bool
		ReconcileSchedule string // Cron format: "30 3 * * *" = daily at 03:30
		EnrichSchedule    string // Empty disables periodic enrichment
		AuditSchedule     string
		EnrichBatchSize   int
	}
	Audit struct {
		Enabled       bool
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Dictionary struct {
		BaseURL     string
		Timeout     time.Duration
		MinInterval time.Duration // Minimum delay between two lookups
	}
	Metrics struct {
		Enabled bool
	}
)

// loadDotEnv reads a .env file into the process environment when one exists.
// Values already present in the environment win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err == nil {
		log.Printf("Loaded environment from %s", path)
	}
}

func NewConfig() *Config {
	loadDotEnv(DefaultDotEnvPath)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Maintenance scheduler defaults
	v.SetDefault("scheduler_enabled", true)
	v.SetDefault("scheduler_reconcile_schedule", "30 3 * * *")
	v.SetDefault("scheduler_enrich_schedule", "")
	v.SetDefault("scheduler_audit_schedule", "0 4 * * *")
	v.SetDefault("scheduler_enrich_batch_size", 50)

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)

	v.SetDefault("dictionary_base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	v.SetDefault("dictionary_timeout", "10s")
	v.SetDefault("dictionary_min_interval", "500ms")

	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Scheduler: Scheduler{
			Enabled:           v.GetBool("SCHEDULER_ENABLED"),
			ReconcileSchedule: v.GetString("SCHEDULER_RECONCILE_SCHEDULE"),
			EnrichSchedule:    v.GetString("SCHEDULER_ENRICH_SCHEDULE"),
			AuditSchedule:     v.GetString("SCHEDULER_AUDIT_SCHEDULE"),
			EnrichBatchSize:   v.GetInt("SCHEDULER_ENRICH_BATCH_SIZE"),
		},
		Audit: Audit{
			Enabled:       v.GetBool("AUDIT_ENABLED"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Dictionary: Dictionary{
			BaseURL:     v.GetString("DICTIONARY_BASE_URL"),
			Timeout:     v.GetDuration("DICTIONARY_TIMEOUT"),
			MinInterval: v.GetDuration("DICTIONARY_MIN_INTERVAL"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

// DataSource returns the connection string for the configured driver.
func (d Database) DataSource() string {
	if d.Driver == DatabaseDriverPostgres {
		return d.DSN
	}
	return d.Path
}
