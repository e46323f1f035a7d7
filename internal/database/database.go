package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/entities"
)

// sqliteParams are appended to every SQLite path. Writers take the lock at
// BEGIN and wait for it instead of failing with "database is locked".
const sqliteParams = "_journal=WAL&_timeout=5000&_busy_timeout=5000&_txlock=immediate"

type Database struct {
	DB *gorm.DB
}

type Option func(*gorm.Config)

// WithLogLevel overrides the gorm logger level (Warn by default).
func WithLogLevel(level logger.LogLevel) Option {
	return func(c *gorm.Config) {
		c.Logger = logger.Default.LogMode(level)
	}
}

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&entities.Vocab{},
		&entities.Word{},
		&entities.Definition{},
		&entities.WordDefinition{},
		&entities.Stat{},
		&entities.AuditEvent{},
	}
}

func NewDatabase(driver config.DatabaseDriver, dsn string, opts ...Option) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger: logger.New(log.Default(), logger.Config{
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}
	for _, opt := range opts {
		opt(gormCfg)
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DatabaseDriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DatabaseDriverSQLite, "":
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// One writer at a time; audit inserts queue behind request transactions.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully (%s)", driver)

	return &Database{DB: db}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqliteParams
	}
	return path + "?" + sqliteParams
}
