// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into aggregate-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── vocabs/          # Vocab rows and the cached word count
//	├── words/           # Words inside a vocab
//	├── definitions/     # Shared definitions and word_definition links
//	├── stats/           # Per-word learning stats
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Repositories are cheap wrappers around a *gorm.DB. Services build them on
// the transaction handle so that several repositories share one transaction:
//
//	db, err := database.NewDatabase(config.DatabaseDriverSQLite, "./myvoca.db")
//
//	err = db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
//		word, err := words.NewRepository(tx).Create(vocabID, "apple")
//		...
//		return stats.NewRepository(tx).Upsert(&entities.Stat{WordID: word.ID})
//	})
//
// No repository uses gorm associations. Relations are plain foreign-key
// columns and joins are written as explicit queries.
package database
