package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/myvoca/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewRepository(db)
}

func uintPtr(v uint) *uint { return &v }

func TestRepository_LogEvent(t *testing.T) {
	repo := setupTestDB(t)

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventCreate,
		Action:      "word_create",
		Description: "Created word \"apple\"",
		EntityType:  "word",
		EntityID:    uintPtr(7),
		Status:      entities.AuditStatusSuccess,
	}

	require.NoError(t, repo.LogEvent(context.Background(), event))
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_ListEvents(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			UserID:     1,
			EventType:  entities.AuditEventCreate,
			Action:     "word_create",
			EntityType: "word",
			EntityID:   uintPtr(uint(i + 1)),
			Status:     entities.AuditStatusSuccess,
			CreatedAt:  time.Now().Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			UserID:     2,
			EventType:  entities.AuditEventDelete,
			Action:     "vocab_delete",
			EntityType: "vocab",
			Status:     entities.AuditStatusSuccess,
		}))
	}

	t.Run("all events", func(t *testing.T) {
		events, total, err := repo.ListEvents(ctx, Filter{}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 15)
	})

	t.Run("by user", func(t *testing.T) {
		_, total, err := repo.ListEvents(ctx, Filter{UserID: 1}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
	})

	t.Run("by type", func(t *testing.T) {
		events, total, err := repo.ListEvents(ctx, Filter{EventType: entities.AuditEventDelete}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, e := range events {
			assert.Equal(t, "vocab_delete", e.Action)
		}
	})

	t.Run("by entity", func(t *testing.T) {
		events, total, err := repo.ListEvents(ctx, Filter{EntityType: "word", EntityID: 3}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, uint(3), *events[0].EntityID)
	})

	t.Run("pagination newest first", func(t *testing.T) {
		page1, total, err := repo.ListEvents(ctx, Filter{UserID: 1}, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, page1, 5)

		page2, _, err := repo.ListEvents(ctx, Filter{UserID: 1}, 5, 5)
		require.NoError(t, err)
		require.Len(t, page2, 5)
		assert.False(t, page1[4].CreatedAt.Before(page2[0].CreatedAt))
	})

	t.Run("default limit", func(t *testing.T) {
		events, _, err := repo.ListEvents(ctx, Filter{}, 0, -3)
		require.NoError(t, err)
		assert.Len(t, events, 15)
	})
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		UserID: 1, EventType: entities.AuditEventCreate, Action: "old", CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		UserID: 1, EventType: entities.AuditEventCreate, Action: "new", CreatedAt: now.Add(-time.Hour),
	}))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.ListEvents(ctx, Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "new", events[0].Action)
}
