package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/database"
)

type testServices struct {
	db          *gorm.DB
	vocabs      *VocabService
	words       *WordService
	stats       *StatService
	definitions *DefinitionService
	dict        *stubDictionary
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := database.NewDatabase(config.DatabaseDriverSQLite, filepath.Join(t.TempDir(), "services.db"),
		database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	statSvc := NewStatService(db.DB)
	dict := &stubDictionary{}
	return &testServices{
		db:          db.DB,
		vocabs:      NewVocabService(db.DB),
		words:       NewWordService(db.DB, statSvc),
		stats:       statSvc,
		definitions: NewDefinitionService(db.DB, dict),
		dict:        dict,
	}
}

func (ts *testServices) createVocab(t *testing.T, userID uint, title string) VocabView {
	t.Helper()
	v, err := ts.vocabs.CreateVocab(context.Background(), userID, VocabRequest{Title: title})
	require.NoError(t, err)
	return v
}

func (ts *testServices) createWord(t *testing.T, vocabID uint, expression string) WordView {
	t.Helper()
	w, err := ts.words.CreateWord(context.Background(), vocabID, WordRequest{Expression: expression})
	require.NoError(t, err)
	return w
}

func expressions(words []WordView) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Expression)
	}
	return out
}
