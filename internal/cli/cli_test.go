package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/entities"
	"github.com/mrlokans/myvoca/internal/entrypoint"
	"github.com/mrlokans/myvoca/internal/services"
)

func setupEnv(t *testing.T) {
	t.Helper()
	color.NoColor = true

	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("TASKS_DATABASE_PATH", filepath.Join(dir, "tasks.db"))
	t.Setenv("DICTIONARY_MIN_INTERVAL", "1ms")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/apple" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"word":"apple","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"A round fruit."}]}]}]`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("DICTIONARY_BASE_URL", srv.URL)
}

// seed creates one vocab with the given words through the services.
func seed(t *testing.T, expressions ...string) *entrypoint.App {
	t.Helper()
	app, err := entrypoint.NewApp(config.NewConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	ctx := context.Background()
	vocab, err := app.Vocabs.CreateVocab(ctx, 1, services.VocabRequest{Title: "cli"})
	require.NoError(t, err)
	for _, e := range expressions {
		_, err := app.Words.CreateWord(ctx, vocab.VocabID, services.WordRequest{Expression: e})
		require.NoError(t, err)
	}
	return app
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date (sqlite)")
}

func TestReconcileCountsCommand(t *testing.T) {
	setupEnv(t)
	app := seed(t, "apple", "pear")

	out, err := execute(t, "reconcile-counts")
	require.NoError(t, err)
	assert.Contains(t, out, "All word counts are correct")

	require.NoError(t, app.DB.DB.Model(&entities.Vocab{}).Where("1 = 1").Update("word_count", 9).Error)

	out, err = execute(t, "reconcile-counts")
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed 1 vocab word count(s)")

	var vocab entities.Vocab
	require.NoError(t, app.DB.DB.First(&vocab).Error)
	assert.Equal(t, int64(2), vocab.WordCount)
}

func TestEnrichCommand(t *testing.T) {
	setupEnv(t)
	app := seed(t, "apple", "zzxq")

	out, err := execute(t, "enrich")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ apple: 1 definition(s)")
	assert.Contains(t, out, "- zzxq: not in dictionary")
	assert.Contains(t, out, "Enriched 2 of 2 words")

	pending, err := app.Words.FindWordsWithoutDefinitions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "zzxq", pending[0].Expression)
}

func TestEnrichCommand_SingleWord(t *testing.T) {
	setupEnv(t)
	seed(t, "apple")

	out, err := execute(t, "enrich", "--word-id", "999")
	require.Error(t, err)
	assert.Contains(t, out, "word 999")
}

func TestCleanupCommand(t *testing.T) {
	setupEnv(t)
	seed(t)

	out, err := execute(t, "cleanup", "--retention-days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 0 orphaned definition(s)")
	assert.Contains(t, out, "older than 7 days")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand("1.2.3")

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "reconcile-counts", "enrich", "cleanup"})
	assert.Equal(t, "1.2.3", root.Version)
}
