package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/myvoca/internal/dictionary"
	"github.com/mrlokans/myvoca/internal/entities"
)

type stubDictionary struct {
	result  *dictionary.LookupResult
	err     error
	lookups []string
}

func (d *stubDictionary) Lookup(_ context.Context, expression string) (*dictionary.LookupResult, error) {
	d.lookups = append(d.lookups, expression)
	return d.result, d.err
}

func (d *stubDictionary) Name() string { return "stub" }

func TestDefinitionService_AttachAndGet(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	vocab := ts.createVocab(t, 1, "fruits")
	apple := ts.createWord(t, vocab.VocabID, "apple")
	pear := ts.createWord(t, vocab.VocabID, "pear")

	first, err := ts.definitions.AttachDefinition(ctx, apple.WordID, DefinitionRequest{Text: "a fruit", PartOfSpeech: "noun"})
	require.NoError(t, err)
	assert.Equal(t, entities.DefinitionSourceManual, first.Source)

	shared, err := ts.definitions.AttachDefinition(ctx, pear.WordID, DefinitionRequest{Text: "a fruit"})
	require.NoError(t, err)
	assert.Equal(t, first.DefinitionID, shared.DefinitionID, "same text reuses the definition")

	again, err := ts.definitions.AttachDefinition(ctx, apple.WordID, DefinitionRequest{Text: "a fruit"})
	require.NoError(t, err)
	assert.Equal(t, first.DefinitionID, again.DefinitionID)

	defs, err := ts.definitions.GetDefinitions(ctx, apple.WordID)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "noun", defs[0].PartOfSpeech)

	_, err = ts.definitions.GetDefinitions(ctx, 999)
	assert.ErrorIs(t, err, ErrNoWord)
	_, err = ts.definitions.AttachDefinition(ctx, 999, DefinitionRequest{Text: "x"})
	assert.ErrorIs(t, err, ErrNoWord)
}

func TestDefinitionService_DetachDefinition(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	vocab := ts.createVocab(t, 1, "fruits")
	apple := ts.createWord(t, vocab.VocabID, "apple")
	pear := ts.createWord(t, vocab.VocabID, "pear")

	shared, err := ts.definitions.AttachDefinition(ctx, apple.WordID, DefinitionRequest{Text: "a fruit"})
	require.NoError(t, err)
	_, err = ts.definitions.AttachDefinition(ctx, pear.WordID, DefinitionRequest{Text: "a fruit"})
	require.NoError(t, err)

	detached, err := ts.definitions.DetachDefinition(ctx, apple.WordID, shared.DefinitionID)
	require.NoError(t, err)
	assert.Equal(t, shared.DefinitionID, detached.DefinitionID)

	var count int64
	require.NoError(t, ts.db.Model(&entities.Definition{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "still referenced by pear")

	_, err = ts.definitions.DetachDefinition(ctx, apple.WordID, shared.DefinitionID)
	assert.ErrorIs(t, err, ErrNoDefinition)

	_, err = ts.definitions.DetachDefinition(ctx, pear.WordID, shared.DefinitionID)
	require.NoError(t, err)
	require.NoError(t, ts.db.Model(&entities.Definition{}).Count(&count).Error)
	assert.Zero(t, count, "orphaned definition is removed")

	_, err = ts.definitions.DetachDefinition(ctx, pear.WordID, 12345)
	assert.ErrorIs(t, err, ErrNoDefinition)
	assert.Equal(t, CodeNoDefinition, CodeOf(err))
}

func TestDefinitionService_EnrichWord(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	vocab := ts.createVocab(t, 1, "fruits")
	apple := ts.createWord(t, vocab.VocabID, "apple")

	ts.dict.result = &dictionary.LookupResult{
		Expression: "apple",
		Definitions: []dictionary.Definition{
			{PartOfSpeech: "noun", Text: "A common, round fruit.", Example: "She ate an apple."},
			{PartOfSpeech: "noun", Text: "The tree bearing apples."},
		},
	}

	views, err := ts.definitions.EnrichWord(ctx, apple.WordID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "stub", views[0].Source)
	assert.Equal(t, []string{"apple"}, ts.dict.lookups)

	// running twice does not duplicate links
	_, err = ts.definitions.EnrichWord(ctx, apple.WordID)
	require.NoError(t, err)
	defs, err := ts.definitions.GetDefinitions(ctx, apple.WordID)
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}

func TestDefinitionService_EnrichWord_Failures(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	vocab := ts.createVocab(t, 1, "fruits")
	word := ts.createWord(t, vocab.VocabID, "qwxz")

	t.Run("unknown word", func(t *testing.T) {
		_, err := ts.definitions.EnrichWord(ctx, 999)
		assert.ErrorIs(t, err, ErrNoWord)
	})

	t.Run("not in dictionary", func(t *testing.T) {
		ts.dict.err = dictionary.ErrNotFound
		views, err := ts.definitions.EnrichWord(ctx, word.WordID)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("dictionary failure", func(t *testing.T) {
		ts.dict.err = errors.New("boom")
		_, err := ts.definitions.EnrichWord(ctx, word.WordID)
		require.Error(t, err)
		assert.Equal(t, CodeInternalServerError, CodeOf(err))
	})

	t.Run("no dictionary", func(t *testing.T) {
		svc := NewDefinitionService(ts.db, nil)
		_, err := svc.EnrichWord(ctx, word.WordID)
		assert.ErrorIs(t, err, ErrNoDictionary)
	})
}

func TestDefinitionService_DeleteOrphanDefinitions(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	vocab := ts.createVocab(t, 1, "fruits")
	apple := ts.createWord(t, vocab.VocabID, "apple")

	_, err := ts.definitions.AttachDefinition(ctx, apple.WordID, DefinitionRequest{Text: "kept"})
	require.NoError(t, err)
	require.NoError(t, ts.db.Create(&entities.Definition{Text: "stray"}).Error)

	deleted, err := ts.definitions.DeleteOrphanDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
