package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/models"
)

func TestRestoreVersion_CreatesNewVersion(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	first, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Title: "v1", Content: "first body", Status: models.PostStatusDraft, Tags: []string{"a"}}, "")
	require.NoError(t, err)
	_, err = e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Title: "v2", Content: "second body here", Status: models.PostStatusPublished}, "")
	require.NoError(t, err)

	result, err := e.restorer.RestoreVersion(ctx, 1, first.ID)
	require.NoError(t, err)

	assert.Equal(t, "v1", result.Fields.Title)
	assert.Equal(t, "first body", result.Fields.Content)
	assert.Equal(t, []string{"a"}, result.Fields.Tags)

	require.NotNil(t, result.RestorationVersion)
	assert.Equal(t, 3, result.RestorationVersion.VersionNumber)
	assert.Equal(t, "Restored from version 1", result.RestorationVersion.ChangeDescription)
	assert.Equal(t, "first body", result.RestorationVersion.Content)

	list, err := e.store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	original, err := e.store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, *first, *original)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.VersionsRestoredTotal))
}

func TestRestoreVersion_Errors(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	v, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Title: "t"}, "")
	require.NoError(t, err)

	_, err = e.restorer.RestoreVersion(ctx, 1, 99)
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)

	_, err = e.restorer.RestoreVersion(ctx, 2, v.ID)
	var mismatch models.ErrorMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint(2), mismatch.PostID)

	list, err := e.store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed restores record nothing")
}

func TestNoopVersionRestorer(t *testing.T) {
	_, err := noopVersionRestorer{}.RestoreVersion(context.Background(), 1, 1)
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)
}
