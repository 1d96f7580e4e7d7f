package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/models"
)

func TestDeleteVersion_LeavesGap(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	var ids []uint
	for _, content := range []string{"one", "one two", "one two three"} {
		v, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Content: content}, "")
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}

	require.NoError(t, e.versions.DeleteVersion(ctx, 1, ids[1]))

	list, err := e.versions.ListVersions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[1].ID)
	assert.Equal(t, 3, list[0].VersionNumber, "survivors keep their numbers")
	assert.Equal(t, 1, list[1].VersionNumber)

	for _, id := range []uint{ids[0], ids[2]} {
		_, err := e.versions.GetVersion(ctx, 1, id)
		assert.NoError(t, err)
	}

	_, err = e.versions.GetVersion(ctx, 1, ids[1])
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)

	// count+1 numbering hands out 3 again; the id stays fresh.
	next, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Content: "one two three four"}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, next.VersionNumber)
	assert.Equal(t, ids[2]+1, next.ID)
	assert.NotContains(t, ids, next.ID)

	list, err = e.versions.ListVersions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, next.ID, list[0].ID)
	seen := map[uint]bool{}
	for _, v := range list {
		assert.False(t, seen[v.ID], "duplicate id %d", v.ID)
		seen[v.ID] = true
	}
}

func TestDeleteVersion_WrongPost(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	v, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Content: "x"}, "")
	require.NoError(t, err)

	err = e.versions.DeleteVersion(ctx, 2, v.ID)
	var mismatch models.ErrorMismatch
	assert.ErrorAs(t, err, &mismatch)

	_, err = e.store.Get(ctx, v.ID)
	assert.NoError(t, err)
}

func TestVersionService_CompareVersions(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	a, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Title: "a", Content: "one"}, "")
	require.NoError(t, err)
	b, err := e.recorder.CreateVersion(ctx, 1, models.PostSnapshot{Title: "b", Content: "one two"}, "")
	require.NoError(t, err)
	other, err := e.recorder.CreateVersion(ctx, 2, models.PostSnapshot{Title: "c"}, "")
	require.NoError(t, err)

	cmp, err := e.versions.CompareVersions(ctx, 1, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, cmp.Differences.Title)
	assert.Equal(t, 1, cmp.WordCountDiff)

	_, err = e.versions.CompareVersions(ctx, 1, a.ID, other.ID)
	var mismatch models.ErrorMismatch
	assert.ErrorAs(t, err, &mismatch)
}
