package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "go", Slugify("Go"))
	assert.Equal(t, "rest-apis-2024", Slugify("  REST APIs: 2024! "))
	assert.Equal(t, "café-culture", Slugify("Café_culture"))
	assert.Equal(t, "", Slugify("---"))
}

func TestPostSnapshotRoundTrip(t *testing.T) {
	tags := []string{"a", "b"}
	post := &Post{Title: "t", Content: "c", Excerpt: "e", Status: PostStatusDraft, Tags: tags}

	snap := post.Snapshot()
	tags[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, snap.Tags)

	other := &Post{}
	other.Apply(snap)
	snap.Tags[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, other.Tags)
	assert.Equal(t, "t", other.Title)
}

func TestCopyTagsNeverNil(t *testing.T) {
	assert.NotNil(t, CopyTags(nil))
	assert.Empty(t, CopyTags(nil))
}

func TestPostStatusValid(t *testing.T) {
	assert.True(t, PostStatusScheduled.Valid())
	assert.False(t, PostStatus("deleted").Valid())
}
