package models

import "time"

// DefaultVersionAuthor attributes versions created outside an authenticated request.
const DefaultVersionAuthor = "Author"

// PostVersion is an immutable snapshot of a post. Versions are stored as one
// flat collection under a single durable key; see repositories.VersionStore.
type PostVersion struct {
	ID                uint       `json:"id"`
	PostID            uint       `json:"post_id"`
	VersionNumber     int        `json:"version_number"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Excerpt           string     `json:"excerpt"`
	Status            PostStatus `json:"status"`
	Tags              []string   `json:"tags"`
	ChangeDescription string     `json:"change_description"`
	CreatedAt         time.Time  `json:"created_at"`
	CreatedBy         string     `json:"created_by"`
	WordCount         int        `json:"word_count"`
	CharacterCount    int        `json:"character_count"`
}

// Clone returns a deep copy so callers never share the tag slice with the store.
func (v PostVersion) Clone() PostVersion {
	v.Tags = CopyTags(v.Tags)
	return v
}

// Snapshot returns the editable fields captured by the version.
func (v *PostVersion) Snapshot() PostSnapshot {
	return PostSnapshot{
		Title:   v.Title,
		Content: v.Content,
		Excerpt: v.Excerpt,
		Status:  v.Status,
		Tags:    CopyTags(v.Tags),
	}
}

// RestoreResult carries the fields to apply to the live post and the version
// that documents the restoration.
type RestoreResult struct {
	Fields             PostSnapshot `json:"fields"`
	RestorationVersion *PostVersion `json:"restoration_version"`
}

type FieldDifferences struct {
	Title   bool `json:"title"`
	Content bool `json:"content"`
	Excerpt bool `json:"excerpt"`
	Status  bool `json:"status"`
	Tags    bool `json:"tags"`
}

type VersionComparison struct {
	HasDifferences     bool             `json:"has_differences"`
	Differences        FieldDifferences `json:"differences"`
	WordCountDiff      int              `json:"word_count_diff"`
	CharacterCountDiff int              `json:"character_count_diff"`
}

// StoreEntry holds one serialized collection in the application database.
type StoreEntry struct {
	Name      string `gorm:"primaryKey;size:191"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (StoreEntry) TableName() string {
	return "store_entries"
}
