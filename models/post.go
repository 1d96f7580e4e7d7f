package models

import (
	"time"

	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusArchived  PostStatus = "archived"
)

// Valid reports whether s is one of the known post statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusScheduled, PostStatusArchived:
		return true
	}
	return false
}

type Post struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	AuthorID    uint           `json:"author_id" gorm:"not null;index"`
	Author      *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title       string         `json:"title" gorm:"not null"`
	Content     string         `json:"content" gorm:"type:text"`
	Excerpt     string         `json:"excerpt" gorm:"type:text"`
	Status      PostStatus     `json:"status" gorm:"default:'draft';index"`
	Tags        []string       `json:"tags" gorm:"serializer:json;type:text"`
	ReadTime    int            `json:"read_time"`
	Views       int            `json:"views" gorm:"default:0"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Snapshot returns the versioned fields of the post. Tags are copied.
func (p *Post) Snapshot() PostSnapshot {
	return PostSnapshot{
		Title:   p.Title,
		Content: p.Content,
		Excerpt: p.Excerpt,
		Status:  p.Status,
		Tags:    CopyTags(p.Tags),
	}
}

// Apply overwrites the versioned fields of the post with s.
func (p *Post) Apply(s PostSnapshot) {
	p.Title = s.Title
	p.Content = s.Content
	p.Excerpt = s.Excerpt
	p.Status = s.Status
	p.Tags = CopyTags(s.Tags)
}

// PostSnapshot is the editable field set tracked by version history.
type PostSnapshot struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Excerpt string     `json:"excerpt"`
	Status  PostStatus `json:"status"`
	Tags    []string   `json:"tags"`
}

// CopyTags returns an independent copy of tags, never nil.
func CopyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
