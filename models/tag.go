package models

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

// Tag is the catalog entry for a post tag name. UsageCount only counts
// published posts.
type Tag struct {
	ID            uint           `json:"id" gorm:"primarykey"`
	Name          string         `json:"name" gorm:"uniqueIndex;not null"`
	Slug          string         `json:"slug" gorm:"index"`
	UsageCount    int            `json:"usage_count" gorm:"default:0"`
	TrendingScore float64        `json:"trending_score" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeSave keeps Slug in step with Name.
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Slug = Slugify(t.Name)
	return nil
}

// Slugify lower-cases name and joins its letter and digit runs with '-'.
func Slugify(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}
