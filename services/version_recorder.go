package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"inkwell-cms/logger"
	"inkwell-cms/metrics"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

const (
	DefaultChangeDescription = "Auto-save"
	MinorChangeDescription   = "Minor changes"
)

type VersionRecorder interface {
	CreateVersion(ctx context.Context, postID uint, snapshot models.PostSnapshot, changeDescription string) (*models.PostVersion, error)
	HasSignificantChange(before, after models.PostSnapshot) bool
	DescribeChange(before, after models.PostSnapshot) string
}

type RecorderOption func(*versionRecorder)

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *versionRecorder) {
		r.now = now
	}
}

type versionRecorder struct {
	// mu serialises id and number assignment with the append.
	mu      sync.Mutex
	store   repositories.VersionStore
	metrics *metrics.Metrics
	now     func() time.Time
	log     zerolog.Logger
}

func NewVersionRecorder(store repositories.VersionStore, m *metrics.Metrics, opts ...RecorderOption) VersionRecorder {
	r := &versionRecorder{
		store:   store,
		metrics: m,
		now:     time.Now,
		log:     logger.NewLogger("version_recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *versionRecorder) CreateVersion(ctx context.Context, postID uint, snapshot models.PostSnapshot, changeDescription string) (*models.PostVersion, error) {
	if changeDescription == "" {
		changeDescription = DefaultChangeDescription
	}

	createdBy := models.DefaultVersionAuthor
	if actor, ok := ActorFromContext(ctx); ok && actor.Username != "" {
		createdBy = actor.Username
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	version := models.PostVersion{
		ID:                maxVersionID(existing) + 1,
		PostID:            postID,
		VersionNumber:     NextVersionNumber(postID, existing),
		Title:             snapshot.Title,
		Content:           snapshot.Content,
		Excerpt:           snapshot.Excerpt,
		Status:            snapshot.Status,
		Tags:              models.CopyTags(snapshot.Tags),
		ChangeDescription: changeDescription,
		CreatedAt:         r.now(),
		CreatedBy:         createdBy,
		WordCount:         CountWords(snapshot.Content),
		CharacterCount:    utf8.RuneCountInString(snapshot.Content),
	}

	if err := r.store.Append(ctx, version); err != nil {
		return nil, err
	}
	r.metrics.VersionCreated()

	r.log.Info().
		Uint("post_id", postID).
		Uint("version_id", version.ID).
		Int("version_number", version.VersionNumber).
		Str("change", changeDescription).
		Msg("version recorded")

	out := version.Clone()
	return &out, nil
}

func (r *versionRecorder) HasSignificantChange(before, after models.PostSnapshot) bool {
	return HasSignificantChange(before, after)
}

func (r *versionRecorder) DescribeChange(before, after models.PostSnapshot) string {
	return DescribeChange(before, after)
}

// CountWords counts whitespace-delimited tokens.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// HasSignificantChange reports whether any versioned field differs. Tag
// order matters.
func HasSignificantChange(before, after models.PostSnapshot) bool {
	return before.Title != after.Title ||
		before.Content != after.Content ||
		before.Excerpt != after.Excerpt ||
		before.Status != after.Status ||
		!slices.Equal(before.Tags, after.Tags)
}

// DescribeChange names the changed fields, e.g. "Updated title, status to published".
func DescribeChange(before, after models.PostSnapshot) string {
	var changed []string
	if before.Title != after.Title {
		changed = append(changed, "title")
	}
	if before.Content != after.Content {
		changed = append(changed, "content")
	}
	if before.Excerpt != after.Excerpt {
		changed = append(changed, "excerpt")
	}
	if before.Status != after.Status {
		changed = append(changed, fmt.Sprintf("status to %s", after.Status))
	}
	if !slices.Equal(before.Tags, after.Tags) {
		changed = append(changed, "tags")
	}

	if len(changed) == 0 {
		return MinorChangeDescription
	}
	return "Updated " + strings.Join(changed, ", ")
}

func maxVersionID(versions []models.PostVersion) uint {
	var highest uint
	for i := range versions {
		if versions[i].ID > highest {
			highest = versions[i].ID
		}
	}
	return highest
}

// NoopVersionRecorder is used when version history is disabled. It still
// answers change detection so callers need no special casing.
type NoopVersionRecorder struct{}

func (NoopVersionRecorder) CreateVersion(ctx context.Context, postID uint, snapshot models.PostSnapshot, changeDescription string) (*models.PostVersion, error) {
	return nil, nil
}

func (NoopVersionRecorder) HasSignificantChange(before, after models.PostSnapshot) bool {
	return HasSignificantChange(before, after)
}

func (NoopVersionRecorder) DescribeChange(before, after models.PostSnapshot) string {
	return DescribeChange(before, after)
}
