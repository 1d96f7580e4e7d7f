package services

import (
	"context"

	"github.com/rs/zerolog"

	"inkwell-cms/logger"
	"inkwell-cms/metrics"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

// VersionService is the read and delete side of version history, scoped to
// a post so a version id can never be used through the wrong post.
type VersionService interface {
	ListVersions(ctx context.Context, postID uint) ([]models.PostVersion, error)
	GetVersion(ctx context.Context, postID, versionID uint) (*models.PostVersion, error)
	DeleteVersion(ctx context.Context, postID, versionID uint) error
	CompareVersions(ctx context.Context, postID, fromID, toID uint) (*models.VersionComparison, error)
}

type versionService struct {
	store   repositories.VersionStore
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewVersionService(store repositories.VersionStore, m *metrics.Metrics) VersionService {
	return &versionService{
		store:   store,
		metrics: m,
		log:     logger.NewLogger("version_service"),
	}
}

func (s *versionService) ListVersions(ctx context.Context, postID uint) ([]models.PostVersion, error) {
	return s.store.List(ctx, postID)
}

func (s *versionService) GetVersion(ctx context.Context, postID, versionID uint) (*models.PostVersion, error) {
	version, err := s.store.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version.PostID != postID {
		return nil, models.ErrorMismatch{VersionID: versionID, PostID: postID}
	}
	return version, nil
}

// DeleteVersion removes a version permanently. Remaining versions keep
// their numbers.
func (s *versionService) DeleteVersion(ctx context.Context, postID, versionID uint) error {
	if _, err := s.GetVersion(ctx, postID, versionID); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, versionID); err != nil {
		return err
	}
	s.metrics.VersionDeleted()
	s.log.Info().Uint("post_id", postID).Uint("version_id", versionID).Msg("version deleted")
	return nil
}

func (s *versionService) CompareVersions(ctx context.Context, postID, fromID, toID uint) (*models.VersionComparison, error) {
	from, err := s.GetVersion(ctx, postID, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.GetVersion(ctx, postID, toID)
	if err != nil {
		return nil, err
	}
	cmp := CompareVersions(*from, *to)
	return &cmp, nil
}
