package services

import (
	"context"
	"fmt"

	"inkwell-cms/metrics"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

type VersionRestorer interface {
	RestoreVersion(ctx context.Context, postID, versionID uint) (*models.RestoreResult, error)
}

type versionRestorer struct {
	store    repositories.VersionStore
	recorder VersionRecorder
	metrics  *metrics.Metrics
}

func NewVersionRestorer(store repositories.VersionStore, recorder VersionRecorder, m *metrics.Metrics) VersionRestorer {
	return &versionRestorer{
		store:    store,
		recorder: recorder,
		metrics:  m,
	}
}

// RestoreVersion returns the fields of versionID and records the restoration
// as a new version. The live post is left to the caller.
func (r *versionRestorer) RestoreVersion(ctx context.Context, postID, versionID uint) (*models.RestoreResult, error) {
	version, err := r.store.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version.PostID != postID {
		return nil, models.ErrorMismatch{VersionID: versionID, PostID: postID}
	}

	fields := version.Snapshot()
	restoration, err := r.recorder.CreateVersion(ctx, postID, fields, fmt.Sprintf("Restored from version %d", version.VersionNumber))
	if err != nil {
		return nil, err
	}
	r.metrics.VersionRestored()

	return &models.RestoreResult{
		Fields:             fields,
		RestorationVersion: restoration,
	}, nil
}

// noopVersionRestorer backs RestorePost when version history is disabled.
type noopVersionRestorer struct{}

func (noopVersionRestorer) RestoreVersion(ctx context.Context, postID, versionID uint) (*models.RestoreResult, error) {
	return nil, models.ErrorNotFound{Resource: "version", ID: versionID}
}
