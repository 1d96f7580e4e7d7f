package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"inkwell-cms/logger"
	"inkwell-cms/metrics"
	"inkwell-cms/models"
)

// VersionStore is the ordered collection of post versions. Every mutation
// writes the whole collection to the backend before it becomes visible.
type VersionStore interface {
	List(ctx context.Context, postID uint) ([]models.PostVersion, error)
	Get(ctx context.Context, versionID uint) (*models.PostVersion, error)
	Append(ctx context.Context, version models.PostVersion) error
	Remove(ctx context.Context, versionID uint) error
	All(ctx context.Context) ([]models.PostVersion, error)
}

type versionStore struct {
	mu       sync.RWMutex
	backend  SnapshotBackend
	versions []models.PostVersion // head is the most recently appended
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewVersionStore loads the persisted collection from backend. m may be nil.
func NewVersionStore(ctx context.Context, backend SnapshotBackend, m *metrics.Metrics) (VersionStore, error) {
	raw, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load versions: %w", err)
	}

	versions := []models.PostVersion{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &versions); err != nil {
			return nil, fmt.Errorf("decode versions: %w", err)
		}
	}

	s := &versionStore{
		backend:  backend,
		versions: versions,
		metrics:  m,
		log:      logger.NewLogger("version_store"),
	}
	s.log.Debug().Int("versions", len(versions)).Msg("version store loaded")
	return s, nil
}

func (s *versionStore) List(ctx context.Context, postID uint) ([]models.PostVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.PostVersion{}
	for _, v := range s.versions {
		if v.PostID == postID {
			out = append(out, v.Clone())
		}
	}

	// Stable keeps head-first order for identical timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *versionStore) Get(ctx context.Context, versionID uint) (*models.PostVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(versionID)
	if idx < 0 {
		return nil, models.ErrorNotFound{Resource: "version", ID: versionID}
	}
	v := s.versions[idx].Clone()
	return &v, nil
}

func (s *versionStore) Append(ctx context.Context, version models.PostVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(version.ID) >= 0 {
		return models.ErrorConflict{Message: fmt.Sprintf("version with id %d already exists", version.ID)}
	}

	next := make([]models.PostVersion, 0, len(s.versions)+1)
	next = append(next, version.Clone())
	next = append(next, s.versions...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.versions = next
	return nil
}

func (s *versionStore) Remove(ctx context.Context, versionID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(versionID)
	if idx < 0 {
		return models.ErrorNotFound{Resource: "version", ID: versionID}
	}

	next := make([]models.PostVersion, 0, len(s.versions)-1)
	next = append(next, s.versions[:idx]...)
	next = append(next, s.versions[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.versions = next
	return nil
}

func (s *versionStore) All(ctx context.Context) ([]models.PostVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PostVersion, len(s.versions))
	for i, v := range s.versions {
		out[i] = v.Clone()
	}
	return out, nil
}

func (s *versionStore) indexOf(versionID uint) int {
	for i := range s.versions {
		if s.versions[i].ID == versionID {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *versionStore) persist(ctx context.Context, next []models.PostVersion) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode versions: %w", err)
	}

	start := time.Now()
	err = s.backend.Save(ctx, raw)
	s.metrics.ObserveWrite(start, len(raw), err)
	if err != nil {
		s.log.Error().Err(err).Int("versions", len(next)).Msg("failed to persist versions")
		return fmt.Errorf("persist versions: %w", err)
	}
	return nil
}
