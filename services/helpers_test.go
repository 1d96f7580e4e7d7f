package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"inkwell-cms/metrics"
	"inkwell-cms/repositories"
)

type memoryBackend struct {
	mu   sync.Mutex
	data []byte
	err  error
}

func (b *memoryBackend) Load(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data, nil
}

func (b *memoryBackend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.data = append([]byte(nil), data...)
	return nil
}

// steppingClock advances one second per call so CreatedAt ordering is stable.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type engine struct {
	backend  *memoryBackend
	store    repositories.VersionStore
	metrics  *metrics.Metrics
	recorder VersionRecorder
	restorer VersionRestorer
	versions VersionService
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	backend := &memoryBackend{}
	m := metrics.New(prometheus.NewRegistry())
	store, err := repositories.NewVersionStore(context.Background(), backend, m)
	require.NoError(t, err)

	recorder := NewVersionRecorder(store, m, WithClock(steppingClock()))
	return &engine{
		backend:  backend,
		store:    store,
		metrics:  m,
		recorder: recorder,
		restorer: NewVersionRestorer(store, recorder, m),
		versions: NewVersionService(store, m),
	}
}
