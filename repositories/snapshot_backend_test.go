package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inkwell-cms/config"
	"inkwell-cms/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func TestGormSnapshotBackend_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	backend := NewGormSnapshotBackend(newTestDB(t), "post_versions")

	data, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Save(ctx, []byte(`[{"id":1}]`)))
	require.NoError(t, backend.Save(ctx, []byte(`[{"id":2}]`)))

	data, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2}]`, string(data))
}

func TestGormSnapshotBackend_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	a := NewGormSnapshotBackend(db, "a")
	b := NewGormSnapshotBackend(db, "b")

	require.NoError(t, a.Save(ctx, []byte("[]")))

	data, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	var count int64
	require.NoError(t, db.Model(&models.StoreEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFileSnapshotBackend_ReplacesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "versions.json")
	backend := NewFileSnapshotBackend(path)

	data, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Save(ctx, []byte("[1]")))
	require.NoError(t, backend.Save(ctx, []byte("[1,2]")))

	data, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileSnapshotBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := NewFileSnapshotBackend(filepath.Join(t.TempDir(), "versions.json"))
	assert.ErrorIs(t, backend.Save(ctx, []byte("[]")), context.Canceled)
}

func TestRedisSnapshotBackend(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	key := "inkwell_test_versions"
	t.Cleanup(func() { rdb.Del(context.Background(), key) })

	backend := NewRedisSnapshotBackend(rdb, key)
	data, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Save(ctx, []byte(`[]`)))
	data, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
