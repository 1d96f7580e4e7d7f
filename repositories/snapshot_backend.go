package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell-cms/config"
	"inkwell-cms/models"
)

// SnapshotBackend stores one serialized collection under a single key.
// Load returns nil data when nothing has been saved yet. Save replaces the
// previous value atomically.
type SnapshotBackend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// GormSnapshotBackend keeps the snapshot in the store_entries table.
type GormSnapshotBackend struct {
	db   *gorm.DB
	name string
}

func NewGormSnapshotBackend(db *gorm.DB, name string) *GormSnapshotBackend {
	return &GormSnapshotBackend{db: db, name: name}
}

func (b *GormSnapshotBackend) Load(ctx context.Context) ([]byte, error) {
	var entry models.StoreEntry
	err := b.db.WithContext(ctx).Where("name = ?", b.name).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Payload), nil
}

func (b *GormSnapshotBackend) Save(ctx context.Context, data []byte) error {
	entry := models.StoreEntry{
		Name:      b.name,
		Payload:   string(data),
		UpdatedAt: time.Now(),
	}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entry).Error
}

// RedisSnapshotBackend keeps the snapshot in a single Redis string key.
type RedisSnapshotBackend struct {
	rdb *goredis.Client
	key string
}

func NewRedisSnapshotBackend(rdb *goredis.Client, key string) *RedisSnapshotBackend {
	return &RedisSnapshotBackend{rdb: rdb, key: key}
}

// NewRedisClient connects and pings the configured Redis server.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (b *RedisSnapshotBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return data, err
}

func (b *RedisSnapshotBackend) Save(ctx context.Context, data []byte) error {
	return b.rdb.Set(ctx, b.key, data, 0).Err()
}

// FileSnapshotBackend keeps the snapshot in a JSON file that is replaced by
// rename, so readers never observe a partial write.
type FileSnapshotBackend struct {
	path string
}

func NewFileSnapshotBackend(path string) *FileSnapshotBackend {
	return &FileSnapshotBackend{path: path}
}

func (b *FileSnapshotBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (b *FileSnapshotBackend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, b.path)
}
