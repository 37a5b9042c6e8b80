package storage

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvStoreImpl struct {
	db *gorm.DB
}

// NewKVStore returns the postgres-backed KV port.
func NewKVStore(db *gorm.DB) KV {
	return &kvStoreImpl{
		db: db,
	}
}

func (s *kvStoreImpl) Get(ctx context.Context, key string) (string, error) {
	var m KVModel

	result := s.db.WithContext(ctx).Where("key = ?", key).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}

		slog.Error("failed to read kv entry",
			"key", key,
			"error", result.Error,
		)

		return "", result.Error
	}

	return m.Value, nil
}

func (s *kvStoreImpl) Set(ctx context.Context, key, value string) error {
	m := KVModel{Key: key, Value: value}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m)

	if result.Error != nil {
		slog.Error("failed to write kv entry",
			"key", key,
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}

func (s *kvStoreImpl) Remove(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVModel{})
	if result.Error != nil {
		slog.Error("failed to remove kv entry",
			"key", key,
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}

func (s *kvStoreImpl) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&KVModel{})
	if result.Error != nil {
		slog.Error("failed to remove kv entries",
			"count", len(keys),
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}

func (s *kvStoreImpl) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	query := s.db.WithContext(ctx).Model(&KVModel{}).Order("key ASC")
	if prefix != "" {
		query = query.Where("key LIKE ?", escapeLike(prefix)+"%")
	}

	if err := query.Pluck("key", &keys).Error; err != nil {
		slog.Error("failed to list kv keys",
			"prefix", prefix,
			"error", err,
		)

		return nil, err
	}

	return keys, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}

		out = append(out, s[i])
	}

	return string(out)
}
