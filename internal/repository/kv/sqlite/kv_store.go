package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	repo "kanbanBoard/internal/repository"
)

// KVRecord — одна запись blob-хранилища
type KVRecord struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

type KVStorage struct {
	db *gorm.DB
}

// NewKVStorage открывает sqlite-файл и прогоняет миграцию
func NewKVStorage(dsn string) (*KVStorage, error) {
	if dsn == "" {
		dsn = "kanban.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("открытие базы: %w", err)
	}

	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("миграция базы: %w", err)
	}

	return &KVStorage{db: db}, nil
}

func (s *KVStorage) Get(ctx context.Context, key string) (string, error) {
	var record KVRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repo.ErrNotFound
		}
		return "", fmt.Errorf("чтение ключа %q: %w", key, err)
	}
	return record.Value, nil
}

func (s *KVStorage) Set(ctx context.Context, key, value string) error {
	record := KVRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("запись ключа %q: %w", key, err)
	}
	return nil
}

func (s *KVStorage) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&KVRecord{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("удаление ключа %q: %w", key, err)
	}
	return nil
}

// ensureDirForSQLite создаёт каталог под sqlite-файл при необходимости
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("создание каталога %q: %w", dir, err)
	}
	return nil
}
