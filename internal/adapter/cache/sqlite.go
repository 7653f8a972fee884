package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"xchanger/pkg/logger"
)

// responseEntry keeps its expiry as Unix milliseconds so runs in different
// time zones agree on it.
type responseEntry struct {
	URL       string `gorm:"column:url;primaryKey"`
	Body      string `gorm:"column:body"`
	ExpiresAt int64  `gorm:"column:expires_unix;index"`
}

func (responseEntry) TableName() string { return "responses" }

// SQLiteStore is the persistent response cache. The file is disposable:
// deleting it only forces pages to be fetched again.
type SQLiteStore struct {
	db       *gorm.DB
	cacheTTL time.Duration
	log      *logger.Logger
	now      func() time.Time
}

func NewSQLiteStore(path string, cacheTTL time.Duration, log *logger.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}

	if err := db.AutoMigrate(&responseEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache %s: %w", path, err)
	}

	return &SQLiteStore{
		db:       db,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry responseEntry
	err := s.db.WithContext(ctx).
		Where("url = ? AND expires_unix > ?", key, s.now().UnixMilli()).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug("Cache miss", "key", key)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}

	s.log.Debug("Cache hit", "key", key)
	return entry.Body, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, body string) error {
	entry := responseEntry{URL: key, Body: body, ExpiresAt: s.now().Add(s.cacheTTL).UnixMilli()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "expires_unix"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}

	s.log.Debug("Cache set", "key", key)
	return nil
}

func (s *SQLiteStore) ClearExpired(ctx context.Context) error {
	res := s.db.WithContext(ctx).
		Where("expires_unix IS NULL OR expires_unix <= ?", s.now().UnixMilli()).
		Delete(&responseEntry{})
	if res.Error != nil {
		return fmt.Errorf("cache purge: %w", res.Error)
	}

	s.log.Info("Cleared expired cache entries", "count", res.RowsAffected)
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
