package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entry is one key of the store in the store_entries table.
type entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string `gorm:"column:value;type:longtext"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "store_entries"
}

// DatabaseStore keeps each key as a row. Unlike the document drivers a Set only
// touches its own key, but concurrent writers of the same key still race.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore migrates the store_entries table and returns the store.
func NewDatabaseStore(ctx context.Context, db *gorm.DB) (*DatabaseStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store table: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

// Get implements Store.
func (s *DatabaseStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var e entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load store key %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(e.Value), out); err != nil {
		return false, fmt.Errorf("failed to decode store key %q: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *DatabaseStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode store key %q: %w", key, err)
	}
	e := entry{Key: key, Value: string(raw), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to save store key %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *DatabaseStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&entry{}).Error; err != nil {
		return fmt.Errorf("failed to delete store key %q: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *DatabaseStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
