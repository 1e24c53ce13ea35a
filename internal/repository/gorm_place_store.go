package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spotlog/service-planner/internal/domain/place"
)

// KVEntryModel is the GORM model for the kv_entries table.
type KVEntryModel struct {
	Key       string          `gorm:"primaryKey;size:128"`
	Value     json.RawMessage `gorm:"type:jsonb;not null"`
	Version   int64           `gorm:"not null;default:1"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (KVEntryModel) TableName() string {
	return "kv_entries"
}

// GormPlaceListStore keeps the place list as one JSONB row in kv_entries.
type GormPlaceListStore struct {
	db  *gorm.DB
	key string
}

// NewGormPlaceListStore creates a store writing under key.
func NewGormPlaceListStore(db *gorm.DB, key string) *GormPlaceListStore {
	return &GormPlaceListStore{db: db, key: key}
}

// Load returns the stored list, or an empty list when the row does not exist.
func (s *GormPlaceListStore) Load(ctx context.Context) ([]place.Place, error) {
	var model KVEntryModel
	if err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []place.Place{}, nil
		}
		return nil, fmt.Errorf("failed to load place list %q: %w", s.key, err)
	}
	return decodePlaceList(s.key, model.Value)
}

// Save upserts the list and bumps the row version.
func (s *GormPlaceListStore) Save(ctx context.Context, places []place.Place) error {
	raw, err := encodePlaceList(places)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	model := KVEntryModel{
		Key:       s.key,
		Value:     raw,
		Version:   1,
		UpdatedAt: now,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      raw,
			"updated_at": now,
			"version":    gorm.Expr("kv_entries.version + 1"),
		}),
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save place list %q: %w", s.key, result.Error)
	}
	return nil
}

// Version returns the current row version, 0 when nothing was saved.
func (s *GormPlaceListStore) Version(ctx context.Context) (int64, error) {
	var model KVEntryModel
	err := s.db.WithContext(ctx).Select("version").Where("key = ?", s.key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read place list version: %w", err)
	}
	return model.Version, nil
}

// Ping checks the database connection.
func (s *GormPlaceListStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func encodePlaceList(places []place.Place) (json.RawMessage, error) {
	if places == nil {
		places = []place.Place{}
	}
	raw, err := json.Marshal(places)
	if err != nil {
		return nil, fmt.Errorf("failed to encode place list: %w", err)
	}
	return raw, nil
}

func decodePlaceList(key string, raw []byte) ([]place.Place, error) {
	if len(raw) == 0 {
		return []place.Place{}, nil
	}
	var places []place.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("failed to decode place list %q: %w", key, err)
	}
	if places == nil {
		places = []place.Place{}
	}
	return places, nil
}
