// Package settings provides database operations for application settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	setting, err := repo.GetSetting("annual_goal")
package settings

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/shelf/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetValue returns the stored value for key and whether it is set to a non-empty value.
func (r *Repository) GetValue(key string) (string, bool, error) {
	setting, err := r.GetSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, setting.Value != "", nil
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(key, value string) error {
	setting := entities.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// SetSettings writes several settings in one transaction.
func (r *Repository) SetSettings(values map[string]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		for key, value := range values {
			if err := txRepo.SetSetting(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSettings removes every listed key.
func (r *Repository) DeleteSettings(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.Where("key IN ?", keys).Delete(&entities.Setting{}).Error
}

// All returns the stored settings whose key starts with prefix, ordered by key.
func (r *Repository) All(prefix string) ([]entities.Setting, error) {
	var out []entities.Setting
	query := r.db.Order("key ASC")
	if prefix != "" {
		query = query.Where("key LIKE ?", prefix+"%")
	}
	err := query.Find(&out).Error
	return out, err
}
