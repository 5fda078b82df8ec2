// Package settings provides database operations for grouped key/value
// settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	setting, err := repo.GetSetting("shelves", "shelf_names")
package settings

import (
	"gorm.io/gorm"

	"github.com/vrajpatel/book-keeper/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by group and key.
func (r *Repository) GetSetting(group, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("group_name = ? AND key = ?", group, key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting creates or updates a setting within a group.
func (r *Repository) SetSetting(group, key, value string) error {
	var setting entities.Setting
	result := r.db.Where("group_name = ? AND key = ?", group, key).First(&setting)

	if result.Error == gorm.ErrRecordNotFound {
		setting = entities.Setting{
			Group: group,
			Key:   key,
			Value: value,
		}
		return r.db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}

// DeleteSetting removes a setting by group and key.
func (r *Repository) DeleteSetting(group, key string) error {
	return r.db.Where("group_name = ? AND key = ?", group, key).Delete(&entities.Setting{}).Error
}
