package repository

import (
	"canteen/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*models.Settings, error)
	Create(settings *models.Settings) error
	Update(settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the singleton settings row.
func (r *settingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(settings *models.Settings) error {
	return r.db.Create(settings).Error
}

func (r *settingsRepository) Update(settings *models.Settings) error {
	return r.db.Save(settings).Error
}
