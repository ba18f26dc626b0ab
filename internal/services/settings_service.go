package services

import (
	"errors"

	"canteen/internal/models"
	"canteen/internal/repository"

	"gorm.io/gorm"
)

type SettingsService interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(canteenName, logoURL string) (*models.Settings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the singleton settings row, creating the default one on
// first access.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = &models.Settings{CanteenName: "Green University Canteen"}
		if err := s.settingsRepo.Create(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	return settings, err
}

func (s *settingsService) UpdateSettings(canteenName, logoURL string) (*models.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	if canteenName != "" {
		settings.CanteenName = canteenName
	}
	settings.LogoURL = logoURL
	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
