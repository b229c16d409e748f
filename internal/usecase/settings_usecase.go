package usecase

import (
	"fmt"

	"buzzline/internal/entity"
	"buzzline/internal/repo/persistent"
	"buzzline/pkg/logger"
)

type SettingsUseCase interface {
	GetOrCreateSettings(userID string) (*entity.UserSettings, error)
	UpdateSettings(userID string, update *entity.SettingsUpdate) (*entity.UserSettings, error)
	ResetSettings(userID string) (*entity.UserSettings, error)
}

type settingsUseCase struct {
	settingsRepo persistent.SettingsRepository
	logger       *logger.Logger
}

func NewSettingsUseCase(settingsRepo persistent.SettingsRepository, log *logger.Logger) SettingsUseCase {
	return &settingsUseCase{
		settingsRepo: settingsRepo,
		logger:       log,
	}
}

// GetOrCreateSettings returns the user's settings document, creating and
// persisting the defaults on first access.
func (uc *settingsUseCase) GetOrCreateSettings(userID string) (*entity.UserSettings, error) {
	settings, err := uc.settingsRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	settings = entity.DefaultUserSettings(userID)
	if err := uc.settingsRepo.Create(settings); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	uc.logger.Info("Created default settings for user %s", userID)
	return settings, nil
}

// UpdateSettings upserts the five allow-listed sections. A missing document
// is created from the defaults with the update applied on top.
func (uc *settingsUseCase) UpdateSettings(userID string, update *entity.SettingsUpdate) (*entity.UserSettings, error) {
	settings, err := uc.settingsRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if settings == nil {
		settings = entity.DefaultUserSettings(userID)
		settings.Apply(update)
		if err := uc.settingsRepo.Create(settings); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
		return settings, nil
	}

	settings.Apply(update)
	if err := uc.settingsRepo.Save(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// ResetSettings deletes any existing document and recreates the defaults. The
// two steps are not atomic; a reader in between may briefly observe no
// settings, which is acceptable for single-user documents.
func (uc *settingsUseCase) ResetSettings(userID string) (*entity.UserSettings, error) {
	if err := uc.settingsRepo.DeleteByUserID(userID); err != nil {
		return nil, fmt.Errorf("failed to delete settings: %w", err)
	}

	settings := entity.DefaultUserSettings(userID)
	if err := uc.settingsRepo.Create(settings); err != nil {
		return nil, fmt.Errorf("failed to recreate default settings: %w", err)
	}

	uc.logger.Info("Reset settings to defaults for user %s", userID)
	return settings, nil
}
