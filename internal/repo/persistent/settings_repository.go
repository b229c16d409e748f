package persistent

import (
	"errors"

	"buzzline/internal/entity"
	"buzzline/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	FindByUserID(userID string) (*entity.UserSettings, error)
	Create(settings *entity.UserSettings) error
	Save(settings *entity.UserSettings) error
	DeleteByUserID(userID string) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// FindByUserID returns (nil, nil) when no settings document exists yet.
func (r *settingsRepository) FindByUserID(userID string) (*entity.UserSettings, error) {
	var settingsModel model.UserSettingsModel
	err := r.db.Where("user_id = ?", userID).First(&settingsModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToUserSettingsEntity(&settingsModel), nil
}

func (r *settingsRepository) Create(settings *entity.UserSettings) error {
	settingsModel := ToUserSettingsModel(settings)
	if err := r.db.Create(settingsModel).Error; err != nil {
		return err
	}
	*settings = *ToUserSettingsEntity(settingsModel)
	return nil
}

func (r *settingsRepository) Save(settings *entity.UserSettings) error {
	var settingsModel model.UserSettingsModel
	err := r.db.Where("user_id = ?", settings.UserID).First(&settingsModel).Error
	if err != nil {
		return err
	}

	settingsModel.Notifications = settings.Notifications
	settingsModel.Privacy = settings.Privacy
	settingsModel.Communication = settings.Communication
	settingsModel.Display = settings.Display
	settingsModel.Security = settings.Security

	if err := r.db.Save(&settingsModel).Error; err != nil {
		return err
	}
	*settings = *ToUserSettingsEntity(&settingsModel)
	return nil
}

func (r *settingsRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.UserSettingsModel{}).Error
}
