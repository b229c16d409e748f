package model

import (
	"time"

	"buzzline/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserSettingsModel struct {
	ID            string                    `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string                    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Notifications entity.NotificationPrefs  `gorm:"type:jsonb;serializer:json" json:"notifications"`
	Privacy       entity.PrivacyPrefs       `gorm:"type:jsonb;serializer:json" json:"privacy"`
	Communication entity.CommunicationPrefs `gorm:"type:jsonb;serializer:json" json:"communication"`
	Display       entity.DisplayPrefs       `gorm:"type:jsonb;serializer:json" json:"display"`
	Security      entity.SecurityPrefs      `gorm:"type:jsonb;serializer:json" json:"security"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func (UserSettingsModel) TableName() string {
	return "user_settings"
}

func (s *UserSettingsModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
