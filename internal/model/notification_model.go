package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationModel struct {
	ID          string                 `gorm:"type:uuid;primary_key" json:"id"`
	RecipientID string                 `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID    string                 `gorm:"type:uuid" json:"sender_id"`
	Type        string                 `gorm:"type:varchar(50);not null;index" json:"type"`
	Title       string                 `gorm:"type:varchar(255);not null" json:"title"`
	Message     string                 `gorm:"type:text" json:"message"`
	Category    string                 `gorm:"type:varchar(20);index" json:"category"`
	Priority    string                 `gorm:"type:varchar(10);default:'medium'" json:"priority"`
	IsRead      bool                   `gorm:"default:false;index" json:"is_read"`
	Data        map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"data,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
