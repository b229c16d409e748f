package persistent

import (
	"buzzline/internal/entity"
	"buzzline/internal/model"
)

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}
	return &entity.Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		SenderID:    m.SenderID,
		Type:        m.Type,
		Title:       m.Title,
		Message:     m.Message,
		Category:    m.Category,
		Priority:    m.Priority,
		IsRead:      m.IsRead,
		Data:        m.Data,
		CreatedAt:   m.CreatedAt,
	}
}

func ToNotificationEntities(models []model.NotificationModel) []*entity.Notification {
	notifications := make([]*entity.Notification, len(models))
	for i := range models {
		notifications[i] = ToNotificationEntity(&models[i])
	}
	return notifications
}

func ToNotificationModel(n *entity.Notification) *model.NotificationModel {
	return &model.NotificationModel{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		SenderID:    n.SenderID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Category:    n.Category,
		Priority:    n.Priority,
		IsRead:      n.IsRead,
		Data:        n.Data,
		CreatedAt:   n.CreatedAt,
	}
}

func ToUserSettingsEntity(m *model.UserSettingsModel) *entity.UserSettings {
	if m == nil {
		return nil
	}
	return &entity.UserSettings{
		UserID:        m.UserID,
		Notifications: m.Notifications,
		Privacy:       m.Privacy,
		Communication: m.Communication,
		Display:       m.Display,
		Security:      m.Security,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserSettingsModel(s *entity.UserSettings) *model.UserSettingsModel {
	return &model.UserSettingsModel{
		UserID:        s.UserID,
		Notifications: s.Notifications,
		Privacy:       s.Privacy,
		Communication: s.Communication,
		Display:       s.Display,
		Security:      s.Security,
	}
}
