package persistent

import (
	"errors"

	"buzzline/internal/entity"
	"buzzline/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByRecipient(recipientID string, limit, offset int, types []string, isRead *bool) ([]*entity.Notification, int64, error)
	UnreadCount(recipientID string) (int64, error)
	MarkAsRead(id, recipientID string) (*entity.Notification, error)
	MarkAllAsRead(recipientID string) (int64, error)
	Delete(id, recipientID string) (bool, error)
	UsernameByID(userID string) (string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *entity.Notification) error {
	notificationModel := ToNotificationModel(notification)
	if notificationModel.ID == "" {
		notificationModel.ID = uuid.New().String()
	}

	if err := r.db.Create(notificationModel).Error; err != nil {
		return err
	}

	*notification = *ToNotificationEntity(notificationModel)
	return nil
}

// ListByRecipient returns one page of a recipient's notifications, newest
// first, plus the total matching count. types narrows to a set of
// notification types; isRead, when non-nil, filters on read state.
func (r *notificationRepository) ListByRecipient(recipientID string, limit, offset int, types []string, isRead *bool) ([]*entity.Notification, int64, error) {
	query := r.db.Model(&model.NotificationModel{}).Where("recipient_id = ?", recipientID)

	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []model.NotificationModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	return ToNotificationEntities(notificationModels), total, nil
}

func (r *notificationRepository) UnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks one notification read, scoped to the recipient. Returns
// (nil, nil) when the notification does not exist or belongs to someone else.
func (r *notificationRepository) MarkAsRead(id, recipientID string) (*entity.Notification, error) {
	var notificationModel model.NotificationModel
	err := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).First(&notificationModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !notificationModel.IsRead {
		if err := r.db.Model(&notificationModel).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		notificationModel.IsRead = true
	}

	return ToNotificationEntity(&notificationModel), nil
}

func (r *notificationRepository) MarkAllAsRead(recipientID string) (int64, error) {
	result := r.db.Model(&model.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// Delete removes one notification scoped to the recipient. Returns false when
// nothing matched.
func (r *notificationRepository) Delete(id, recipientID string) (bool, error) {
	result := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.NotificationModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) UsernameByID(userID string) (string, error) {
	var userModel model.UserModel
	err := r.db.Where("id = ?", userID).Select("username").First(&userModel).Error
	if err != nil {
		return "", err
	}
	return userModel.Username, nil
}
