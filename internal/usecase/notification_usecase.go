package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"buzzline/internal/entity"
	"buzzline/internal/repo/persistent"
	"buzzline/pkg/logger"
	"buzzline/pkg/queue"
	"buzzline/pkg/realtime"
)

// CreateNotificationInput is the payload for the notification creation path,
// used by the debug endpoint and the event consumer alike.
type CreateNotificationInput struct {
	RecipientID string
	SenderID    string
	Type        string
	Title       string
	Message     string
	Category    string
	Priority    string
	Data        map[string]interface{}
}

type NotificationUseCase interface {
	GetUserNotifications(userID string, page, limit int, types []string, isRead *bool) ([]*entity.Notification, *entity.Pagination, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(id, userID string) (*entity.Notification, error)
	MarkAllAsRead(userID string) (int64, error)
	DeleteNotification(id, userID string) (bool, error)
	CreateNotification(input CreateNotificationInput) (*entity.Notification, error)
	GetStats(userID string) (*entity.Stats, error)
	HandleEventTask(task map[string]interface{}) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	settingsRepo     persistent.SettingsRepository
	publisher        realtime.Publisher
	logger           *logger.Logger
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	settingsRepo persistent.SettingsRepository,
	publisher realtime.Publisher,
	log *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		settingsRepo:     settingsRepo,
		publisher:        publisher,
		logger:           log,
	}
}

func (uc *notificationUseCase) GetUserNotifications(userID string, page, limit int, types []string, isRead *bool) ([]*entity.Notification, *entity.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	notifications, total, err := uc.notificationRepo.ListByRecipient(userID, limit, offset, types, isRead)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := &entity.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return notifications, pagination, nil
}

func (uc *notificationUseCase) GetUnreadCount(userID string) (int64, error) {
	count, err := uc.notificationRepo.UnreadCount(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks one notification read and, on success, emits a
// notification_read event on the recipient's live channel. Returns (nil, nil)
// when the notification is missing or not owned by the caller.
func (uc *notificationUseCase) MarkAsRead(id, userID string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.MarkAsRead(id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if notification == nil {
		return nil, nil
	}

	uc.publishEvent(userID, "notification_read", map[string]interface{}{
		"notificationId": notification.ID,
	})

	return notification, nil
}

func (uc *notificationUseCase) MarkAllAsRead(userID string) (int64, error) {
	count, err := uc.notificationRepo.MarkAllAsRead(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return count, nil
}

func (uc *notificationUseCase) DeleteNotification(id, userID string) (bool, error) {
	deleted, err := uc.notificationRepo.Delete(id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete notification: %w", err)
	}
	return deleted, nil
}

// CreateNotification stores a notification unless the recipient's settings
// suppress its category. A suppressed creation returns (nil, nil): declining
// to notify is a normal outcome, not an error.
func (uc *notificationUseCase) CreateNotification(input CreateNotificationInput) (*entity.Notification, error) {
	if input.RecipientID == "" {
		return nil, fmt.Errorf("recipient id is required")
	}
	if input.Type == "" {
		return nil, fmt.Errorf("notification type is required")
	}

	category := input.Category
	if category == "" {
		if c, ok := entity.CategoryForType(input.Type); ok {
			category = c
		}
	}

	settings, err := uc.settingsRepo.FindByUserID(input.RecipientID)
	if err != nil {
		// Missing or unreadable settings never block delivery.
		uc.logger.Warn("Failed to load settings for user %s, assuming defaults: %v", input.RecipientID, err)
	}
	if settings != nil && !settings.CategoryEnabled(category) {
		uc.logger.Info("Notification suppressed by settings: user=%s category=%s type=%s", input.RecipientID, category, input.Type)
		return nil, nil
	}

	priority := input.Priority
	if priority == "" {
		priority = string(entity.PriorityMedium)
	}

	notification := &entity.Notification{
		RecipientID: input.RecipientID,
		SenderID:    input.SenderID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
		Category:    category,
		Priority:    priority,
		Data:        input.Data,
	}

	if err := uc.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	uc.publishEvent(input.RecipientID, "notification_created", map[string]interface{}{
		"notification": notification,
	})

	uc.logger.Info("Notification created: id=%s user=%s type=%s", notification.ID, input.RecipientID, input.Type)
	return notification, nil
}

// GetStats runs three independent reads concurrently: a size-1 page fetch for
// the total, the unread count, and a size-1 read-filtered fetch. There is no
// isolation across the reads; the counts are a best-effort snapshot.
func (uc *notificationUseCase) GetStats(userID string) (*entity.Stats, error) {
	var (
		wg     sync.WaitGroup
		total  int64
		unread int64
		read   int64
		errs   [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		_, pagination, err := uc.GetUserNotifications(userID, 1, 1, nil, nil)
		if err != nil {
			errs[0] = err
			return
		}
		total = pagination.Total
	}()
	go func() {
		defer wg.Done()
		unread, errs[1] = uc.notificationRepo.UnreadCount(userID)
	}()
	go func() {
		defer wg.Done()
		isRead := true
		_, pagination, err := uc.GetUserNotifications(userID, 1, 1, nil, &isRead)
		if err != nil {
			errs[2] = err
			return
		}
		read = pagination.Total
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to compute notification stats: %w", err)
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(unread) / float64(total) * 100))
	}

	return &entity.Stats{
		Total:            total,
		Unread:           unread,
		Read:             read,
		UnreadPercentage: percentage,
	}, nil
}

// HandleEventTask turns one queued platform event into a notification. The
// task carries type, recipient_id and sender_id; title and message fall back
// to a sender-derived default when the producer left them empty.
func (uc *notificationUseCase) HandleEventTask(task map[string]interface{}) error {
	notificationType, _ := task["type"].(string)
	recipientID, _ := task["recipient_id"].(string)
	senderID, _ := task["sender_id"].(string)

	// Validation failures are permanent; wrap them so the consumer drops the
	// event instead of redelivering it forever.
	if notificationType == "" || recipientID == "" {
		return fmt.Errorf("%w: missing type or recipient_id", queue.ErrRejected)
	}
	if _, ok := entity.CategoryForType(notificationType); !ok {
		return fmt.Errorf("%w: unknown notification type %q", queue.ErrRejected, notificationType)
	}

	title, _ := task["title"].(string)
	message, _ := task["message"].(string)
	data, _ := task["data"].(map[string]interface{})

	if title == "" || message == "" {
		senderName := "Someone"
		if senderID != "" {
			if username, err := uc.notificationRepo.UsernameByID(senderID); err == nil {
				senderName = username
			}
		}
		if title == "" {
			title = defaultTitle(notificationType)
		}
		if message == "" {
			message = defaultMessage(notificationType, senderName)
		}
	}

	notification, err := uc.CreateNotification(CreateNotificationInput{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Data:        data,
	})
	if err != nil {
		return err
	}
	if notification == nil {
		uc.logger.Info("Event dropped, recipient %s has %s notifications disabled", recipientID, notificationType)
	}
	return nil
}

// publishEvent pushes an event to the user's live channel. Best effort: a nil
// publisher or a failed publish never fails the caller.
func (uc *notificationUseCase) publishEvent(userID, event string, fields map[string]interface{}) {
	if uc.publisher == nil {
		return
	}

	payload := map[string]interface{}{"event": event}
	for k, v := range fields {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		uc.logger.Warn("Failed to marshal realtime event %s: %v", event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	uc.publisher.Publish(ctx, realtime.UserChannel(userID), body)
}

func defaultTitle(notificationType string) string {
	switch entity.NotificationType(notificationType) {
	case entity.TypeFollowRequest:
		return "New follow request"
	case entity.TypeFollowAccepted:
		return "Follow request accepted"
	case entity.TypeFollowRejected:
		return "Follow request declined"
	case entity.TypePostLike:
		return "New like"
	case entity.TypePostComment:
		return "New comment"
	case entity.TypePostShare:
		return "Post shared"
	case entity.TypePostMention:
		return "You were mentioned"
	case entity.TypeMessage:
		return "New message"
	case entity.TypeSecurityAlert:
		return "Security alert"
	default:
		return "Notification"
	}
}

func defaultMessage(notificationType, senderName string) string {
	switch entity.NotificationType(notificationType) {
	case entity.TypeFollowRequest:
		return fmt.Sprintf("%s sent you a follow request", senderName)
	case entity.TypeFollowAccepted:
		return fmt.Sprintf("%s accepted your follow request", senderName)
	case entity.TypeFollowRejected:
		return fmt.Sprintf("%s declined your follow request", senderName)
	case entity.TypePostLike:
		return fmt.Sprintf("%s liked your post", senderName)
	case entity.TypePostComment:
		return fmt.Sprintf("%s commented on your post", senderName)
	case entity.TypePostShare:
		return fmt.Sprintf("%s shared your post", senderName)
	case entity.TypePostMention:
		return fmt.Sprintf("%s mentioned you in a post", senderName)
	case entity.TypeMessage:
		return fmt.Sprintf("%s sent you a message", senderName)
	default:
		return "You have a new notification"
	}
}
