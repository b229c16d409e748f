package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"buzzline/internal/entity"
	"buzzline/internal/repo/persistent"
	"buzzline/pkg/logger"
	"buzzline/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of persistent.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *entity.Notification) error {
	args := m.Called(notification)
	if args.Error(0) == nil && notification.ID == "" {
		notification.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(recipientID string, limit, offset int, types []string, isRead *bool) ([]*entity.Notification, int64, error) {
	args := m.Called(recipientID, limit, offset, types, isRead)
	var notifications []*entity.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]*entity.Notification)
	}
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) UnreadCount(recipientID string) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(id, recipientID string) (*entity.Notification, error) {
	args := m.Called(id, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(recipientID string) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(id, recipientID string) (bool, error) {
	args := m.Called(id, recipientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) UsernameByID(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

var _ persistent.NotificationRepository = (*MockNotificationRepository)(nil)

// MockSettingsRepository is a mock implementation of persistent.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindByUserID(userID string) (*entity.UserSettings, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Create(settings *entity.UserSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) Save(settings *entity.UserSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) DeleteByUserID(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

var _ persistent.SettingsRepository = (*MockSettingsRepository)(nil)

// fakePublisher records published events
type fakePublisher struct {
	mu       sync.Mutex
	channels []string
	payloads []string
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, string(payload))
}

func TestGetUserNotifications_Pagination(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("ListByRecipient", "user-1", 20, 20, []string(nil), (*bool)(nil)).
		Return([]*entity.Notification{{ID: "n-1"}}, int64(41), nil)

	notifications, pagination, err := uc.GetUserNotifications("user-1", 2, 20, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
	assert.Equal(t, int64(41), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	notificationRepo.AssertExpectations(t)
}

func TestGetUserNotifications_DefaultsApplied(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("ListByRecipient", "user-1", 20, 0, []string(nil), (*bool)(nil)).
		Return([]*entity.Notification{}, int64(0), nil)

	_, pagination, err := uc.GetUserNotifications("user-1", 0, 0, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
}

func TestMarkAsRead_PublishesEvent(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := &fakePublisher{}
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, publisher, logger.New())

	notificationRepo.On("MarkAsRead", "n-1", "user-1").
		Return(&entity.Notification{ID: "n-1", RecipientID: "user-1", IsRead: true}, nil)

	notification, err := uc.MarkAsRead("n-1", "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, notification)
	assert.True(t, notification.IsRead)
	assert.Equal(t, []string{"user_user-1"}, publisher.channels)
	assert.Contains(t, publisher.payloads[0], "notification_read")
	assert.Contains(t, publisher.payloads[0], "n-1")
}

func TestMarkAsRead_NotFound(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := &fakePublisher{}
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, publisher, logger.New())

	notificationRepo.On("MarkAsRead", "missing", "user-1").Return(nil, nil)

	notification, err := uc.MarkAsRead("missing", "user-1")

	assert.NoError(t, err)
	assert.Nil(t, notification)
	assert.Empty(t, publisher.channels)
}

func TestMarkAsRead_NilPublisher(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("MarkAsRead", "n-1", "user-1").
		Return(&entity.Notification{ID: "n-1", RecipientID: "user-1", IsRead: true}, nil)

	notification, err := uc.MarkAsRead("n-1", "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, notification)
}

func TestCreateNotification_Suppressed(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := &fakePublisher{}
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, publisher, logger.New())

	settings := entity.DefaultUserSettings("user-1")
	settings.Notifications.SystemAlerts = false
	settingsRepo.On("FindByUserID", "user-1").Return(settings, nil)

	notification, err := uc.CreateNotification(CreateNotificationInput{
		RecipientID: "user-1",
		SenderID:    "user-1",
		Type:        string(entity.TypeSystemAnnouncement),
		Category:    string(entity.CategorySystem),
		Title:       "Test",
		Message:     "Test",
	})

	assert.NoError(t, err)
	assert.Nil(t, notification)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything)
	assert.Empty(t, publisher.channels)
}

func TestCreateNotification_Created(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := &fakePublisher{}
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, publisher, logger.New())

	settingsRepo.On("FindByUserID", "user-1").Return(entity.DefaultUserSettings("user-1"), nil)
	notificationRepo.On("Create", mock.AnythingOfType("*entity.Notification")).Return(nil)

	notification, err := uc.CreateNotification(CreateNotificationInput{
		RecipientID: "user-1",
		SenderID:    "user-2",
		Type:        string(entity.TypePostLike),
		Title:       "New like",
		Message:     "user-2 liked your post",
	})

	assert.NoError(t, err)
	assert.NotNil(t, notification)
	// Category derived from type when not supplied
	assert.Equal(t, "engagement", notification.Category)
	assert.Equal(t, "medium", notification.Priority)
	assert.Equal(t, []string{"user_user-1"}, publisher.channels)
	assert.Contains(t, publisher.payloads[0], "notification_created")
}

func TestCreateNotification_MissingSettingsAllowsDelivery(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	settingsRepo.On("FindByUserID", "user-1").Return(nil, nil)
	notificationRepo.On("Create", mock.AnythingOfType("*entity.Notification")).Return(nil)

	notification, err := uc.CreateNotification(CreateNotificationInput{
		RecipientID: "user-1",
		Type:        string(entity.TypeMessage),
		Title:       "New message",
		Message:     "hello",
	})

	assert.NoError(t, err)
	assert.NotNil(t, notification)
}

func TestCreateNotification_MissingRecipient(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	_, err := uc.CreateNotification(CreateNotificationInput{Type: "post_like"})
	assert.Error(t, err)

	_, err = uc.CreateNotification(CreateNotificationInput{RecipientID: "user-1"})
	assert.Error(t, err)
}

func TestGetStats_Percentage(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("ListByRecipient", "user-1", 1, 0, []string(nil), (*bool)(nil)).
		Return([]*entity.Notification{}, int64(10), nil)
	notificationRepo.On("UnreadCount", "user-1").Return(int64(3), nil)
	notificationRepo.On("ListByRecipient", "user-1", 1, 0, []string(nil), mock.MatchedBy(func(isRead *bool) bool {
		return isRead != nil && *isRead
	})).Return([]*entity.Notification{}, int64(7), nil)

	stats, err := uc.GetStats("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(3), stats.Unread)
	assert.Equal(t, int64(7), stats.Read)
	assert.Equal(t, 30, stats.UnreadPercentage)
}

func TestGetStats_EmptyTotal(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("ListByRecipient", "user-1", 1, 0, []string(nil), (*bool)(nil)).
		Return([]*entity.Notification{}, int64(0), nil)
	notificationRepo.On("UnreadCount", "user-1").Return(int64(0), nil)
	notificationRepo.On("ListByRecipient", "user-1", 1, 0, []string(nil), mock.MatchedBy(func(isRead *bool) bool {
		return isRead != nil && *isRead
	})).Return([]*entity.Notification{}, int64(0), nil)

	stats, err := uc.GetStats("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	// No division by zero
	assert.Equal(t, 0, stats.UnreadPercentage)
}

func TestHandleEventTask(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	settingsRepo.On("FindByUserID", "user-1").Return(entity.DefaultUserSettings("user-1"), nil)
	notificationRepo.On("UsernameByID", "user-2").Return("ada", nil)
	notificationRepo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.RecipientID == "user-1" &&
			n.Type == "post_like" &&
			n.Category == "engagement" &&
			n.Message == "ada liked your post"
	})).Return(nil)

	err := uc.HandleEventTask(map[string]interface{}{
		"type":         "post_like",
		"recipient_id": "user-1",
		"sender_id":    "user-2",
	})

	assert.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

func TestHandleEventTask_InvalidTasksRejected(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	// Missing recipient: permanently invalid, must not be requeued
	err := uc.HandleEventTask(map[string]interface{}{"type": "post_like"})
	assert.ErrorIs(t, err, queue.ErrRejected)

	// Unknown type: permanently invalid, must not be requeued
	err = uc.HandleEventTask(map[string]interface{}{
		"type":         "smoke_signal",
		"recipient_id": "user-1",
	})
	assert.ErrorIs(t, err, queue.ErrRejected)
}

func TestHandleEventTask_StoreFailureNotRejected(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	settingsRepo.On("FindByUserID", "user-1").Return(entity.DefaultUserSettings("user-1"), nil)
	notificationRepo.On("Create", mock.AnythingOfType("*entity.Notification")).
		Return(errors.New("connection refused"))

	// A transient store failure stays retryable
	err := uc.HandleEventTask(map[string]interface{}{
		"type":         "post_like",
		"recipient_id": "user-1",
		"title":        "New like",
		"message":      "someone liked your post",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, queue.ErrRejected)
}

func TestDeleteNotification(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("Delete", "n-1", "user-1").Return(true, nil)
	notificationRepo.On("Delete", "missing", "user-1").Return(false, nil)

	deleted, err := uc.DeleteNotification("n-1", "user-1")
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = uc.DeleteNotification("missing", "user-1")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestMarkAllAsRead(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	settingsRepo := new(MockSettingsRepository)
	uc := NewNotificationUseCase(notificationRepo, settingsRepo, nil, logger.New())

	notificationRepo.On("MarkAllAsRead", "user-1").Return(int64(5), nil)

	count, err := uc.MarkAllAsRead("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
