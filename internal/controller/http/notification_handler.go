package http

import (
	"net/http"
	"strconv"
	"time"

	"buzzline/internal/entity"
	"buzzline/internal/usecase"
	"buzzline/pkg/jwt"
	"buzzline/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	redisClient         *redis.Client
	jwtService          *jwt.Service
	logger              *logger.Logger
	development         bool
}

func NewNotificationHandler(
	notificationUseCase usecase.NotificationUseCase,
	redisClient *redis.Client,
	jwtService *jwt.Service,
	log *logger.Logger,
	development bool,
) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		redisClient:         redisClient,
		jwtService:          jwtService,
		logger:              log,
		development:         development,
	}
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Paginated notifications for the authenticated user, filterable by type, category and read state
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 20, max 100; out-of-range values fall back to the default)"
// @Param        type query string false "Notification type"
// @Param        category query string false "Category (connection, engagement, communication, system); overrides type"
// @Param        isRead query string false "Filter for read notifications ('true' or '1')"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var typeFilter []string
	if notificationType := c.Query("type"); notificationType != "" {
		typeFilter = []string{notificationType}
	}
	// A valid category expands to its type set and wins over type.
	if category := c.Query("category"); category != "" {
		if types, ok := entity.TypesForCategory(category); ok {
			typeFilter = types
		}
	}

	// Only "true"/"1" enable the read filter; everything else means no filter.
	var readFilter *bool
	switch c.Query("isRead") {
	case "true", "1":
		isRead := true
		readFilter = &isRead
	}

	notifications, pagination, err := h.notificationUseCase.GetUserNotifications(userID, page, limit, typeFilter, readFilter)
	if err != nil {
		h.logger.Error("Failed to get notifications for user %s: %v", userID, err)
		response := gin.H{
			"error":     "Failed to get notifications",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if h.development {
			response["detail"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    pagination,
	})
}

// GetUnreadCount godoc
// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Failure      500  {object}  map[string]string
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	count, err := h.notificationUseCase.GetUnreadCount(userID)
	if err != nil {
		h.logger.Error("Failed to get unread count for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get unread count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAsRead godoc
// @Summary      Mark one notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notification, err := h.notificationUseCase.MarkAsRead(c.Param("id"), userID)
	if err != nil {
		h.logger.Error("Failed to mark notification as read: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	if notification == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Notification marked as read",
		"notification": notification,
	})
}

// MarkAllAsRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/mark-all-read [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	count, err := h.notificationUseCase.MarkAllAsRead(userID)
	if err != nil {
		h.logger.Error("Failed to mark all notifications as read for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "All notifications marked as read",
		"modifiedCount": count,
	})
}

// DeleteNotification godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deleted, err := h.notificationUseCase.DeleteNotification(c.Param("id"), userID)
	if err != nil {
		h.logger.Error("Failed to delete notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// GetStats godoc
// @Summary      Notification counts
// @Description  Total, unread and read counts plus unread percentage; counts are read independently and may disagree transiently
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/stats [get]
func (h *NotificationHandler) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.notificationUseCase.GetStats(userID)
	if err != nil {
		h.logger.Error("Failed to get notification stats for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notification stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateTestNotification godoc
// @Summary      Create a self-targeted test notification
// @Description  Operational verification only; not registered in production. Suppression by the caller's own settings is a normal outcome.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/test [post]
func (h *NotificationHandler) CreateTestNotification(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notification, err := h.notificationUseCase.CreateNotification(usecase.CreateNotificationInput{
		RecipientID: userID,
		SenderID:    userID,
		Type:        string(entity.TypeSystemAnnouncement),
		Category:    string(entity.CategorySystem),
		Priority:    string(entity.PriorityMedium),
		Title:       "Test notification",
		Message:     "This is a test notification",
	})
	if err != nil {
		h.logger.Error("Failed to create test notification for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create test notification"})
		return
	}

	if notification == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Notification was not created (suppressed by your settings)",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Test notification created",
		"notification": notification,
	})
}
