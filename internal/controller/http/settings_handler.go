package http

import (
	"net/http"

	"buzzline/internal/entity"
	"buzzline/internal/usecase"
	"buzzline/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsUseCase usecase.SettingsUseCase
	logger          *logger.Logger
}

func NewSettingsHandler(settingsUseCase usecase.SettingsUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
		logger:          log,
	}
}

// GetSettings godoc
// @Summary      Get notification settings
// @Description  Returns the caller's settings document, creating the defaults on first access
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.UserSettings
// @Failure      500  {object}  map[string]string
// @Router       /notifications/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.settingsUseCase.GetOrCreateSettings(userID)
	if err != nil {
		h.logger.Error("Failed to get settings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update notification settings
// @Description  Upserts any subset of the five settings sections; unknown body fields are dropped
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body entity.SettingsUpdate true "Sections to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Binding into the typed update drops any field outside the five
	// allow-listed sections and validates the section enums.
	var update entity.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsUseCase.UpdateSettings(userID, &update)
	if err != nil {
		h.logger.Error("Failed to update settings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated",
		"settings": settings,
	})
}

// ResetSettings godoc
// @Summary      Reset notification settings
// @Description  Replaces the caller's settings with the construction defaults
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/settings/reset [post]
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.settingsUseCase.ResetSettings(userID)
	if err != nil {
		h.logger.Error("Failed to reset settings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings reset to defaults",
		"settings": settings,
	})
}
