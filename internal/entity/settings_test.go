package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultUserSettings(t *testing.T) {
	settings := DefaultUserSettings("user-123")

	assert.Equal(t, "user-123", settings.UserID)
	assert.True(t, settings.Notifications.ConnectionAlerts)
	assert.True(t, settings.Notifications.EngagementAlerts)
	assert.True(t, settings.Notifications.CommunicationAlerts)
	assert.True(t, settings.Notifications.SystemAlerts)
	assert.False(t, settings.Notifications.EmailDigest)
	assert.Equal(t, "public", settings.Privacy.ProfileVisibility)
	assert.Equal(t, "everyone", settings.Communication.AllowMessagesFrom)
	assert.Equal(t, "system", settings.Display.Theme)
	assert.Equal(t, "en", settings.Display.Language)
	assert.False(t, settings.Security.TwoFactorEnabled)
	assert.Equal(t, 30, settings.Security.SessionTimeoutMinutes)
}

func TestApply_PartialUpdate(t *testing.T) {
	settings := DefaultUserSettings("user-123")

	settings.Apply(&SettingsUpdate{
		Display: &DisplayPrefs{Theme: "dark", Language: "de", Timezone: "Europe/Berlin"},
	})

	// Updated section replaced wholesale
	assert.Equal(t, "dark", settings.Display.Theme)
	assert.Equal(t, "de", settings.Display.Language)

	// Untouched sections keep their values
	assert.Equal(t, "public", settings.Privacy.ProfileVisibility)
	assert.True(t, settings.Notifications.SystemAlerts)
}

func TestApply_AllSections(t *testing.T) {
	settings := DefaultUserSettings("user-123")

	settings.Apply(&SettingsUpdate{
		Notifications: &NotificationPrefs{SystemAlerts: false},
		Privacy:       &PrivacyPrefs{ProfileVisibility: "private"},
		Communication: &CommunicationPrefs{AllowMessagesFrom: "nobody"},
		Display:       &DisplayPrefs{Theme: "light"},
		Security:      &SecurityPrefs{TwoFactorEnabled: true, SessionTimeoutMinutes: 15},
	})

	assert.False(t, settings.Notifications.SystemAlerts)
	assert.Equal(t, "private", settings.Privacy.ProfileVisibility)
	assert.Equal(t, "nobody", settings.Communication.AllowMessagesFrom)
	assert.Equal(t, "light", settings.Display.Theme)
	assert.True(t, settings.Security.TwoFactorEnabled)
	assert.Equal(t, 15, settings.Security.SessionTimeoutMinutes)
}

func TestApply_EmptyUpdate(t *testing.T) {
	settings := DefaultUserSettings("user-123")
	expected := *settings

	settings.Apply(&SettingsUpdate{})

	assert.Equal(t, expected, *settings)
}

func TestCategoryEnabled(t *testing.T) {
	settings := DefaultUserSettings("user-123")
	settings.Notifications.SystemAlerts = false
	settings.Notifications.EngagementAlerts = false

	assert.False(t, settings.CategoryEnabled("system"))
	assert.False(t, settings.CategoryEnabled("engagement"))
	assert.True(t, settings.CategoryEnabled("connection"))
	assert.True(t, settings.CategoryEnabled("communication"))

	// Unknown categories are allowed through
	assert.True(t, settings.CategoryEnabled("weather"))
	assert.True(t, settings.CategoryEnabled(""))
}
