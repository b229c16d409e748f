package entity

import "time"

// NotificationPrefs toggles delivery per notification category.
type NotificationPrefs struct {
	ConnectionAlerts    bool `json:"connectionAlerts"`
	EngagementAlerts    bool `json:"engagementAlerts"`
	CommunicationAlerts bool `json:"communicationAlerts"`
	SystemAlerts        bool `json:"systemAlerts"`
	EmailDigest         bool `json:"emailDigest"`
	PushEnabled         bool `json:"pushEnabled"`
}

type PrivacyPrefs struct {
	ProfileVisibility string `json:"profileVisibility" binding:"omitempty,oneof=public followers private"`
	ShowOnlineStatus  bool   `json:"showOnlineStatus"`
	AllowTagging      bool   `json:"allowTagging"`
}

type CommunicationPrefs struct {
	AllowMessagesFrom string `json:"allowMessagesFrom" binding:"omitempty,oneof=everyone followers nobody"`
	ReadReceipts      bool   `json:"readReceipts"`
}

type DisplayPrefs struct {
	Theme    string `json:"theme" binding:"omitempty,oneof=light dark system"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

type SecurityPrefs struct {
	LoginAlerts           bool `json:"loginAlerts"`
	TwoFactorEnabled      bool `json:"twoFactorEnabled"`
	SessionTimeoutMinutes int  `json:"sessionTimeoutMinutes" binding:"omitempty,min=5,max=1440"`
}

// UserSettings is the per-user settings document, one per user, created with
// defaults on first access.
type UserSettings struct {
	UserID        string             `json:"userId"`
	Notifications NotificationPrefs  `json:"notifications"`
	Privacy       PrivacyPrefs       `json:"privacy"`
	Communication CommunicationPrefs `json:"communication"`
	Display       DisplayPrefs       `json:"display"`
	Security      SecurityPrefs      `json:"security"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// SettingsUpdate carries a partial settings update. Only these five sections
// can ever be written; anything else in a request body is dropped when the
// JSON is bound.
type SettingsUpdate struct {
	Notifications *NotificationPrefs  `json:"notifications"`
	Privacy       *PrivacyPrefs       `json:"privacy"`
	Communication *CommunicationPrefs `json:"communication"`
	Display       *DisplayPrefs       `json:"display"`
	Security      *SecurityPrefs      `json:"security"`
}

func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID: userID,
		Notifications: NotificationPrefs{
			ConnectionAlerts:    true,
			EngagementAlerts:    true,
			CommunicationAlerts: true,
			SystemAlerts:        true,
			EmailDigest:         false,
			PushEnabled:         true,
		},
		Privacy: PrivacyPrefs{
			ProfileVisibility: "public",
			ShowOnlineStatus:  true,
			AllowTagging:      true,
		},
		Communication: CommunicationPrefs{
			AllowMessagesFrom: "everyone",
			ReadReceipts:      true,
		},
		Display: DisplayPrefs{
			Theme:    "system",
			Language: "en",
			Timezone: "UTC",
		},
		Security: SecurityPrefs{
			LoginAlerts:           true,
			TwoFactorEnabled:      false,
			SessionTimeoutMinutes: 30,
		},
	}
}

// Apply merges the non-nil sections of an update into the settings.
func (s *UserSettings) Apply(update *SettingsUpdate) {
	if update.Notifications != nil {
		s.Notifications = *update.Notifications
	}
	if update.Privacy != nil {
		s.Privacy = *update.Privacy
	}
	if update.Communication != nil {
		s.Communication = *update.Communication
	}
	if update.Display != nil {
		s.Display = *update.Display
	}
	if update.Security != nil {
		s.Security = *update.Security
	}
}

// CategoryEnabled reports whether the user accepts notifications of the given
// category. Unknown categories are allowed through.
func (s *UserSettings) CategoryEnabled(category string) bool {
	switch NotificationCategory(category) {
	case CategoryConnection:
		return s.Notifications.ConnectionAlerts
	case CategoryEngagement:
		return s.Notifications.EngagementAlerts
	case CategoryCommunication:
		return s.Notifications.CommunicationAlerts
	case CategorySystem:
		return s.Notifications.SystemAlerts
	default:
		return true
	}
}
