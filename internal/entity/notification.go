package entity

import "time"

type NotificationType string

const (
	TypeFollowRequest      NotificationType = "follow_request"
	TypeFollowAccepted     NotificationType = "follow_accepted"
	TypeFollowRejected     NotificationType = "follow_rejected"
	TypePostLike           NotificationType = "post_like"
	TypePostComment        NotificationType = "post_comment"
	TypePostShare          NotificationType = "post_share"
	TypePostMention        NotificationType = "post_mention"
	TypeMessage            NotificationType = "message"
	TypeSystemAnnouncement NotificationType = "system_announcement"
	TypeSecurityAlert      NotificationType = "security_alert"
)

type NotificationCategory string

const (
	CategoryConnection    NotificationCategory = "connection"
	CategoryEngagement    NotificationCategory = "engagement"
	CategoryCommunication NotificationCategory = "communication"
	CategorySystem        NotificationCategory = "system"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// categoryTypes is the static mapping from coarse categories to the concrete
// notification types stored per notification.
var categoryTypes = map[NotificationCategory][]NotificationType{
	CategoryConnection:    {TypeFollowRequest, TypeFollowAccepted, TypeFollowRejected},
	CategoryEngagement:    {TypePostLike, TypePostComment, TypePostShare, TypePostMention},
	CategoryCommunication: {TypeMessage},
	CategorySystem:        {TypeSystemAnnouncement, TypeSecurityAlert},
}

// TypesForCategory expands a category into its list of notification types.
// The second return is false for an unknown category.
func TypesForCategory(category string) ([]string, bool) {
	types, ok := categoryTypes[NotificationCategory(category)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out, true
}

// CategoryForType returns the category a notification type belongs to.
func CategoryForType(notificationType string) (string, bool) {
	for category, types := range categoryTypes {
		for _, t := range types {
			if string(t) == notificationType {
				return string(category), true
			}
		}
	}
	return "", false
}

// Notification is one event delivered to a user. Read state and existence are
// owned here; creation may be suppressed by the recipient's settings.
type Notification struct {
	ID          string                 `json:"id"`
	RecipientID string                 `json:"recipientId"`
	SenderID    string                 `json:"senderId"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Category    string                 `json:"category"`
	Priority    string                 `json:"priority"`
	IsRead      bool                   `json:"isRead"`
	Data        map[string]interface{} `json:"data,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Stats aggregates per-user notification counts. The three source reads are
// independent, so the numbers may disagree transiently.
type Stats struct {
	Total            int64 `json:"total"`
	Unread           int64 `json:"unread"`
	Read             int64 `json:"read"`
	UnreadPercentage int   `json:"unreadPercentage"`
}
