package models

import (
	"time"
)

// Notification is an append-only event record directed at a recipient.
// Only the Read flag is ever mutated; connection_request notifications are
// deleted outright when the request is resolved so a stale actionable item
// never lingers.
type Notification struct {
	ID          uint      `gorm:"primaryKey"`
	RecipientID uint      `gorm:"not null;index:idx_notifications_unread"`
	SenderID    uint      `gorm:"not null;index"`
	Type        string    `gorm:"type:varchar(30);not null"`
	PostID      *uint     `gorm:"index"`
	RelatedID   *uint     // e.g. a comment or message id
	Read        bool      `gorm:"default:false;not null;index:idx_notifications_unread"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Notification type constants
const (
	NotificationConnectionRequest  = "connection_request"
	NotificationConnectionAccepted = "connection_accepted"
	NotificationConnectionRemoved  = "connection_removed"
	NotificationLike               = "like"
	NotificationComment            = "comment"
	NotificationShare              = "share"
	NotificationSharePrivate       = "share_private"
	NotificationNewMessage         = "new_message"
)

func (Notification) TableName() string {
	return "notifications"
}

// NotificationView is a notification joined with its sender's display
// identity and, when present, the related post. This is what list endpoints
// return.
type NotificationView struct {
	ID        uint        `json:"_id"`
	Type      string      `json:"type"`
	Read      bool        `json:"isRead"`
	CreatedAt time.Time   `json:"createdAt"`
	Sender    UserSummary `json:"sender"`
	Post      *PostView   `json:"post,omitempty"`
	RelatedID *uint       `json:"relatedId,omitempty"`
}

// UserSummary is the display identity attached to notifications, invitation
// lists and connection lists.
type UserSummary struct {
	ID             uint   `json:"_id"`
	Name           string `json:"name"`
	Headline       string `json:"headline,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
