package models

import "time"

// NotificationType identifies what event produced a notification.
type NotificationType string

const (
	// NotificationTypeFollow is created when a user starts following another
	// user. Likes intentionally produce no notification.
	NotificationTypeFollow NotificationType = "follow"
)

// Notification is a persisted per-user notification. Only the Read flag is
// ever mutated after creation.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	FromUserID uint             `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint             `gorm:"not null;index" json:"to_user_id"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Read       bool             `gorm:"default:false;index" json:"read"`
	CreatedAt  time.Time        `json:"created_at"`

	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user"`
}
