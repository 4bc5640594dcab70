package models

import (
	"time"
)

// NotificationRetention is how long notifications are kept before the daily
// purge removes them.
const NotificationRetention = 15 * 24 * time.Hour

type Notification struct {
	BaseModel

	UserID  uint   `gorm:"not null;index;uniqueIndex:idx_notifications_dedup" json:"user_id"`
	Message string `gorm:"not null;uniqueIndex:idx_notifications_dedup" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	// DayBucket is set only on scheduler-generated reminders: together with the
	// unique index it makes the reminder insert an atomic insert-or-ignore per
	// (user, message, calendar day). User-action notifications leave it NULL,
	// which never conflicts.
	DayBucket *time.Time `gorm:"uniqueIndex:idx_notifications_dedup" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
