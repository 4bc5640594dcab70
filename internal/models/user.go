package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel

	FullName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// Password reset state. ResetAttempts holds unix-millisecond timestamps of
	// recent reset requests, used as a sliding rate-limit window.
	ResetCode       string
	ResetCodeExpiry *time.Time
	ResetAttempts   datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Jobs          []Job          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
