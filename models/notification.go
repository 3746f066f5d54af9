package models

import (
	"time"
)

const (
	NotificationCreatorSystem = "System"
	NotificationCreatorAdmin  = "Admin"
)

// Notification is an append-only per-user message. Seen only ever flips
// false to true.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Message   string    `json:"message" gorm:"size:1000;not null"`
	CreatedBy string    `json:"created_by" gorm:"size:100;not null;default:'System'"`
	Seen      bool      `json:"seen" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// NotifyRequest is the payload for admin-sent notifications.
type NotifyRequest struct {
	Message string `json:"message" binding:"required"`
}
