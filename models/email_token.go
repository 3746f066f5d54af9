package models

import (
	"time"

	"gorm.io/gorm"
)

type EmailTokenType string

const (
	EmailTokenResetPassword EmailTokenType = "reset_password"
)

// EmailToken is a single-use code mailed to a user, currently only for
// password resets.
type EmailToken struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Token     string         `json:"token" gorm:"size:64;uniqueIndex;not null"`
	Type      EmailTokenType `json:"type" gorm:"type:varchar(30);not null;default:'reset_password'"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the EmailToken model
func (EmailToken) TableName() string {
	return "email_tokens"
}

// IsExpired checks if the email token is expired
func (et *EmailToken) IsExpired() bool {
	return time.Now().After(et.ExpiresAt)
}

// BeforeCreate is a GORM hook that runs before creating an email token
func (et *EmailToken) BeforeCreate(tx *gorm.DB) error {
	if et.ExpiresAt.IsZero() {
		et.ExpiresAt = time.Now().Add(1 * time.Hour)
	}
	return nil
}
