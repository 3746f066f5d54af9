package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusDeclined BookingStatus = "declined"
	BookingStatusCanceled BookingStatus = "canceled"
)

// Booking is a user's request to occupy a property for a date range.
// Processed bookings are marked, never deleted, so the ledger keeps its
// audit trail.
type Booking struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	UserID     uint          `json:"user_id" gorm:"not null;index"`
	PropertyID uint          `json:"property_id" gorm:"not null;index"`
	StartDate  time.Time     `json:"start_date" gorm:"not null"`
	EndDate    time.Time     `json:"end_date" gorm:"not null"`
	Status     BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','accepted','declined','canceled')"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Payment  *Payment `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsActive reports whether the booking still occupies a slot in the
// pending/accepted pipeline.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusAccepted
}

// BookingCreate is the payload for booking a property.
type BookingCreate struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}
