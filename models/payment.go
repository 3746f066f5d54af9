package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusDeclined PaymentStatus = "declined"
)

type PaymentType string

const (
	PaymentTypeRent    PaymentType = "rent"
	PaymentTypeDeposit PaymentType = "deposit"
)

// Payment is owned by a booking (one-to-zero-or-one). Its status only
// moves in response to booking lifecycle events or the admin payment
// endpoints.
type Payment struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"user_id" gorm:"not null;index"`
	BookingID uint          `json:"booking_id" gorm:"not null;uniqueIndex"`
	Amount    int           `json:"amount" gorm:"not null"`
	Type      PaymentType   `json:"type" gorm:"type:varchar(20);not null;default:'rent';check:type IN ('rent','deposit')"`
	Status    PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','paid','declined')"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
