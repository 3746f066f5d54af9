package models

import (
	"time"
)

type UserRole string

const (
	RoleTenant UserRole = "tenant"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"first_name" gorm:"size:100;not null"`
	LastName    string    `json:"last_name" gorm:"size:100;not null"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"size:20"`
	Password    string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role        UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'tenant';check:role IN ('tenant','admin')"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Bookings      []Booking      `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
	TenantLink    *TenantLink    `json:"tenant_link,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UpdateProfileRequest carries a partial profile update. Omitted and
// zero-value fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// Apply copies the set fields onto the user.
func (r *UpdateProfileRequest) Apply(u *User) {
	if r.FirstName != nil && *r.FirstName != "" {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil && *r.LastName != "" {
		u.LastName = *r.LastName
	}
	if r.PhoneNumber != nil && *r.PhoneNumber != "" {
		u.PhoneNumber = *r.PhoneNumber
	}
}
