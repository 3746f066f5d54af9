package models

import (
	"time"
)

type PropertyType string

const (
	PropertyTypeOneBedroom PropertyType = "one_bedroom"
	PropertyTypeTwoBedroom PropertyType = "two_bedroom"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeHouse      PropertyType = "house"
)

// IsValidPropertyType reports whether t names a known property type.
func IsValidPropertyType(t string) bool {
	switch PropertyType(t) {
	case PropertyTypeOneBedroom, PropertyTypeTwoBedroom, PropertyTypeStudio, PropertyTypeHouse:
		return true
	default:
		return false
	}
}

type Property struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Description  string       `json:"description" gorm:"size:2000"`
	Address      string       `json:"address" gorm:"size:500;not null"`
	City         string       `json:"city" gorm:"size:100;not null"`
	State        string       `json:"state" gorm:"size:100;not null"`
	Zip          string       `json:"zip" gorm:"size:20;not null"`
	Type         PropertyType `json:"type" gorm:"type:varchar(20);not null;check:type IN ('one_bedroom','two_bedroom','studio','house')"`
	Price        int          `json:"price" gorm:"not null"`
	MaxOccupancy int          `json:"max_occupancy" gorm:"not null;default:1"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Images  []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Reviews []Review        `json:"reviews" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Tenants []TenantLink    `json:"tenants" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

// CurrentOccupant is the live occupancy projection, derived from the
// loaded tenant links rather than a stored counter.
func (p *Property) CurrentOccupant() int {
	return len(p.Tenants)
}

type PropertyImage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;index"`
	URL        string    `json:"url" gorm:"size:500;not null"`
	PublicID   string    `json:"-" gorm:"size:255"` // object-storage handle, not client-facing
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment    string    `json:"comment" gorm:"size:2000"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Review) TableName() string {
	return "reviews"
}

// TenantLink materializes the assignment of a user to a property. The
// unique index on UserID enforces one property per tenant at the store
// layer, independently of the controller's own serialization.
type TenantLink struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (TenantLink) TableName() string {
	return "tenant_links"
}

// PropertyCreate is the admin payload for creating a property.
type PropertyCreate struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Address      string `json:"address" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Zip          string `json:"zip" binding:"required"`
	Type         string `json:"type" binding:"required,oneof=one_bedroom two_bedroom studio house"`
	Price        int    `json:"price" binding:"required,gt=0"`
	MaxOccupancy int    `json:"max_occupancy" binding:"required,gt=0"`
}

// PropertyUpdate carries a partial property update. Omitted fields arrive
// nil and are not applied; a field explicitly set to its zero value is
// also treated as unset. Callers that need to store a zero must be aware
// of this convention.
type PropertyUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	Type         *string `json:"type"`
	Price        *int    `json:"price"`
	MaxOccupancy *int    `json:"max_occupancy"`
}

// Apply copies the set fields onto the property.
func (u *PropertyUpdate) Apply(p *Property) {
	if u.Name != nil && *u.Name != "" {
		p.Name = *u.Name
	}
	if u.Description != nil && *u.Description != "" {
		p.Description = *u.Description
	}
	if u.Address != nil && *u.Address != "" {
		p.Address = *u.Address
	}
	if u.City != nil && *u.City != "" {
		p.City = *u.City
	}
	if u.State != nil && *u.State != "" {
		p.State = *u.State
	}
	if u.Zip != nil && *u.Zip != "" {
		p.Zip = *u.Zip
	}
	if u.Type != nil && IsValidPropertyType(*u.Type) {
		p.Type = PropertyType(*u.Type)
	}
	if u.Price != nil && *u.Price != 0 {
		p.Price = *u.Price
	}
	if u.MaxOccupancy != nil && *u.MaxOccupancy != 0 {
		p.MaxOccupancy = *u.MaxOccupancy
	}
}

// ReviewCreate is the payload for adding a review.
type ReviewCreate struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ReviewUpdate carries a partial review update.
type ReviewUpdate struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// Apply copies the set fields onto the review.
func (u *ReviewUpdate) Apply(r *Review) {
	if u.Rating != nil && *u.Rating >= 1 && *u.Rating <= 5 {
		r.Rating = *u.Rating
	}
	if u.Comment != nil && *u.Comment != "" {
		r.Comment = *u.Comment
	}
}

// PropertyFilters are the supported listing query parameters. Unknown
// sort keys and property types are ignored rather than rejected.
type PropertyFilters struct {
	Keyword      string `form:"keyword"`
	Type         string `form:"type"`
	Price        int    `form:"price"`
	MinPrice     int    `form:"min_price"`
	MaxPrice     int    `form:"max_price"`
	Occupancy    int    `form:"occupancy"`
	MinOccupancy int    `form:"min_occupancy"`
	MaxOccupancy int    `form:"max_occupancy"`
	Sort         string `form:"sort"`
	Order        string `form:"order"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}
