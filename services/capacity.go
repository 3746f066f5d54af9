package services

import (
	"reservation-server/models"
)

// CapacityPolicy decides whether a property can take one more occupant.
// The deployment runs exactly one policy, selected by OCCUPANCY_MODE.
// The occupied count is supplied by the caller: tenant links plus, on
// the booking path, pending bookings holding a slot.
type CapacityPolicy interface {
	// Check returns a conflict error when occupied has reached the
	// property's limit.
	Check(property *models.Property, occupied int) error
	// Limit is the number of occupant slots the policy grants.
	Limit(property *models.Property) int
}

// CountedCapacity bounds a property by its max_occupancy slots.
type CountedCapacity struct{}

func (CountedCapacity) Check(property *models.Property, occupied int) error {
	if occupied >= property.MaxOccupancy {
		return ConflictError("Property is full")
	}
	return nil
}

func (CountedCapacity) Limit(property *models.Property) int {
	return property.MaxOccupancy
}

// ExclusiveCapacity allows a single occupant regardless of
// max_occupancy.
type ExclusiveCapacity struct{}

func (ExclusiveCapacity) Check(property *models.Property, occupied int) error {
	if occupied >= 1 {
		return ConflictError("Property is taken")
	}
	return nil
}

func (ExclusiveCapacity) Limit(property *models.Property) int {
	return 1
}

// CapacityPolicyFromMode maps a configured occupancy mode onto a
// policy. Unknown modes fall back to counted.
func CapacityPolicyFromMode(mode string) CapacityPolicy {
	if mode == "exclusive" {
		return ExclusiveCapacity{}
	}
	return CountedCapacity{}
}
