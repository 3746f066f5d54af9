package services

import (
	"errors"
	"testing"

	"reservation-server/models"
)

func TestCountedCapacity(t *testing.T) {
	policy := CountedCapacity{}
	property := &models.Property{MaxOccupancy: 3}

	if policy.Limit(property) != 3 {
		t.Fatalf("expected limit 3, got %d", policy.Limit(property))
	}
	if err := policy.Check(property, 2); err != nil {
		t.Fatalf("expected room at 2/3, got %v", err)
	}

	err := policy.Check(property, 3)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict at 3/3, got %v", err)
	}
	if err.Error() != "Property is full" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestExclusiveCapacity(t *testing.T) {
	policy := ExclusiveCapacity{}
	property := &models.Property{MaxOccupancy: 5}

	if policy.Limit(property) != 1 {
		t.Fatalf("expected limit 1, got %d", policy.Limit(property))
	}
	if err := policy.Check(property, 0); err != nil {
		t.Fatalf("expected room when empty, got %v", err)
	}

	err := policy.Check(property, 1)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict at one occupant, got %v", err)
	}
	if err.Error() != "Property is taken" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCapacityPolicyFromMode(t *testing.T) {
	if _, ok := CapacityPolicyFromMode("exclusive").(ExclusiveCapacity); !ok {
		t.Fatal("exclusive mode should select ExclusiveCapacity")
	}
	if _, ok := CapacityPolicyFromMode("counted").(CountedCapacity); !ok {
		t.Fatal("counted mode should select CountedCapacity")
	}
	if _, ok := CapacityPolicyFromMode("").(CountedCapacity); !ok {
		t.Fatal("unknown mode should fall back to CountedCapacity")
	}
}
