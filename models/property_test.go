package models

import "testing"

func TestPropertyUpdateApply(t *testing.T) {
	property := Property{
		Name:         "Oak House",
		Address:      "12 Main St",
		City:         "Springfield",
		Type:         PropertyTypeStudio,
		Price:        950,
		MaxOccupancy: 2,
	}

	name := "Oak House Renovated"
	price := 1100
	update := PropertyUpdate{Name: &name, Price: &price}
	update.Apply(&property)

	if property.Name != "Oak House Renovated" {
		t.Fatalf("expected renamed property, got %q", property.Name)
	}
	if property.Price != 1100 {
		t.Fatalf("expected price 1100, got %d", property.Price)
	}
	if property.City != "Springfield" {
		t.Fatalf("omitted field changed: %q", property.City)
	}
}

func TestPropertyUpdateApplyIgnoresZeroValues(t *testing.T) {
	property := Property{
		Name:         "Oak House",
		Type:         PropertyTypeStudio,
		Price:        950,
		MaxOccupancy: 2,
	}

	empty := ""
	zero := 0
	invalidType := "castle"
	update := PropertyUpdate{Name: &empty, Price: &zero, MaxOccupancy: &zero, Type: &invalidType}
	update.Apply(&property)

	if property.Name != "Oak House" {
		t.Fatalf("empty name applied: %q", property.Name)
	}
	if property.Price != 950 {
		t.Fatalf("zero price applied: %d", property.Price)
	}
	if property.MaxOccupancy != 2 {
		t.Fatalf("zero max occupancy applied: %d", property.MaxOccupancy)
	}
	if property.Type != PropertyTypeStudio {
		t.Fatalf("invalid type applied: %q", property.Type)
	}
}

func TestCurrentOccupant(t *testing.T) {
	property := Property{MaxOccupancy: 3}
	if property.CurrentOccupant() != 0 {
		t.Fatalf("expected 0 occupants, got %d", property.CurrentOccupant())
	}
	property.Tenants = []TenantLink{{UserID: 1}, {UserID: 2}}
	if property.CurrentOccupant() != 2 {
		t.Fatalf("expected 2 occupants, got %d", property.CurrentOccupant())
	}
}
