package repositories

import (
	"testing"

	"reservation-server/models"
)

func TestSortClause(t *testing.T) {
	cases := []struct {
		name    string
		filters models.PropertyFilters
		want    string
	}{
		{"default newest first", models.PropertyFilters{}, "created_at DESC"},
		{"explicit order without sort key", models.PropertyFilters{Order: "asc"}, "created_at ASC"},
		{"sort key defaults ascending", models.PropertyFilters{Sort: "price"}, "price ASC"},
		{"sort key descending", models.PropertyFilters{Sort: "price", Order: "desc"}, "price DESC"},
		{"case insensitive order", models.PropertyFilters{Sort: "name", Order: "DESC"}, "name DESC"},
		{"unknown sort key ignored", models.PropertyFilters{Sort: "rating", Order: "asc"}, "created_at ASC"},
		{"occupancy sorts on the subquery", models.PropertyFilters{Sort: "occupancy"}, occupancyExpr + " ASC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sortClause(tc.filters); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
