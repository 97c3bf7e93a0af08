package main

import (
	"testing"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/testutil"
	"go.uber.org/zap"
)

func TestSeedServiceTypes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seedServiceTypes(db, zap.NewNop())

	var items []entity.ServiceType
	if err := db.Order("code ASC").Find(&items).Error; err != nil {
		t.Fatalf("Failed to list service types: %v", err)
	}
	if len(items) != 7 {
		t.Fatalf("seeded %d service types, want 7", len(items))
	}
	for _, st := range items {
		if len(st.ID) != 32 {
			t.Errorf("service type %s id %q: length %d, want 32", st.Code, st.ID, len(st.ID))
		}
	}

	// Re-running keeps existing rows, no duplicates.
	seedServiceTypes(db, zap.NewNop())
	var count int64
	if err := db.Model(&entity.ServiceType{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count service types: %v", err)
	}
	if count != 7 {
		t.Errorf("re-seed produced %d rows, want 7", count)
	}
}
