package repository

import (
	"context"
	"testing"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/testutil"
	"github.com/google/uuid"
)

// The partial unique index on active links backs the one-BASTP-per-detail
// rule at the database level, so two concurrent link requests cannot both
// succeed even when each passed the service-layer existence check.
func TestCreateLinkRejectsSecondActiveLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBASTPRepository(db)
	ctx := context.Background()

	workDetailID := uuid.New().String()[:32]

	first := &entity.BASTPWorkDetail{
		ID:           uuid.New().String()[:32],
		BASTPID:      uuid.New().String()[:32],
		WorkDetailID: workDetailID,
	}
	if err := repo.CreateLink(ctx, first); err != nil {
		t.Fatalf("Failed to create first link: %v", err)
	}

	second := &entity.BASTPWorkDetail{
		ID:           uuid.New().String()[:32],
		BASTPID:      uuid.New().String()[:32],
		WorkDetailID: workDetailID,
	}
	if err := repo.CreateLink(ctx, second); err == nil {
		t.Fatal("second active link for the same work detail must be rejected")
	}

	// A soft-deleted link no longer counts as active.
	if err := repo.DeleteLink(ctx, first.ID); err != nil {
		t.Fatalf("Failed to delete first link: %v", err)
	}
	if err := repo.CreateLink(ctx, second); err != nil {
		t.Fatalf("link after unlink should succeed: %v", err)
	}
}
