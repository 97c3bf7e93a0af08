package service

import (
	"context"
	"errors"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// VerificationService records yard verification of work details. Verification
// is idempotent per work detail: verifying twice returns the existing record.
type VerificationService struct {
	repo       *repository.VerificationRepository
	detailRepo *repository.WorkDetailRepository
}

func NewVerificationService(repo *repository.VerificationRepository, detailRepo *repository.WorkDetailRepository) *VerificationService {
	return &VerificationService{repo: repo, detailRepo: detailRepo}
}

type VerifyWorkDetailRequest struct {
	Notes string `json:"notes"`
}

// Verify marks a work detail as verified. Only completed work may be verified.
func (s *VerificationService) Verify(ctx context.Context, userID, workDetailID string, req *VerifyWorkDetailRequest) (*entity.WorkVerification, error) {
	detail, err := s.detailRepo.FindByID(ctx, workDetailID)
	if err != nil {
		return nil, err
	}
	if detail.DeriveStatus() != entity.WorkStatusCompleted {
		return nil, &ValidationError{Problems: []string{"only completed work details can be verified"}}
	}

	existing, err := s.repo.FindByWorkDetail(ctx, workDetailID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	v := &entity.WorkVerification{
		ID:           uuid.New().String()[:32],
		WorkDetailID: workDetailID,
		VerifiedBy:   userID,
		VerifiedAt:   time.Now(),
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VerificationService) Get(ctx context.Context, workDetailID string) (*entity.WorkVerification, error) {
	return s.repo.FindByWorkDetail(ctx, workDetailID)
}

// Revoke removes the verification of a work detail.
func (s *VerificationService) Revoke(ctx context.Context, workDetailID string) error {
	v, err := s.repo.FindByWorkDetail(ctx, workDetailID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, v.ID)
}
