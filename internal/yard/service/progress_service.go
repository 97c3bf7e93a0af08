package service

import (
	"context"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// ProgressService owns the append-only progress reports of work details.
type ProgressService struct {
	repo       *repository.ProgressRepository
	detailRepo *repository.WorkDetailRepository
}

func NewProgressService(repo *repository.ProgressRepository, detailRepo *repository.WorkDetailRepository) *ProgressService {
	return &ProgressService{repo: repo, detailRepo: detailRepo}
}

// AddProgressRequest is one appended progress observation.
type AddProgressRequest struct {
	Percentage *float64 `json:"percentage" binding:"required"`
	ReportDate string   `json:"report_date" binding:"required"`
	Notes      string   `json:"notes"`
}

// Add appends a report for a work detail. Reports are immutable afterwards.
func (s *ProgressService) Add(ctx context.Context, userID, workDetailID string, req *AddProgressRequest) (*entity.ProgressReport, error) {
	var problems []string
	if req.Percentage == nil || *req.Percentage < 0 || *req.Percentage > 100 {
		problems = append(problems, "percentage must be between 0 and 100")
	}
	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		problems = append(problems, "report_date must be YYYY-MM-DD")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if _, err := s.detailRepo.FindByID(ctx, workDetailID); err != nil {
		return nil, err
	}

	report := &entity.ProgressReport{
		ID:           uuid.New().String()[:32],
		WorkDetailID: workDetailID,
		Percentage:   *req.Percentage,
		ReportDate:   reportDate,
		ReportedBy:   userID,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns all reports for a work detail, oldest first.
func (s *ProgressService) List(ctx context.Context, workDetailID string) ([]entity.ProgressReport, error) {
	if _, err := s.detailRepo.FindByID(ctx, workDetailID); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkDetail(ctx, workDetailID)
}

// Summary reduces the reports to the current progress of a work detail.
func (s *ProgressService) Summary(ctx context.Context, workDetailID string) (entity.ProgressSummary, error) {
	reports, err := s.repo.ListByWorkDetail(ctx, workDetailID)
	if err != nil {
		return entity.ProgressSummary{}, err
	}
	return entity.CurrentProgress(reports), nil
}

// Delete soft-deletes one report; the row is retained for audit.
func (s *ProgressService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
