package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// ErrForbidden marks an operation the acting role may not perform.
var ErrForbidden = errors.New("role is not allowed to perform this operation")

// ValidationError aggregates every failed input rule so the caller can show
// the full list at once. The datastore is never touched when it is returned.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// WorkDetailService owns the role-gated work detail lifecycle.
type WorkDetailService struct {
	repo    *repository.WorkDetailRepository
	woRepo  *repository.WorkOrderRepository
	storage *StorageService
}

func NewWorkDetailService(repo *repository.WorkDetailRepository, woRepo *repository.WorkOrderRepository, storage *StorageService) *WorkDetailService {
	return &WorkDetailService{repo: repo, woRepo: woRepo, storage: storage}
}

// WorkDetailRequest carries both field sets; which ones are applied depends
// on the acting role. Pointer fields distinguish "absent" from zero.
type WorkDetailRequest struct {
	// Planning fields (PPIC/MASTER).
	Description       *string  `json:"description"`
	Location          *string  `json:"location"`
	WorkLocation      *string  `json:"work_location"`
	WorkScope         *string  `json:"work_scope"`
	WorkType          *string  `json:"work_type"`
	Quantity          *float64 `json:"quantity"`
	UOM               *string  `json:"uom"`
	IsAdditional      *bool    `json:"is_additional"`
	PlannedStartDate  *string  `json:"planned_start_date"`
	TargetCloseDate   *string  `json:"target_close_date"`
	PeriodCloseTarget *string  `json:"period_close_target"`

	// Execution fields (PRODUCTION/MASTER, legacy PPIC).
	PIC             *string `json:"pic"`
	SPKNumber       *string `json:"spk_number"`
	SPKKNumber      *string `json:"spkk_number"`
	ActualStartDate *string `json:"actual_start_date"`
	ActualCloseDate *string `json:"actual_close_date"`
	Notes           *string `json:"notes"`
}

// CreateWorkDetailRequest adds the owning work order to the field payload.
type CreateWorkDetailRequest struct {
	WorkOrderID string `json:"work_order_id" binding:"required"`
	WorkDetailRequest
}

// Create inserts a new work detail. Only PPIC and MASTER may create; any
// other role is denied outright, not rendered read-only.
func (s *WorkDetailService) Create(ctx context.Context, userID string, role entity.Role, req *CreateWorkDetailRequest) (*entity.WorkDetail, error) {
	if !entity.CanCreateWorkDetail(role) {
		return nil, ErrForbidden
	}

	if _, err := s.woRepo.FindByID(ctx, req.WorkOrderID); err != nil {
		return nil, err
	}

	detail := &entity.WorkDetail{
		ID:          uuid.New().String()[:32],
		WorkOrderID: req.WorkOrderID,
		CreatedBy:   userID,
	}
	if err := s.apply(detail, role, &req.WorkDetailRequest); err != nil {
		return nil, err
	}
	if err := s.validate(detail, role); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, detail); err != nil {
		return nil, err
	}
	return s.Get(ctx, detail.ID)
}

// Update applies the fields the acting role owns and silently retains
// everything else, so a PRODUCTION edit can never disturb PPIC-set values.
func (s *WorkDetailService) Update(ctx context.Context, id string, role entity.Role, req *WorkDetailRequest) (*entity.WorkDetail, error) {
	if role == entity.RoleNone {
		return nil, ErrForbidden
	}

	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(detail, role, req); err != nil {
		return nil, err
	}
	if err := s.validate(detail, role); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, detail); err != nil {
		return nil, err
	}
	detail.Status = detail.DeriveStatus()
	return detail, nil
}

func (s *WorkDetailService) Get(ctx context.Context, id string) (*entity.WorkDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Status = detail.DeriveStatus()
	return detail, nil
}

func (s *WorkDetailService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.WorkDetail, int64, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Status = items[i].DeriveStatus()
	}
	return items, total, nil
}

func (s *WorkDetailService) Delete(ctx context.Context, id string, role entity.Role) error {
	if !entity.WritesPlanning(role) {
		return ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// UploadWorkPermit stores a PTW document and replaces any previous one.
// Deleting the superseded file is best-effort.
func (s *WorkDetailService) UploadWorkPermit(ctx context.Context, id string, role entity.Role, reader io.Reader, size int64, contentType string) (*entity.WorkDetail, error) {
	if !entity.WritesExecution(role) {
		return nil, ErrForbidden
	}

	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.UploadDocument(ctx, "work-permits", reader, size, contentType)
	if err != nil {
		return nil, err
	}

	previous := detail.WorkPermitPath
	detail.WorkPermitPath = path
	if err := s.repo.Update(ctx, detail); err != nil {
		s.storage.RemoveQuietly(ctx, path)
		return nil, err
	}
	if previous != "" {
		s.storage.RemoveQuietly(ctx, previous)
	}
	detail.Status = detail.DeriveStatus()
	return detail, nil
}

// WorkPermitURL returns a time-limited link to the stored PTW document.
func (s *WorkDetailService) WorkPermitURL(ctx context.Context, id string) (string, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if detail.WorkPermitPath == "" {
		return "", repository.ErrNotFound
	}
	return s.storage.PresignedURL(ctx, detail.WorkPermitPath)
}

// apply copies request fields onto the entity, restricted to the acting
// role's write set. Fields outside the set are ignored, never rejected.
func (s *WorkDetailService) apply(d *entity.WorkDetail, role entity.Role, req *WorkDetailRequest) error {
	var problems []string

	if entity.WritesPlanning(role) {
		if req.Description != nil {
			d.Description = *req.Description
		}
		if req.Location != nil {
			d.Location = *req.Location
		}
		if req.WorkLocation != nil {
			d.WorkLocation = *req.WorkLocation
		}
		if req.WorkScope != nil {
			d.WorkScope = *req.WorkScope
		}
		if req.WorkType != nil {
			d.WorkType = *req.WorkType
		}
		if req.Quantity != nil {
			d.Quantity = *req.Quantity
		}
		if req.UOM != nil {
			d.UOM = *req.UOM
		}
		if req.IsAdditional != nil {
			d.IsAdditional = *req.IsAdditional
		}
		if req.PlannedStartDate != nil {
			t, ok := parseDate(*req.PlannedStartDate)
			if !ok {
				problems = append(problems, "planned_start_date must be YYYY-MM-DD")
			} else {
				d.PlannedStartDate = t
			}
		}
		if req.TargetCloseDate != nil {
			t, ok := parseDate(*req.TargetCloseDate)
			if !ok {
				problems = append(problems, "target_close_date must be YYYY-MM-DD")
			} else {
				d.TargetCloseDate = t
			}
		}
		if req.PeriodCloseTarget != nil {
			d.PeriodCloseTarget = *req.PeriodCloseTarget
		}
	}

	if entity.WritesExecution(role) {
		if req.PIC != nil {
			d.PIC = *req.PIC
		}
		if req.SPKNumber != nil {
			d.SPKNumber = *req.SPKNumber
		}
		if req.SPKKNumber != nil {
			d.SPKKNumber = *req.SPKKNumber
		}
		if req.ActualStartDate != nil {
			t, ok := parseDate(*req.ActualStartDate)
			if !ok {
				problems = append(problems, "actual_start_date must be YYYY-MM-DD")
			} else {
				d.ActualStartDate = t
			}
		}
		if req.ActualCloseDate != nil {
			t, ok := parseDate(*req.ActualCloseDate)
			if !ok {
				problems = append(problems, "actual_close_date must be YYYY-MM-DD")
			} else {
				d.ActualCloseDate = t
			}
		}
		if req.Notes != nil {
			d.Notes = *req.Notes
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// validate runs the role-scoped rule sets against the merged entity state.
// MASTER is validated against the union of both sets.
func (s *WorkDetailService) validate(d *entity.WorkDetail, role entity.Role) error {
	var problems []string

	if entity.WritesPlanning(role) {
		if d.Description == "" {
			problems = append(problems, "description is required")
		}
		if d.WorkScope == "" {
			problems = append(problems, "work_scope is required")
		}
		if d.WorkType == "" {
			problems = append(problems, "work_type is required")
		}
		if d.Quantity <= 0 {
			problems = append(problems, "quantity must be greater than zero")
		}
		if d.UOM == "" {
			problems = append(problems, "uom is required")
		}
		if d.PlannedStartDate == nil {
			problems = append(problems, "planned_start_date is required")
		}
		if d.TargetCloseDate == nil {
			problems = append(problems, "target_close_date is required")
		}
	}

	// Cross-field date order is role-independent. Same-day close is allowed
	// on both the create and edit paths.
	if d.PlannedStartDate != nil && d.TargetCloseDate != nil && d.TargetCloseDate.Before(*d.PlannedStartDate) {
		problems = append(problems, "target_close_date must be on or after planned_start_date")
	}
	if d.ActualCloseDate != nil {
		if d.ActualStartDate == nil {
			problems = append(problems, "actual_close_date requires actual_start_date")
		} else if d.ActualCloseDate.Before(*d.ActualStartDate) {
			problems = append(problems, "actual_close_date must be on or after actual_start_date")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
