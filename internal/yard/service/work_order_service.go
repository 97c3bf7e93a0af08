package service

import (
	"context"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// WorkOrderService owns work orders. Codes are issued server-side.
type WorkOrderService struct {
	repo       *repository.WorkOrderRepository
	vesselRepo *repository.VesselRepository
}

func NewWorkOrderService(repo *repository.WorkOrderRepository, vesselRepo *repository.VesselRepository) *WorkOrderService {
	return &WorkOrderService{repo: repo, vesselRepo: vesselRepo}
}

type CreateWorkOrderRequest struct {
	VesselID         string  `json:"vessel_id" binding:"required"`
	Customer         string  `json:"customer"`
	Description      string  `json:"description"`
	PlannedStartDate *string `json:"planned_start_date"`
	PlannedCloseDate *string `json:"planned_close_date"`
}

func (s *WorkOrderService) Create(ctx context.Context, userID string, req *CreateWorkOrderRequest) (*entity.WorkOrder, error) {
	if _, err := s.vesselRepo.FindByID(ctx, req.VesselID); err != nil {
		return nil, err
	}

	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	wo := &entity.WorkOrder{
		ID:          uuid.New().String()[:32],
		Code:        code,
		VesselID:    req.VesselID,
		Customer:    req.Customer,
		Description: req.Description,
		CreatedBy:   userID,
	}
	if err := applyWorkOrderDates(wo, req.PlannedStartDate, req.PlannedCloseDate); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, wo); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, wo.ID)
}

type UpdateWorkOrderRequest struct {
	Customer         *string `json:"customer"`
	Description      *string `json:"description"`
	PlannedStartDate *string `json:"planned_start_date"`
	PlannedCloseDate *string `json:"planned_close_date"`
}

func (s *WorkOrderService) Update(ctx context.Context, id string, req *UpdateWorkOrderRequest) (*entity.WorkOrder, error) {
	wo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Customer != nil {
		wo.Customer = *req.Customer
	}
	if req.Description != nil {
		wo.Description = *req.Description
	}
	if err := applyWorkOrderDates(wo, req.PlannedStartDate, req.PlannedCloseDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *WorkOrderService) Get(ctx context.Context, id string) (*entity.WorkOrder, error) {
	wo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range wo.WorkDetails {
		wo.WorkDetails[i].Status = wo.WorkDetails[i].DeriveStatus()
	}
	return wo, nil
}

func (s *WorkOrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.WorkOrder, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *WorkOrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func applyWorkOrderDates(wo *entity.WorkOrder, start, close *string) error {
	var problems []string
	if start != nil {
		t, ok := parseDate(*start)
		if !ok {
			problems = append(problems, "planned_start_date must be YYYY-MM-DD")
		} else {
			wo.PlannedStartDate = t
		}
	}
	if close != nil {
		t, ok := parseDate(*close)
		if !ok {
			problems = append(problems, "planned_close_date must be YYYY-MM-DD")
		} else {
			wo.PlannedCloseDate = t
		}
	}
	if wo.PlannedStartDate != nil && wo.PlannedCloseDate != nil && wo.PlannedCloseDate.Before(*wo.PlannedStartDate) {
		problems = append(problems, "planned_close_date must be on or after planned_start_date")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
