package service

import (
	"context"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// MaterialService owns yard stock reference data and per-work-detail usage.
type MaterialService struct {
	repo       *repository.MaterialRepository
	detailRepo *repository.WorkDetailRepository
}

func NewMaterialService(repo *repository.MaterialRepository, detailRepo *repository.WorkDetailRepository) *MaterialService {
	return &MaterialService{repo: repo, detailRepo: detailRepo}
}

type MaterialRequest struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Unit  string `json:"unit"`
	Notes string `json:"notes"`
}

func (s *MaterialService) Create(ctx context.Context, req *MaterialRequest) (*entity.Material, error) {
	m := &entity.Material{
		ID:    uuid.New().String()[:32],
		Code:  req.Code,
		Name:  req.Name,
		Unit:  req.Unit,
		Notes: req.Notes,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MaterialService) Update(ctx context.Context, id string, req *MaterialRequest) (*entity.Material, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Code = req.Code
	m.Name = req.Name
	m.Unit = req.Unit
	m.Notes = req.Notes
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MaterialService) Get(ctx context.Context, id string) (*entity.Material, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MaterialService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Material, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// MaterialUsageRequest records consumption against a work detail.
type MaterialUsageRequest struct {
	MaterialID string   `json:"material_id" binding:"required"`
	Quantity   *float64 `json:"quantity" binding:"required"`
	Unit       string   `json:"unit"`
	UsedAt     *string  `json:"used_at"`
	Notes      string   `json:"notes"`
}

func (s *MaterialService) AddUsage(ctx context.Context, userID, workDetailID string, req *MaterialUsageRequest) (*entity.MaterialUsage, error) {
	if _, err := s.detailRepo.FindByID(ctx, workDetailID); err != nil {
		return nil, err
	}
	material, err := s.repo.FindByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}

	var problems []string
	if req.Quantity == nil || *req.Quantity <= 0 {
		problems = append(problems, "quantity must be greater than zero")
	}
	u := &entity.MaterialUsage{
		ID:           uuid.New().String()[:32],
		WorkDetailID: workDetailID,
		MaterialID:   req.MaterialID,
		Unit:         req.Unit,
		Notes:        req.Notes,
		RecordedBy:   userID,
	}
	if u.Unit == "" {
		u.Unit = material.Unit
	}
	if req.UsedAt != nil {
		t, ok := parseDate(*req.UsedAt)
		if !ok {
			problems = append(problems, "used_at must be YYYY-MM-DD")
		} else {
			u.UsedAt = t
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	u.Quantity = *req.Quantity

	if err := s.repo.CreateUsage(ctx, u); err != nil {
		return nil, err
	}
	return s.repo.FindUsageByID(ctx, u.ID)
}

func (s *MaterialService) ListUsage(ctx context.Context, workDetailID string) ([]entity.MaterialUsage, error) {
	if _, err := s.detailRepo.FindByID(ctx, workDetailID); err != nil {
		return nil, err
	}
	return s.repo.ListUsageByWorkDetail(ctx, workDetailID)
}

func (s *MaterialService) UpdateUsage(ctx context.Context, id string, req *MaterialUsageRequest) (*entity.MaterialUsage, error) {
	u, err := s.repo.FindUsageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var problems []string
	if req.MaterialID != "" && req.MaterialID != u.MaterialID {
		if _, err := s.repo.FindByID(ctx, req.MaterialID); err != nil {
			return nil, err
		}
		u.MaterialID = req.MaterialID
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			problems = append(problems, "quantity must be greater than zero")
		} else {
			u.Quantity = *req.Quantity
		}
	}
	if req.Unit != "" {
		u.Unit = req.Unit
	}
	if req.UsedAt != nil {
		t, ok := parseDate(*req.UsedAt)
		if !ok {
			problems = append(problems, "used_at must be YYYY-MM-DD")
		} else {
			u.UsedAt = t
		}
	}
	if req.Notes != "" {
		u.Notes = req.Notes
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if err := s.repo.UpdateUsage(ctx, u); err != nil {
		return nil, err
	}
	return s.repo.FindUsageByID(ctx, u.ID)
}

func (s *MaterialService) DeleteUsage(ctx context.Context, id string) error {
	if _, err := s.repo.FindUsageByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUsage(ctx, id)
}
