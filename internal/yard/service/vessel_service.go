package service

import (
	"context"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// VesselService owns the vessel registry.
type VesselService struct {
	repo *repository.VesselRepository
}

func NewVesselService(repo *repository.VesselRepository) *VesselService {
	return &VesselService{repo: repo}
}

type VesselRequest struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type"`
	Owner string `json:"owner"`
	Notes string `json:"notes"`
}

func (s *VesselService) Create(ctx context.Context, req *VesselRequest) (*entity.Vessel, error) {
	v := &entity.Vessel{
		ID:    uuid.New().String()[:32],
		Code:  req.Code,
		Name:  req.Name,
		Type:  req.Type,
		Owner: req.Owner,
		Notes: req.Notes,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VesselService) Update(ctx context.Context, id string, req *VesselRequest) (*entity.Vessel, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Code = req.Code
	v.Name = req.Name
	v.Type = req.Type
	v.Owner = req.Owner
	v.Notes = req.Notes
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VesselService) Get(ctx context.Context, id string) (*entity.Vessel, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VesselService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vessel, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *VesselService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
