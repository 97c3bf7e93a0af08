package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceTypeCacheKey = "shipyard:service_types"
	serviceTypeCacheTTL = 10 * time.Minute
)

// ReferenceService serves slow-changing reference data. Service types are
// cached in Redis; any write invalidates the cache. Cache failures degrade
// to the database, never to an error.
type ReferenceService struct {
	repo   *repository.ServiceTypeRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewReferenceService(repo *repository.ServiceTypeRepository, rdb *redis.Client, logger *zap.Logger) *ReferenceService {
	return &ReferenceService{repo: repo, rdb: rdb, logger: logger}
}

func (s *ReferenceService) ListServiceTypes(ctx context.Context) ([]entity.ServiceType, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, serviceTypeCacheKey).Result()
		if err == nil {
			var items []entity.ServiceType
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Service type cache read failed", zap.Error(err))
		}
	}

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, serviceTypeCacheKey, data, serviceTypeCacheTTL).Err(); err != nil {
				s.logger.Warn("Service type cache write failed", zap.Error(err))
			}
		}
	}
	return items, nil
}

type ServiceTypeRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (s *ReferenceService) CreateServiceType(ctx context.Context, req *ServiceTypeRequest) (*entity.ServiceType, error) {
	st := &entity.ServiceType{
		ID:   uuid.New().String()[:32],
		Code: req.Code,
		Name: req.Name,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return st, nil
}

func (s *ReferenceService) UpdateServiceType(ctx context.Context, id string, req *ServiceTypeRequest) (*entity.ServiceType, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Code = req.Code
	st.Name = req.Name
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return st, nil
}

func (s *ReferenceService) DeleteServiceType(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ReferenceService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, serviceTypeCacheKey).Err(); err != nil {
		s.logger.Warn("Service type cache invalidation failed", zap.Error(err))
	}
}
