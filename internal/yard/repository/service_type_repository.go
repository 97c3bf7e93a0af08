package repository

import (
	"context"
	"errors"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type ServiceTypeRepository struct {
	db *gorm.DB
}

func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{db: db}
}

func (r *ServiceTypeRepository) ListAll(ctx context.Context) ([]entity.ServiceType, error) {
	var items []entity.ServiceType
	err := r.db.WithContext(ctx).Order("code ASC").Find(&items).Error
	return items, err
}

func (r *ServiceTypeRepository) FindByID(ctx context.Context, id string) (*entity.ServiceType, error) {
	var st entity.ServiceType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *ServiceTypeRepository) Create(ctx context.Context, st *entity.ServiceType) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *ServiceTypeRepository) Update(ctx context.Context, st *entity.ServiceType) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *ServiceTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ServiceType{}).Error
}
