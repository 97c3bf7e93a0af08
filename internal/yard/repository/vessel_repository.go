package repository

import (
	"context"
	"errors"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type VesselRepository struct {
	db *gorm.DB
}

func NewVesselRepository(db *gorm.DB) *VesselRepository {
	return &VesselRepository{db: db}
}

// FindAll lists vessels with pagination and optional name/type filters.
func (r *VesselRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vessel, int64, error) {
	var items []entity.Vessel
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Vessel{})

	if q := filters["q"]; q != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if vtype := filters["type"]; vtype != "" {
		query = query.Where("type = ?", vtype)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *VesselRepository) FindByID(ctx context.Context, id string) (*entity.Vessel, error) {
	var v entity.Vessel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VesselRepository) Create(ctx context.Context, v *entity.Vessel) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VesselRepository) Update(ctx context.Context, v *entity.Vessel) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// Delete soft-deletes a vessel. Rows stay in place with deleted_at set.
func (r *VesselRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Vessel{}).Error
}
