package repository

import (
	"context"
	"errors"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type WorkDetailRepository struct {
	db *gorm.DB
}

func NewWorkDetailRepository(db *gorm.DB) *WorkDetailRepository {
	return &WorkDetailRepository{db: db}
}

// FindAll lists work details with the owning work order and vessel preloaded.
func (r *WorkDetailRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.WorkDetail, int64, error) {
	var items []entity.WorkDetail
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.WorkDetail{})

	if workOrderID := filters["work_order_id"]; workOrderID != "" {
		query = query.Where("work_order_id = ?", workOrderID)
	}
	if workType := filters["work_type"]; workType != "" {
		query = query.Where("work_type = ?", workType)
	}
	if scope := filters["work_scope"]; scope != "" {
		query = query.Where("work_scope = ?", scope)
	}
	if q := filters["q"]; q != "" {
		query = query.Where("description ILIKE ?", "%"+q+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("WorkOrder").
		Preload("WorkOrder.Vessel").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *WorkDetailRepository) FindByID(ctx context.Context, id string) (*entity.WorkDetail, error) {
	var d entity.WorkDetail
	err := r.db.WithContext(ctx).
		Preload("WorkOrder").
		Preload("WorkOrder.Vessel").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *WorkDetailRepository) Create(ctx context.Context, d *entity.WorkDetail) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *WorkDetailRepository) Update(ctx context.Context, d *entity.WorkDetail) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *WorkDetailRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.WorkDetail{}).Error
}
