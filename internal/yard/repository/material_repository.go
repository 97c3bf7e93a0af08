package repository

import (
	"context"
	"errors"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Material, int64, error) {
	var items []entity.Material
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Material{})

	if q := filters["q"]; q != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("code ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *entity.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) Update(ctx context.Context, m *entity.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Material{}).Error
}

// === Usage rows ===

func (r *MaterialRepository) ListUsageByWorkDetail(ctx context.Context, workDetailID string) ([]entity.MaterialUsage, error) {
	var items []entity.MaterialUsage
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("work_detail_id = ?", workDetailID).
		Order("used_at ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *MaterialRepository) FindUsageByID(ctx context.Context, id string) (*entity.MaterialUsage, error) {
	var u entity.MaterialUsage
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MaterialRepository) CreateUsage(ctx context.Context, u *entity.MaterialUsage) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *MaterialRepository) UpdateUsage(ctx context.Context, u *entity.MaterialUsage) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *MaterialRepository) DeleteUsage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.MaterialUsage{}).Error
}
