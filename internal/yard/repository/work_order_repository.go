package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// FindAll lists work orders with the vessel preloaded.
func (r *WorkOrderRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.WorkOrder, int64, error) {
	var items []entity.WorkOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.WorkOrder{})

	if vesselID := filters["vessel_id"]; vesselID != "" {
		query = query.Where("vessel_id = ?", vesselID)
	}
	if customer := filters["customer"]; customer != "" {
		query = query.Where("customer ILIKE ?", "%"+customer+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Vessel").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Vessel").
		Preload("WorkDetails").
		Where("id = ?", id).
		First(&wo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderRepository) Create(ctx context.Context, wo *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

func (r *WorkOrderRepository) Update(ctx context.Context, wo *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Save(wo).Error
}

func (r *WorkOrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.WorkOrder{}).Error
}

// GenerateCode issues the next work order code WO-YYYYMM-XXXX.
func (r *WorkOrderRepository) GenerateCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("WO-%s", time.Now().Format("200601"))
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&entity.WorkOrder{}).
		Where("code LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
