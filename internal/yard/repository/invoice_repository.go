package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Invoice, int64, error) {
	var items []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if bastpID := filters["bastp_id"]; bastpID != "" {
		query = query.Where("bastp_id = ?", bastpID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("BASTP").
		Preload("BASTP.Vessel").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("BASTP").
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Invoice{}).Error
}

// ExistsForBASTP reports whether any active invoice references the BASTP.
func (r *InvoiceRepository) ExistsForBASTP(ctx context.Context, bastpID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("bastp_id = ?", bastpID).
		Count(&count).Error
	return count > 0, err
}

// GenerateCode issues the next invoice code INV-YYYYMM-XXXX.
func (r *InvoiceRepository) GenerateCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("INV-%s", time.Now().Format("200601"))
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&entity.Invoice{}).
		Where("code LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
