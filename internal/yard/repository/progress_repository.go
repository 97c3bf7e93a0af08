package repository

import (
	"context"
	"errors"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ListByWorkDetail returns all non-deleted reports for one work detail,
// oldest first.
func (r *ProgressRepository) ListByWorkDetail(ctx context.Context, workDetailID string) ([]entity.ProgressReport, error) {
	var items []entity.ProgressReport
	err := r.db.WithContext(ctx).
		Where("work_detail_id = ?", workDetailID).
		Order("report_date ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *ProgressRepository) FindByID(ctx context.Context, id string) (*entity.ProgressReport, error) {
	var p entity.ProgressReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create appends a report. Reports are never updated afterwards.
func (r *ProgressRepository) Create(ctx context.Context, p *entity.ProgressReport) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProgressRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ProgressReport{}).Error
}
