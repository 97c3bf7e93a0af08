package repository

import (
	"context"
	"errors"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) FindByWorkDetail(ctx context.Context, workDetailID string) (*entity.WorkVerification, error) {
	var v entity.WorkVerification
	err := r.db.WithContext(ctx).
		Where("work_detail_id = ?", workDetailID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// VerifiedSet returns which of the given work details have a verification
// record, as a membership map.
func (r *VerificationRepository) VerifiedSet(ctx context.Context, workDetailIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(workDetailIDs))
	if len(workDetailIDs) == 0 {
		return set, nil
	}

	var items []entity.WorkVerification
	err := r.db.WithContext(ctx).
		Where("work_detail_id IN ?", workDetailIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		set[v.WorkDetailID] = true
	}
	return set, nil
}

func (r *VerificationRepository) Create(ctx context.Context, v *entity.WorkVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// Delete removes the record for good. The unique index on work_detail_id
// must not keep a tombstone that blocks re-verification.
func (r *VerificationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&entity.WorkVerification{}).Error
}
