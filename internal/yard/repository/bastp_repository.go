package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"gorm.io/gorm"
)

type BASTPRepository struct {
	db *gorm.DB
}

func NewBASTPRepository(db *gorm.DB) *BASTPRepository {
	return &BASTPRepository{db: db}
}

// FindAll lists BASTPs with vessel, linked details and service lines preloaded.
func (r *BASTPRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BASTP, int64, error) {
	var items []entity.BASTP
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BASTP{})

	if vesselID := filters["vessel_id"]; vesselID != "" {
		query = query.Where("vessel_id = ?", vesselID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Vessel").
		Preload("WorkDetailLinks").
		Preload("WorkDetailLinks.WorkDetail").
		Preload("GeneralServices").
		Preload("GeneralServices.ServiceType").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *BASTPRepository) FindByID(ctx context.Context, id string) (*entity.BASTP, error) {
	var b entity.BASTP
	err := r.db.WithContext(ctx).
		Preload("Vessel").
		Preload("WorkDetailLinks").
		Preload("WorkDetailLinks.WorkDetail").
		Preload("GeneralServices").
		Preload("GeneralServices.ServiceType").
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BASTPRepository) Create(ctx context.Context, b *entity.BASTP) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BASTPRepository) Update(ctx context.Context, b *entity.BASTP) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BASTPRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BASTP{}).Error
}

// UpdateStatus performs the single state write of a reconciliation step.
func (r *BASTPRepository) UpdateStatus(ctx context.Context, id string, status entity.BASTPStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.BASTP{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateSignedDocument sets or clears the signed document storage path.
func (r *BASTPRepository) UpdateSignedDocument(ctx context.Context, id string, path *string) error {
	return r.db.WithContext(ctx).
		Model(&entity.BASTP{}).
		Where("id = ?", id).
		Update("signed_document_path", path).Error
}

// GenerateCode issues the next BASTP code BASTP-YYYYMM-XXXX.
func (r *BASTPRepository) GenerateCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("BASTP-%s", time.Now().Format("200601"))
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&entity.BASTP{}).
		Where("code LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}

// FindActiveLinkByWorkDetail returns the active BASTP link for a work detail,
// or ErrNotFound. Enforces the at-most-one-active-BASTP rule.
func (r *BASTPRepository) FindActiveLinkByWorkDetail(ctx context.Context, workDetailID string) (*entity.BASTPWorkDetail, error) {
	var link entity.BASTPWorkDetail
	err := r.db.WithContext(ctx).
		Where("work_detail_id = ?", workDetailID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *BASTPRepository) CreateLink(ctx context.Context, link *entity.BASTPWorkDetail) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *BASTPRepository) DeleteLink(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BASTPWorkDetail{}).Error
}

// === General service lines ===

func (r *BASTPRepository) CreateGeneralService(ctx context.Context, g *entity.GeneralService) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *BASTPRepository) UpdateGeneralService(ctx context.Context, g *entity.GeneralService) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *BASTPRepository) DeleteGeneralService(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.GeneralService{}).Error
}

func (r *BASTPRepository) FindGeneralServiceByID(ctx context.Context, id string) (*entity.GeneralService, error) {
	var g entity.GeneralService
	err := r.db.WithContext(ctx).
		Preload("ServiceType").
		Where("id = ?", id).
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}
