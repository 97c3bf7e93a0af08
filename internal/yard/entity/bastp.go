package entity

import (
	"time"

	"gorm.io/gorm"
)

// BASTPStatus is the handover document status. Transitions are strictly
// forward: DRAFT → VERIFIED → READY_FOR_INVOICE → INVOICED.
type BASTPStatus string

const (
	BASTPStatusDraft           BASTPStatus = "DRAFT"
	BASTPStatusVerified        BASTPStatus = "VERIFIED"
	BASTPStatusReadyForInvoice BASTPStatus = "READY_FOR_INVOICE"
	BASTPStatusInvoiced        BASTPStatus = "INVOICED"
)

// BASTP (Berita Acara Serah Terima Pekerjaan) is the work handover document
// that gates invoicing for a vessel's completed work details.
type BASTP struct {
	ID                 string         `json:"id" gorm:"primaryKey;size:32"`
	Code               string         `json:"code" gorm:"size:64;not null;uniqueIndex"`
	VesselID           string         `json:"vessel_id" gorm:"size:32;not null;index"`
	Status             BASTPStatus    `json:"status" gorm:"size:32;not null;default:DRAFT"`
	SignedDocumentPath *string        `json:"signed_document_path" gorm:"size:512"`
	HandoverDate       *time.Time     `json:"handover_date"`
	Notes              string         `json:"notes" gorm:"type:text"`
	CreatedBy          string         `json:"created_by" gorm:"size:32"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`

	Vessel          *Vessel          `json:"vessel,omitempty" gorm:"foreignKey:VesselID"`
	WorkDetailLinks []BASTPWorkDetail `json:"work_detail_links,omitempty" gorm:"foreignKey:BASTPID"`
	GeneralServices []GeneralService `json:"general_services,omitempty" gorm:"foreignKey:BASTPID"`
}

func (BASTP) TableName() string {
	return "bastps"
}

// BASTPWorkDetail links one work detail into a BASTP. A work detail may be
// linked into at most one active BASTP.
type BASTPWorkDetail struct {
	ID           string         `json:"id" gorm:"primaryKey;size:32"`
	BASTPID      string         `json:"bastp_id" gorm:"size:32;not null;index"`
	WorkDetailID string         `json:"work_detail_id" gorm:"size:32;not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	WorkDetail *WorkDetail `json:"work_detail,omitempty" gorm:"foreignKey:WorkDetailID"`
}

func (BASTPWorkDetail) TableName() string {
	return "bastp_work_details"
}

// GeneralService is a per-day service line on a BASTP (tug assist, berth,
// crane and the like). TotalDays is derived, never stored.
type GeneralService struct {
	ID            string         `json:"id" gorm:"primaryKey;size:32"`
	BASTPID       string         `json:"bastp_id" gorm:"size:32;not null;index"`
	ServiceTypeID string         `json:"service_type_id" gorm:"size:32;not null"`
	StartDate     *time.Time     `json:"start_date"`
	CloseDate     *time.Time     `json:"close_date"`
	TotalDays     int            `json:"total_days" gorm:"-"`
	Notes         string         `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	ServiceType *ServiceType `json:"service_type,omitempty" gorm:"foreignKey:ServiceTypeID"`
}

func (GeneralService) TableName() string {
	return "general_services"
}

// CalcTotalDays is the inclusive day span close−start+1, clamped to zero when
// the close date precedes the start date or either date is missing.
func (g *GeneralService) CalcTotalDays() int {
	if g.StartDate == nil || g.CloseDate == nil {
		return 0
	}
	days := int(g.CloseDate.Sub(*g.StartDate).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// ServiceType is reference data for general service lines.
type ServiceType struct {
	ID        string         `json:"id" gorm:"primaryKey;size:32"`
	Code      string         `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"size:200;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ServiceType) TableName() string {
	return "service_types"
}

// TransitionContext carries the externally observed conditions a BASTP's
// status is derived from.
type TransitionContext struct {
	// LinkedWorkDetailIDs are the active work details linked to the BASTP.
	LinkedWorkDetailIDs []string
	// VerifiedWorkDetailIDs is the set of work details covered by a
	// work verification record.
	VerifiedWorkDetailIDs map[string]bool
	// HasInvoice is true when at least one invoice references the BASTP.
	HasInvoice bool
}

// EvaluateTransition returns the next status for one reconciliation pass and
// whether a transition fired. Exactly one step is taken per pass; the rules
// short-circuit in order DRAFT→VERIFIED, VERIFIED→READY_FOR_INVOICE,
// READY_FOR_INVOICE→INVOICED. Evaluating a terminal record is a no-op, so
// repeated passes are idempotent.
func EvaluateTransition(b *BASTP, tc TransitionContext) (BASTPStatus, bool) {
	switch b.Status {
	case BASTPStatusDraft:
		if len(tc.LinkedWorkDetailIDs) == 0 {
			return b.Status, false
		}
		for _, id := range tc.LinkedWorkDetailIDs {
			if !tc.VerifiedWorkDetailIDs[id] {
				return b.Status, false
			}
		}
		return BASTPStatusVerified, true
	case BASTPStatusVerified:
		if b.SignedDocumentPath == nil || *b.SignedDocumentPath == "" {
			return b.Status, false
		}
		return BASTPStatusReadyForInvoice, true
	case BASTPStatusReadyForInvoice:
		if !tc.HasInvoice {
			return b.Status, false
		}
		return BASTPStatusInvoiced, true
	case BASTPStatusInvoiced:
		return b.Status, false
	default:
		return b.Status, false
	}
}
