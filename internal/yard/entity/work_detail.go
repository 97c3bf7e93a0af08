package entity

import (
	"time"

	"gorm.io/gorm"
)

// WorkDetail is a single line of yard work under a work order. Planning
// fields are owned by PPIC, execution fields by PRODUCTION; the two sets are
// disjoint and independently writable.
type WorkDetail struct {
	ID                string     `json:"id" gorm:"primaryKey;size:32"`
	WorkOrderID       string     `json:"work_order_id" gorm:"size:32;not null;index"`
	Description       string     `json:"description" gorm:"type:text;not null"`
	Location          string     `json:"location" gorm:"size:128"`
	WorkLocation      string     `json:"work_location" gorm:"size:128"`
	WorkScope         string     `json:"work_scope" gorm:"size:128"`
	WorkType          string     `json:"work_type" gorm:"size:64"`
	Quantity          float64    `json:"quantity" gorm:"not null;default:0"`
	UOM               string     `json:"uom" gorm:"size:16"`
	IsAdditional      bool       `json:"is_additional" gorm:"default:false"`
	PlannedStartDate  *time.Time `json:"planned_start_date"`
	TargetCloseDate   *time.Time `json:"target_close_date"`
	PeriodCloseTarget string     `json:"period_close_target" gorm:"size:32"`

	PIC             string     `json:"pic" gorm:"size:128"`
	SPKNumber       string     `json:"spk_number" gorm:"size:64"`
	SPKKNumber      string     `json:"spkk_number" gorm:"size:64"`
	WorkPermitPath  string     `json:"work_permit_path" gorm:"size:512"`
	ActualStartDate *time.Time `json:"actual_start_date"`
	ActualCloseDate *time.Time `json:"actual_close_date"`
	Notes           string     `json:"notes" gorm:"type:text"`

	// Status is derived from the actual dates on every read, never stored.
	Status WorkStatus `json:"status" gorm:"-"`

	CreatedBy string         `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	WorkOrder       *WorkOrder       `json:"work_order,omitempty" gorm:"foreignKey:WorkOrderID"`
	ProgressReports []ProgressReport `json:"progress_reports,omitempty" gorm:"foreignKey:WorkDetailID"`
}

func (WorkDetail) TableName() string {
	return "work_details"
}

// WorkStatus is derived from the actual dates, never stored.
type WorkStatus string

const (
	WorkStatusNotReady   WorkStatus = "NOT_READY"
	WorkStatusInProgress WorkStatus = "IN_PROGRESS"
	WorkStatusCompleted  WorkStatus = "COMPLETED"
)

// DeriveStatus computes the work status from the actual dates. A set close
// date always wins; absent dates mean "not set", never epoch.
func (d *WorkDetail) DeriveStatus() WorkStatus {
	if d.ActualCloseDate != nil {
		return WorkStatusCompleted
	}
	if d.ActualStartDate != nil {
		return WorkStatusInProgress
	}
	return WorkStatusNotReady
}

// Field names used by the role/field access table. They match the JSON keys.
const (
	FieldDescription       = "description"
	FieldLocation          = "location"
	FieldWorkLocation      = "work_location"
	FieldWorkScope         = "work_scope"
	FieldWorkType          = "work_type"
	FieldQuantity          = "quantity"
	FieldUOM               = "uom"
	FieldIsAdditional      = "is_additional"
	FieldPlannedStartDate  = "planned_start_date"
	FieldTargetCloseDate   = "target_close_date"
	FieldPeriodCloseTarget = "period_close_target"

	FieldPIC             = "pic"
	FieldSPKNumber       = "spk_number"
	FieldSPKKNumber      = "spkk_number"
	FieldWorkPermit      = "work_permit"
	FieldActualStartDate = "actual_start_date"
	FieldActualCloseDate = "actual_close_date"
	FieldNotes           = "notes"
)

// PlanningFields is the PPIC-owned field set.
var PlanningFields = []string{
	FieldDescription,
	FieldLocation,
	FieldWorkLocation,
	FieldWorkScope,
	FieldWorkType,
	FieldQuantity,
	FieldUOM,
	FieldIsAdditional,
	FieldPlannedStartDate,
	FieldTargetCloseDate,
	FieldPeriodCloseTarget,
}

// ExecutionFields is the PRODUCTION-owned field set.
var ExecutionFields = []string{
	FieldPIC,
	FieldSPKNumber,
	FieldSPKKNumber,
	FieldWorkPermit,
	FieldActualStartDate,
	FieldActualCloseDate,
	FieldNotes,
}
