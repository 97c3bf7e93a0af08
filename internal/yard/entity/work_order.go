package entity

import (
	"time"

	"gorm.io/gorm"
)

// WorkOrder groups the work details agreed with a customer for one vessel.
type WorkOrder struct {
	ID               string         `json:"id" gorm:"primaryKey;size:32"`
	Code             string         `json:"code" gorm:"size:64;not null;uniqueIndex"`
	VesselID         string         `json:"vessel_id" gorm:"size:32;not null;index"`
	Customer         string         `json:"customer" gorm:"size:200"`
	Description      string         `json:"description" gorm:"type:text"`
	PlannedStartDate *time.Time     `json:"planned_start_date"`
	PlannedCloseDate *time.Time     `json:"planned_close_date"`
	CreatedBy        string         `json:"created_by" gorm:"size:32"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	Vessel      *Vessel      `json:"vessel,omitempty" gorm:"foreignKey:VesselID"`
	WorkDetails []WorkDetail `json:"work_details,omitempty" gorm:"foreignKey:WorkOrderID"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}
