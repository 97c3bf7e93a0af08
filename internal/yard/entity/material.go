package entity

import (
	"time"

	"gorm.io/gorm"
)

// Material is yard stock reference data (plate, paint, consumables).
type Material struct {
	ID        string         `json:"id" gorm:"primaryKey;size:32"`
	Code      string         `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"size:200;not null"`
	Unit      string         `json:"unit" gorm:"size:16"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Material) TableName() string {
	return "materials"
}

// MaterialUsage records material consumed against a work detail.
type MaterialUsage struct {
	ID           string         `json:"id" gorm:"primaryKey;size:32"`
	WorkDetailID string         `json:"work_detail_id" gorm:"size:32;not null;index"`
	MaterialID   string         `json:"material_id" gorm:"size:32;not null;index"`
	Quantity     float64        `json:"quantity" gorm:"not null"`
	Unit         string         `json:"unit" gorm:"size:16"`
	UsedAt       *time.Time     `json:"used_at"`
	Notes        string         `json:"notes" gorm:"type:text"`
	RecordedBy   string         `json:"recorded_by" gorm:"size:32"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Material   *Material   `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
	WorkDetail *WorkDetail `json:"work_detail,omitempty" gorm:"foreignKey:WorkDetailID"`
}

func (MaterialUsage) TableName() string {
	return "material_usages"
}
