package entity

import (
	"time"

	"gorm.io/gorm"
)

// WorkVerification records that a work detail passed yard verification.
// One record per verified work detail.
type WorkVerification struct {
	ID           string         `json:"id" gorm:"primaryKey;size:32"`
	WorkDetailID string         `json:"work_detail_id" gorm:"size:32;not null;uniqueIndex"`
	VerifiedBy   string         `json:"verified_by" gorm:"size:32;not null"`
	VerifiedAt   time.Time      `json:"verified_at" gorm:"not null"`
	Notes        string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	WorkDetail *WorkDetail `json:"work_detail,omitempty" gorm:"foreignKey:WorkDetailID"`
}

func (WorkVerification) TableName() string {
	return "work_verifications"
}
