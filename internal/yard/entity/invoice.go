package entity

import (
	"time"

	"gorm.io/gorm"
)

// Invoice bills one BASTP. Its existence is what moves the BASTP into the
// terminal INVOICED status.
type Invoice struct {
	ID        string         `json:"id" gorm:"primaryKey;size:32"`
	Code      string         `json:"code" gorm:"size:64;not null;uniqueIndex"`
	BASTPID   string         `json:"bastp_id" gorm:"size:32;not null;index"`
	Amount    float64        `json:"amount" gorm:"not null;default:0"`
	Currency  string         `json:"currency" gorm:"size:10;default:IDR"`
	IssuedAt  *time.Time     `json:"issued_at"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedBy string         `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	BASTP *BASTP `json:"bastp,omitempty" gorm:"foreignKey:BASTPID"`
}

func (Invoice) TableName() string {
	return "invoices"
}
