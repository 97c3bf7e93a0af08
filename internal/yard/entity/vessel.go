package entity

import (
	"time"

	"gorm.io/gorm"
)

// Vessel is a ship under maintenance or repair at the yard.
type Vessel struct {
	ID        string         `json:"id" gorm:"primaryKey;size:32"`
	Code      string         `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"size:200;not null"`
	Type      string         `json:"type" gorm:"size:64"`
	Owner     string         `json:"owner" gorm:"size:200"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Vessel) TableName() string {
	return "vessels"
}
