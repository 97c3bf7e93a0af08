package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the collection handed to the service layer.
type Repositories struct {
	Vessel       *VesselRepository
	WorkOrder    *WorkOrderRepository
	WorkDetail   *WorkDetailRepository
	Progress     *ProgressRepository
	BASTP        *BASTPRepository
	Invoice      *InvoiceRepository
	Verification *VerificationRepository
	Material     *MaterialRepository
	ServiceType  *ServiceTypeRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vessel:       NewVesselRepository(db),
		WorkOrder:    NewWorkOrderRepository(db),
		WorkDetail:   NewWorkDetailRepository(db),
		Progress:     NewProgressRepository(db),
		BASTP:        NewBASTPRepository(db),
		Invoice:      NewInvoiceRepository(db),
		Verification: NewVerificationRepository(db),
		Material:     NewMaterialRepository(db),
		ServiceType:  NewServiceTypeRepository(db),
	}
}
