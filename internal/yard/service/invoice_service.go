package service

import (
	"context"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
)

// InvoiceService bills BASTPs. An invoice can only be raised against a BASTP
// that reached READY_FOR_INVOICE, and one active invoice per BASTP.
type InvoiceService struct {
	repo      *repository.InvoiceRepository
	bastpRepo *repository.BASTPRepository
}

func NewInvoiceService(repo *repository.InvoiceRepository, bastpRepo *repository.BASTPRepository) *InvoiceService {
	return &InvoiceService{repo: repo, bastpRepo: bastpRepo}
}

type CreateInvoiceRequest struct {
	BASTPID  string   `json:"bastp_id" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Currency string   `json:"currency"`
	IssuedAt *string  `json:"issued_at"`
	Notes    string   `json:"notes"`
}

func (s *InvoiceService) Create(ctx context.Context, userID string, req *CreateInvoiceRequest) (*entity.Invoice, error) {
	b, err := s.bastpRepo.FindByID(ctx, req.BASTPID)
	if err != nil {
		return nil, err
	}

	var problems []string
	if b.Status != entity.BASTPStatusReadyForInvoice && b.Status != entity.BASTPStatusInvoiced {
		problems = append(problems, "BASTP is not ready for invoicing")
	}
	if req.Amount == nil || *req.Amount <= 0 {
		problems = append(problems, "amount must be greater than zero")
	}

	exists, err := s.repo.ExistsForBASTP(ctx, req.BASTPID)
	if err != nil {
		return nil, err
	}
	if exists {
		problems = append(problems, "BASTP already has an invoice")
	}

	var issuedAt *time.Time
	if req.IssuedAt != nil {
		t, ok := parseDate(*req.IssuedAt)
		if !ok {
			problems = append(problems, "issued_at must be YYYY-MM-DD")
		} else {
			issuedAt = t
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "IDR"
	}
	inv := &entity.Invoice{
		ID:        uuid.New().String()[:32],
		Code:      code,
		BASTPID:   req.BASTPID,
		Amount:    *req.Amount,
		Currency:  currency,
		IssuedAt:  issuedAt,
		Notes:     req.Notes,
		CreatedBy: userID,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, inv.ID)
}

type UpdateInvoiceRequest struct {
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	IssuedAt *string  `json:"issued_at"`
	Notes    *string  `json:"notes"`
}

func (s *InvoiceService) Update(ctx context.Context, id string, req *UpdateInvoiceRequest) (*entity.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var problems []string
	if req.Amount != nil {
		if *req.Amount <= 0 {
			problems = append(problems, "amount must be greater than zero")
		} else {
			inv.Amount = *req.Amount
		}
	}
	if req.Currency != nil {
		inv.Currency = *req.Currency
	}
	if req.IssuedAt != nil {
		t, ok := parseDate(*req.IssuedAt)
		if !ok {
			problems = append(problems, "issued_at must be YYYY-MM-DD")
		} else {
			inv.IssuedAt = t
		}
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Invoice, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

// Delete soft-deletes an invoice. A BASTP already advanced to INVOICED stays
// there; the status machine never moves backwards.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
