package service

import (
	"context"
	"errors"
	"io"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BASTPService owns the handover document lifecycle. Statuses are never set
// directly by callers: every list/get runs one reconciliation pass that
// derives the next status from verification coverage, the signed document
// and invoice existence.
type BASTPService struct {
	repo             *repository.BASTPRepository
	vesselRepo       *repository.VesselRepository
	verificationRepo *repository.VerificationRepository
	invoiceRepo      *repository.InvoiceRepository
	progress         *ProgressService
	storage          *StorageService
	logger           *zap.Logger
}

func NewBASTPService(
	repo *repository.BASTPRepository,
	vesselRepo *repository.VesselRepository,
	verificationRepo *repository.VerificationRepository,
	invoiceRepo *repository.InvoiceRepository,
	progress *ProgressService,
	storage *StorageService,
	logger *zap.Logger,
) *BASTPService {
	return &BASTPService{
		repo:             repo,
		vesselRepo:       vesselRepo,
		verificationRepo: verificationRepo,
		invoiceRepo:      invoiceRepo,
		progress:         progress,
		storage:          storage,
		logger:           logger,
	}
}

// CreateBASTPRequest opens a new handover document for a vessel.
type CreateBASTPRequest struct {
	VesselID     string  `json:"vessel_id" binding:"required"`
	HandoverDate *string `json:"handover_date"`
	Notes        string  `json:"notes"`
}

func (s *BASTPService) Create(ctx context.Context, userID string, req *CreateBASTPRequest) (*entity.BASTP, error) {
	if _, err := s.vesselRepo.FindByID(ctx, req.VesselID); err != nil {
		return nil, err
	}

	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	b := &entity.BASTP{
		ID:        uuid.New().String()[:32],
		Code:      code,
		VesselID:  req.VesselID,
		Status:    entity.BASTPStatusDraft,
		Notes:     req.Notes,
		CreatedBy: userID,
	}
	if req.HandoverDate != nil {
		t, ok := parseDate(*req.HandoverDate)
		if !ok {
			return nil, &ValidationError{Problems: []string{"handover_date must be YYYY-MM-DD"}}
		}
		b.HandoverDate = t
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, b.ID)
}

// List fetches a page of BASTPs and reconciles each record once. Each
// satisfied transition is a single state write; records are independent, so
// a failure on one does not stop the others.
func (s *BASTPService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BASTP, int64, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}

	for i := range items {
		if _, err := s.reconcile(ctx, &items[i]); err != nil {
			s.logger.Warn("BASTP reconciliation failed",
				zap.String("bastp_id", items[i].ID),
				zap.Error(err),
			)
		}
		decorateBASTP(&items[i])
	}
	return items, total, nil
}

func (s *BASTPService) Get(ctx context.Context, id string) (*entity.BASTP, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.reconcile(ctx, b); err != nil {
		s.logger.Warn("BASTP reconciliation failed",
			zap.String("bastp_id", b.ID),
			zap.Error(err),
		)
	}
	decorateBASTP(b)
	return b, nil
}

// reconcile runs one evaluation pass for a single record and applies at most
// one forward transition. Re-running it on an already advanced or terminal
// record is a no-op, so concurrent scans are safe without coordination.
func (s *BASTPService) reconcile(ctx context.Context, b *entity.BASTP) (bool, error) {
	if b.Status == entity.BASTPStatusInvoiced {
		return false, nil
	}

	linkedIDs := make([]string, 0, len(b.WorkDetailLinks))
	for _, link := range b.WorkDetailLinks {
		linkedIDs = append(linkedIDs, link.WorkDetailID)
	}

	verified, err := s.verificationRepo.VerifiedSet(ctx, linkedIDs)
	if err != nil {
		return false, err
	}
	hasInvoice, err := s.invoiceRepo.ExistsForBASTP(ctx, b.ID)
	if err != nil {
		return false, err
	}

	next, fired := entity.EvaluateTransition(b, entity.TransitionContext{
		LinkedWorkDetailIDs:   linkedIDs,
		VerifiedWorkDetailIDs: verified,
		HasInvoice:            hasInvoice,
	})
	if !fired {
		return false, nil
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, next); err != nil {
		return false, err
	}
	b.Status = next
	return true, nil
}

// UpdateBASTPRequest edits the mutable header fields.
type UpdateBASTPRequest struct {
	HandoverDate *string `json:"handover_date"`
	Notes        *string `json:"notes"`
}

func (s *BASTPService) Update(ctx context.Context, id string, req *UpdateBASTPRequest) (*entity.BASTP, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HandoverDate != nil {
		t, ok := parseDate(*req.HandoverDate)
		if !ok {
			return nil, &ValidationError{Problems: []string{"handover_date must be YYYY-MM-DD"}}
		}
		b.HandoverDate = t
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a handover document. Only drafts may be deleted.
func (s *BASTPService) Delete(ctx context.Context, id string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != entity.BASTPStatusDraft {
		return &ValidationError{Problems: []string{"only DRAFT BASTP can be deleted"}}
	}
	return s.repo.Delete(ctx, id)
}

// LinkWorkDetail attaches a work detail to a draft BASTP. The detail must be
// at 100% progress and not already linked into another active BASTP.
func (s *BASTPService) LinkWorkDetail(ctx context.Context, bastpID, workDetailID string) (*entity.BASTPWorkDetail, error) {
	b, err := s.repo.FindByID(ctx, bastpID)
	if err != nil {
		return nil, err
	}
	if b.Status != entity.BASTPStatusDraft {
		return nil, &ValidationError{Problems: []string{"work details can only be linked while the BASTP is DRAFT"}}
	}

	summary, err := s.progress.Summary(ctx, workDetailID)
	if err != nil {
		return nil, err
	}
	if summary.Value < 100 {
		return nil, &ValidationError{Problems: []string{"work detail progress must be 100% before handover"}}
	}

	if _, err := s.repo.FindActiveLinkByWorkDetail(ctx, workDetailID); err == nil {
		return nil, &ValidationError{Problems: []string{"work detail is already linked to a BASTP"}}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	link := &entity.BASTPWorkDetail{
		ID:           uuid.New().String()[:32],
		BASTPID:      bastpID,
		WorkDetailID: workDetailID,
	}
	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// UnlinkWorkDetail detaches a work detail from a draft BASTP.
func (s *BASTPService) UnlinkWorkDetail(ctx context.Context, bastpID, workDetailID string) error {
	b, err := s.repo.FindByID(ctx, bastpID)
	if err != nil {
		return err
	}
	if b.Status != entity.BASTPStatusDraft {
		return &ValidationError{Problems: []string{"work details can only be unlinked while the BASTP is DRAFT"}}
	}

	for _, link := range b.WorkDetailLinks {
		if link.WorkDetailID == workDetailID {
			return s.repo.DeleteLink(ctx, link.ID)
		}
	}
	return repository.ErrNotFound
}

// UploadSignedDocument stores the signed handover PDF. A previous document
// is superseded and its object deleted best-effort.
func (s *BASTPService) UploadSignedDocument(ctx context.Context, id string, reader io.Reader, size int64, contentType string) (*entity.BASTP, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.UploadDocument(ctx, "bastp", reader, size, contentType)
	if err != nil {
		return nil, err
	}

	var previous string
	if b.SignedDocumentPath != nil {
		previous = *b.SignedDocumentPath
	}
	if err := s.repo.UpdateSignedDocument(ctx, id, &path); err != nil {
		s.storage.RemoveQuietly(ctx, path)
		return nil, err
	}
	if previous != "" {
		s.storage.RemoveQuietly(ctx, previous)
	}

	b.SignedDocumentPath = &path
	return b, nil
}

// SignedDocumentURL returns a time-limited link to the signed document.
func (s *BASTPService) SignedDocumentURL(ctx context.Context, id string) (string, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if b.SignedDocumentPath == nil || *b.SignedDocumentPath == "" {
		return "", repository.ErrNotFound
	}
	return s.storage.PresignedURL(ctx, *b.SignedDocumentPath)
}

// GeneralServiceRequest is one per-day service line.
type GeneralServiceRequest struct {
	ServiceTypeID string  `json:"service_type_id" binding:"required"`
	StartDate     *string `json:"start_date"`
	CloseDate     *string `json:"close_date"`
	Notes         string  `json:"notes"`
}

func (s *BASTPService) AddGeneralService(ctx context.Context, bastpID string, req *GeneralServiceRequest) (*entity.GeneralService, error) {
	if _, err := s.repo.FindByID(ctx, bastpID); err != nil {
		return nil, err
	}

	g := &entity.GeneralService{
		ID:            uuid.New().String()[:32],
		BASTPID:       bastpID,
		ServiceTypeID: req.ServiceTypeID,
		Notes:         req.Notes,
	}
	if err := applyServiceDates(g, req.StartDate, req.CloseDate); err != nil {
		return nil, err
	}

	if err := s.repo.CreateGeneralService(ctx, g); err != nil {
		return nil, err
	}
	g.TotalDays = g.CalcTotalDays()
	return g, nil
}

func (s *BASTPService) UpdateGeneralService(ctx context.Context, id string, req *GeneralServiceRequest) (*entity.GeneralService, error) {
	g, err := s.repo.FindGeneralServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ServiceTypeID != "" {
		g.ServiceTypeID = req.ServiceTypeID
	}
	if err := applyServiceDates(g, req.StartDate, req.CloseDate); err != nil {
		return nil, err
	}
	if req.Notes != "" {
		g.Notes = req.Notes
	}

	if err := s.repo.UpdateGeneralService(ctx, g); err != nil {
		return nil, err
	}
	g.TotalDays = g.CalcTotalDays()
	return g, nil
}

func (s *BASTPService) DeleteGeneralService(ctx context.Context, id string) error {
	if _, err := s.repo.FindGeneralServiceByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteGeneralService(ctx, id)
}

func applyServiceDates(g *entity.GeneralService, start, close *string) error {
	var problems []string
	if start != nil {
		t, ok := parseDate(*start)
		if !ok {
			problems = append(problems, "start_date must be YYYY-MM-DD")
		} else {
			g.StartDate = t
		}
	}
	if close != nil {
		t, ok := parseDate(*close)
		if !ok {
			problems = append(problems, "close_date must be YYYY-MM-DD")
		} else {
			g.CloseDate = t
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// decorateBASTP fills the derived fields that are never stored.
func decorateBASTP(b *entity.BASTP) {
	for i := range b.GeneralServices {
		b.GeneralServices[i].TotalDays = b.GeneralServices[i].CalcTotalDays()
	}
	for i := range b.WorkDetailLinks {
		if d := b.WorkDetailLinks[i].WorkDetail; d != nil {
			d.Status = d.DeriveStatus()
		}
	}
}
