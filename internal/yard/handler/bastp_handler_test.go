package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/testutil"
	"go.uber.org/zap"
)

func setupBASTPTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	storage := service.NewStorageService(nil, "", zap.NewNop())
	progressSvc := service.NewProgressService(repos.Progress, repos.WorkDetail)
	bastpSvc := service.NewBASTPService(repos.BASTP, repos.Vessel, repos.Verification, repos.Invoice, progressSvc, storage, zap.NewNop())
	invoiceSvc := service.NewInvoiceService(repos.Invoice, repos.BASTP)
	verificationSvc := service.NewVerificationService(repos.Verification, repos.WorkDetail)

	bh := NewBASTPHandler(bastpSvc)
	ih := NewInvoiceHandler(invoiceSvc)
	vh := NewVerificationHandler(verificationSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/bastp", bh.List)
	api.GET("/bastp/:id", bh.Get)
	api.POST("/bastp", bh.Create)
	api.POST("/bastp/:id/work-details", bh.LinkWorkDetail)
	api.DELETE("/bastp/:id/work-details/:workDetailId", bh.UnlinkWorkDetail)
	api.POST("/invoices", ih.Create)
	api.POST("/work-details/:id/verification", vh.Verify)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// seedCompletedDetail creates a completed, 100% reported work detail.
func seedCompletedDetail(t *testing.T, env *testutil.TestEnv, woID, desc string) *entity.WorkDetail {
	t.Helper()
	detail := testutil.SeedWorkDetail(t, env.DB, woID, desc)
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	closeDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	detail.ActualStartDate = &start
	detail.ActualCloseDate = &closeDate
	if err := env.DB.Save(detail).Error; err != nil {
		t.Fatalf("Failed to complete work detail: %v", err)
	}
	testutil.SeedProgress(t, env.DB, detail.ID, 100, closeDate)
	return detail
}

func createBASTP(t *testing.T, env *testutil.TestEnv, vesselID string) string {
	t.Helper()
	body := map[string]interface{}{"vessel_id": vesselID}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/bastp", body, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != "DRAFT" {
		t.Fatalf("new BASTP status = %v, want DRAFT", data["status"])
	}
	return data["id"].(string)
}

func getBASTPStatus(t *testing.T, env *testutil.TestEnv, id string) string {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/bastp/"+id, nil, testutil.PPICToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	return data["status"].(string)
}

func TestBASTPLinkRequiresFullProgress(t *testing.T) {
	env := setupBASTPTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-010", "TB Samudra")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0010")
	detail := testutil.SeedWorkDetail(t, env.DB, wo.ID, "Rudder repair")
	testutil.SeedProgress(t, env.DB, detail.ID, 70, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	bastpID := createBASTP(t, env, vessel.ID)

	body := map[string]interface{}{"work_detail_id": detail.ID}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/bastp/"+bastpID+"/work-details", body, testutil.PPICToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 linking 70%% detail, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBASTPWorkDetailSingleActiveLink(t *testing.T) {
	env := setupBASTPTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-011", "TB Mandiri")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0011")
	detail := seedCompletedDetail(t, env, wo.ID, "Deck renewal")

	first := createBASTP(t, env, vessel.ID)
	second := createBASTP(t, env, vessel.ID)

	body := map[string]interface{}{"work_detail_id": detail.ID}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/bastp/"+first+"/work-details", body, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Same detail cannot join another active BASTP.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/bastp/"+second+"/work-details", body, testutil.PPICToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for second link, got %d: %s", w.Code, w.Body.String())
	}

	// Unlinking frees the detail for the other BASTP.
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/bastp/"+first+"/work-details/"+detail.ID, nil, testutil.PPICToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/bastp/"+second+"/work-details", body, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 after unlink, got %d: %s", w.Code, w.Body.String())
	}
}

// Full lifecycle: DRAFT → VERIFIED → READY_FOR_INVOICE → INVOICED, each step
// observed through reads after its condition is satisfied.
func TestBASTPLifecycle(t *testing.T) {
	env := setupBASTPTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-012", "TB Sentosa")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0012")
	detailA := seedCompletedDetail(t, env, wo.ID, "Hull blasting and painting")
	detailB := seedCompletedDetail(t, env, wo.ID, "Sea valve overhaul")

	bastpID := createBASTP(t, env, vessel.ID)

	for _, d := range []*entity.WorkDetail{detailA, detailB} {
		body := map[string]interface{}{"work_detail_id": d.ID}
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/bastp/"+bastpID+"/work-details", body, testutil.PPICToken())
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	// One verified detail is not enough.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detailA.ID+"/verification", map[string]interface{}{}, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got := getBASTPStatus(t, env, bastpID); got != "DRAFT" {
		t.Fatalf("status after partial verification = %v, want DRAFT", got)
	}

	// All linked details verified: read advances DRAFT → VERIFIED.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detailB.ID+"/verification", map[string]interface{}{}, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got := getBASTPStatus(t, env, bastpID); got != "VERIFIED" {
		t.Fatalf("status = %v, want VERIFIED", got)
	}

	// Invoicing is blocked before READY_FOR_INVOICE.
	invoiceBody := map[string]interface{}{"bastp_id": bastpID, "amount": 125000000}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", invoiceBody, testutil.PPICToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invoicing VERIFIED BASTP, got %d: %s", w.Code, w.Body.String())
	}

	// Signed document present: read advances VERIFIED → READY_FOR_INVOICE.
	// Object storage is disabled in tests, so the path is set directly.
	path := "bastp/2025/06/20/signed.pdf"
	if err := env.DB.Model(&entity.BASTP{}).Where("id = ?", bastpID).Update("signed_document_path", path).Error; err != nil {
		t.Fatalf("Failed to set signed document: %v", err)
	}
	if got := getBASTPStatus(t, env, bastpID); got != "READY_FOR_INVOICE" {
		t.Fatalf("status = %v, want READY_FOR_INVOICE", got)
	}

	// Invoice created: read advances READY_FOR_INVOICE → INVOICED.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", invoiceBody, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got := getBASTPStatus(t, env, bastpID); got != "INVOICED" {
		t.Fatalf("status = %v, want INVOICED", got)
	}

	// Terminal and idempotent: repeated reads stay INVOICED.
	if got := getBASTPStatus(t, env, bastpID); got != "INVOICED" {
		t.Fatalf("status on re-read = %v, want INVOICED", got)
	}

	// A second invoice for the same BASTP is rejected.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", invoiceBody, testutil.PPICToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate invoice, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVerificationRequiresCompletedWork(t *testing.T) {
	env := setupBASTPTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-013", "TB Lautan")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0013")
	detail := testutil.SeedWorkDetail(t, env.DB, wo.ID, "Anchor chain calibration")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detail.ID+"/verification", map[string]interface{}{}, testutil.PPICToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 verifying NOT_READY detail, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVerificationIsIdempotent(t *testing.T) {
	env := setupBASTPTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-014", "TB Karya")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0014")
	detail := seedCompletedDetail(t, env, wo.ID, "Bow thruster service")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detail.ID+"/verification", map[string]interface{}{}, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	first := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"]

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detail.ID+"/verification", map[string]interface{}{}, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 on repeat, got %d: %s", w.Code, w.Body.String())
	}
	second := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"]

	if first != second {
		t.Fatalf("repeat verification created a new record: %v vs %v", first, second)
	}
}
