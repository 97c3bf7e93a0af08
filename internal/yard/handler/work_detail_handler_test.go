package handler

import (
	"net/http"
	"testing"

	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/testutil"
	"go.uber.org/zap"
)

func setupWorkDetailTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	storage := service.NewStorageService(nil, "", zap.NewNop())
	svc := service.NewWorkDetailService(repos.WorkDetail, repos.WorkOrder, storage)
	progressSvc := service.NewProgressService(repos.Progress, repos.WorkDetail)

	h := NewWorkDetailHandler(svc)
	ph := NewProgressHandler(progressSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/work-details", h.List)
	api.GET("/work-details/field-access", h.FieldAccess)
	api.GET("/work-details/:id", h.Get)
	api.POST("/work-details", h.Create)
	api.PUT("/work-details/:id", h.Update)
	api.POST("/work-details/:id/progress", ph.Add)
	api.GET("/work-details/:id/progress/summary", ph.Summary)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestWorkDetailCreateRequiresPPIC(t *testing.T) {
	env := setupWorkDetailTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-001", "TB Harmoni")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0001")

	body := map[string]interface{}{
		"work_order_id":      wo.ID,
		"description":        "Replace hull plating frame 12-18",
		"work_scope":         "HULL",
		"work_type":          "REPAIR",
		"quantity":           12.5,
		"uom":                "m2",
		"planned_start_date": "2025-06-01",
		"target_close_date":  "2025-06-20",
	}

	// PRODUCTION is denied outright.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details", body, testutil.ProductionToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for PRODUCTION create, got %d: %s", w.Code, w.Body.String())
	}

	// PPIC succeeds.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details", body, testutil.PPICToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != "NOT_READY" {
		t.Fatalf("expected derived status NOT_READY, got %v", data["status"])
	}
}

func TestWorkDetailCreateValidation(t *testing.T) {
	env := setupWorkDetailTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-002", "TB Sejahtera")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0002")

	// Missing required planning fields plus an inverted date pair: every
	// problem is reported in one response and nothing is persisted.
	body := map[string]interface{}{
		"work_order_id":      wo.ID,
		"description":        "Bad detail",
		"quantity":           0,
		"planned_start_date": "2025-06-20",
		"target_close_date":  "2025-06-01",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details", body, testutil.PPICToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/work-details", nil, testutil.PPICToken())
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 0 {
		t.Fatalf("failed create must not persist, total = %v", pagination["total"])
	}
}

// PRODUCTION edits apply only execution fields; planning values sent in the
// same payload are silently retained, not rejected.
func TestWorkDetailRolePartitionOnUpdate(t *testing.T) {
	env := setupWorkDetailTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-003", "TB Perkasa")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0003")
	detail := testutil.SeedWorkDetail(t, env.DB, wo.ID, "Overhaul main engine")

	body := map[string]interface{}{
		"description":       "PRODUCTION tries to rewrite the plan",
		"quantity":          999,
		"pic":               "Budi",
		"spk_number":        "SPK-2025-0042",
		"actual_start_date": "2025-06-02",
	}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/work-details/"+detail.ID, body, testutil.ProductionToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["description"] != "Overhaul main engine" {
		t.Errorf("planning field disturbed by PRODUCTION: %v", data["description"])
	}
	if data["quantity"].(float64) != 1 {
		t.Errorf("quantity disturbed by PRODUCTION: %v", data["quantity"])
	}
	if data["pic"] != "Budi" {
		t.Errorf("execution field not applied: %v", data["pic"])
	}
	if data["status"] != "IN_PROGRESS" {
		t.Errorf("expected IN_PROGRESS after actual start, got %v", data["status"])
	}

	// Closing the work flips the derived status to COMPLETED.
	body = map[string]interface{}{"actual_close_date": "2025-06-15"}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/work-details/"+detail.ID, body, testutil.ProductionToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["status"] != "COMPLETED" {
		t.Errorf("expected COMPLETED, got %v", data["status"])
	}
}

func TestWorkDetailActualCloseRequiresStart(t *testing.T) {
	env := setupWorkDetailTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-004", "TB Nusantara")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0004")
	detail := testutil.SeedWorkDetail(t, env.DB, wo.ID, "Propeller polishing")

	body := map[string]interface{}{"actual_close_date": "2025-06-15"}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/work-details/"+detail.ID, body, testutil.ProductionToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for close without start, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWorkDetailFieldAccessMatrix(t *testing.T) {
	env := setupWorkDetailTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/work-details/field-access", nil, testutil.ProductionToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	fields := data["fields"].(map[string]interface{})
	if fields["description"] != "read_only" {
		t.Errorf("PRODUCTION description access = %v, want read_only", fields["description"])
	}
	if fields["actual_start_date"] != "write" {
		t.Errorf("PRODUCTION actual_start_date access = %v, want write", fields["actual_start_date"])
	}
}

func TestProgressReportAndSummary(t *testing.T) {
	env := setupWorkDetailTest(t)
	vessel := testutil.SeedVessel(t, env.DB, "TB-005", "TB Bahari")
	wo := testutil.SeedWorkOrder(t, env.DB, vessel.ID, "WO-202506-0005")
	detail := testutil.SeedWorkDetail(t, env.DB, wo.ID, "Tail shaft survey")

	// Out of range percentage is rejected.
	body := map[string]interface{}{"percentage": 120, "report_date": "2025-06-05"}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detail.ID+"/progress", body, testutil.ProductionToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	for _, r := range []struct {
		pct  float64
		date string
	}{
		{30, "2025-06-05"},
		{80, "2025-06-12"},
		{50, "2025-06-08"}, // backdated report arrives late
	} {
		body := map[string]interface{}{"percentage": r.pct, "report_date": r.date}
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-details/"+detail.ID+"/progress", body, testutil.ProductionToken())
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	// Current progress follows the latest report date, not insertion order.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/work-details/"+detail.ID+"/progress/summary", nil, testutil.PPICToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["value"].(float64) != 80 {
		t.Errorf("summary value = %v, want 80", data["value"])
	}
	if data["count"].(float64) != 3 {
		t.Errorf("summary count = %v, want 3", data["count"])
	}
}
