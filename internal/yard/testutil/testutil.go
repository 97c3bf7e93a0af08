package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/data-center-bgp/shipyard-ops/internal/middleware"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_yard"
	JWTSecret  = "shipyard-ops-jwt-secret-key-2024"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB creates a test database connection using a dedicated test
// schema. Each test gets an isolated schema that is dropped afterwards.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "shipyard")
	password := getEnv("DB_PASSWORD", "shipyard123")
	dbname := getEnv("DB_NAME", "shipyard_ops")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so all pooled connections use the test schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Vessel{},
		&entity.WorkOrder{},
		&entity.WorkDetail{},
		&entity.ProgressReport{},
		&entity.WorkVerification{},
		&entity.BASTP{},
		&entity.BASTPWorkDetail{},
		&entity.GeneralService{},
		&entity.ServiceType{},
		&entity.Invoice{},
		&entity.Material{},
		&entity.MaterialUsage{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	// Same partial unique index the server migration creates: one active
	// BASTP link per work detail.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_bastp_work_details_active ON bastp_work_details(work_detail_id) WHERE deleted_at IS NULL").Error; err != nil {
		t.Fatalf("Failed to create test indexes: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token carrying the given yard role.
func GenerateTestToken(userID, name, email, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"role":  role,
		"iss":   "shipyard-ops",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// PPICToken returns a token for a PPIC planner.
func PPICToken() string {
	return GenerateTestToken("test-ppic-001", "Test PPIC", "ppic@test.com", "PPIC")
}

// ProductionToken returns a token for a PRODUCTION user.
func ProductionToken() string {
	return GenerateTestToken("test-prod-001", "Test Production", "prod@test.com", "PRODUCTION")
}

// MasterToken returns a token for a MASTER user.
func MasterToken() string {
	return GenerateTestToken("test-master-001", "Test Master", "master@test.com", "MASTER")
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedVessel creates a vessel row.
func SeedVessel(t *testing.T, db *gorm.DB, code, name string) *entity.Vessel {
	t.Helper()
	v := &entity.Vessel{
		ID:   uuid.New().String()[:32],
		Code: code,
		Name: name,
		Type: "TUGBOAT",
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("Failed to seed vessel: %v", err)
	}
	return v
}

// SeedWorkOrder creates a work order for a vessel.
func SeedWorkOrder(t *testing.T, db *gorm.DB, vesselID, code string) *entity.WorkOrder {
	t.Helper()
	wo := &entity.WorkOrder{
		ID:       uuid.New().String()[:32],
		Code:     code,
		VesselID: vesselID,
		Customer: "PT Test Marine",
	}
	if err := db.Create(wo).Error; err != nil {
		t.Fatalf("Failed to seed work order: %v", err)
	}
	return wo
}

// SeedWorkDetail creates a minimal valid work detail under a work order.
func SeedWorkDetail(t *testing.T, db *gorm.DB, workOrderID, description string) *entity.WorkDetail {
	t.Helper()
	planned := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	d := &entity.WorkDetail{
		ID:               uuid.New().String()[:32],
		WorkOrderID:      workOrderID,
		Description:      description,
		WorkScope:        "HULL",
		WorkType:         "REPAIR",
		Quantity:         1,
		UOM:              "lot",
		PlannedStartDate: &planned,
		TargetCloseDate:  &target,
	}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("Failed to seed work detail: %v", err)
	}
	return d
}

// SeedProgress appends a progress report.
func SeedProgress(t *testing.T, db *gorm.DB, workDetailID string, pct float64, date time.Time) *entity.ProgressReport {
	t.Helper()
	p := &entity.ProgressReport{
		ID:           uuid.New().String()[:32],
		WorkDetailID: workDetailID,
		Percentage:   pct,
		ReportDate:   date,
		ReportedBy:   "test-prod-001",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed progress report: %v", err)
	}
	return p
}

// SeedVerification marks a work detail verified.
func SeedVerification(t *testing.T, db *gorm.DB, workDetailID string) *entity.WorkVerification {
	t.Helper()
	v := &entity.WorkVerification{
		ID:           uuid.New().String()[:32],
		WorkDetailID: workDetailID,
		VerifiedBy:   "test-ppic-001",
		VerifiedAt:   time.Now(),
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("Failed to seed verification: %v", err)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
