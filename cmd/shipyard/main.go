package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/data-center-bgp/shipyard-ops/internal/config"
	"github.com/data-center-bgp/shipyard-ops/internal/middleware"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/entity"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/handler"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting shipyard-ops service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// Indexes AutoMigrate does not cover.
	migrationSQL := []string{
		"CREATE INDEX IF NOT EXISTS idx_progress_reports_detail_date ON progress_reports(work_detail_id, report_date)",
		// Unique on active links: a work detail joins at most one BASTP, even
		// under concurrent link requests.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_bastp_work_details_active ON bastp_work_details(work_detail_id) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_bastps_status ON bastps(status)",
	}
	for _, sql := range migrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Migration SQL warning (may already exist)", zap.String("sql", sql), zap.Error(err))
		}
	}
	zapLogger.Info("Database migration completed")

	seedServiceTypes(db, zapLogger)

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// seedServiceTypes inserts the default general service types. Existing codes
// are left untouched, so re-running on every startup is safe.
func seedServiceTypes(db *gorm.DB, logger *zap.Logger) {
	seeds := []struct{ Code, Name string }{
		{"BERTH", "Berthing"},
		{"TUG", "Tug Assist"},
		{"CRANE", "Crane Service"},
		{"ELECTRICITY", "Shore Power"},
		{"FRESH_WATER", "Fresh Water Supply"},
		{"GARBAGE", "Garbage Disposal"},
		{"SECURITY", "Yard Security"},
	}
	for _, st := range seeds {
		err := db.Exec(`INSERT INTO service_types (id, code, name, created_at, updated_at)
			VALUES (?, ?, ?, NOW(), NOW())
			ON CONFLICT (code) DO NOTHING`, uuid.New().String()[:32], st.Code, st.Name).Error
		if err != nil {
			logger.Warn("Service type seed failed", zap.String("code", st.Code), zap.Error(err))
		}
	}
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		vessels := authorized.Group("/vessels")
		{
			vessels.GET("", h.Vessel.List)
			vessels.GET("/:id", h.Vessel.Get)
			vessels.POST("", middleware.RequireRole("PPIC"), h.Vessel.Create)
			vessels.PUT("/:id", middleware.RequireRole("PPIC"), h.Vessel.Update)
			vessels.DELETE("/:id", middleware.RequireRole("PPIC"), h.Vessel.Delete)
		}

		workOrders := authorized.Group("/work-orders")
		{
			workOrders.GET("", h.WorkOrder.List)
			workOrders.GET("/:id", h.WorkOrder.Get)
			workOrders.POST("", middleware.RequireRole("PPIC"), h.WorkOrder.Create)
			workOrders.PUT("/:id", middleware.RequireRole("PPIC"), h.WorkOrder.Update)
			workOrders.DELETE("/:id", middleware.RequireRole("PPIC"), h.WorkOrder.Delete)
		}

		// Field-level role checks live in the service layer: any authenticated
		// role may call update, the role's write set decides what applies.
		workDetails := authorized.Group("/work-details")
		{
			workDetails.GET("", h.WorkDetail.List)
			workDetails.GET("/field-access", h.WorkDetail.FieldAccess)
			workDetails.GET("/:id", h.WorkDetail.Get)
			workDetails.POST("", h.WorkDetail.Create)
			workDetails.PUT("/:id", h.WorkDetail.Update)
			workDetails.DELETE("/:id", h.WorkDetail.Delete)

			workDetails.POST("/:id/work-permit", h.WorkDetail.UploadWorkPermit)
			workDetails.GET("/:id/work-permit", h.WorkDetail.WorkPermitURL)

			workDetails.POST("/:id/progress", middleware.RequireRole("PRODUCTION", "PPIC"), h.Progress.Add)
			workDetails.GET("/:id/progress", h.Progress.List)
			workDetails.GET("/:id/progress/summary", h.Progress.Summary)

			workDetails.POST("/:id/verification", middleware.RequireRole("PPIC"), h.Verification.Verify)
			workDetails.GET("/:id/verification", h.Verification.Get)
			workDetails.DELETE("/:id/verification", middleware.RequireRole("PPIC"), h.Verification.Revoke)

			workDetails.POST("/:id/materials", middleware.RequireRole("PRODUCTION", "PPIC"), h.Material.AddUsage)
			workDetails.GET("/:id/materials", h.Material.ListUsage)
		}

		authorized.DELETE("/progress/:id", middleware.RequireRole("PPIC"), h.Progress.Delete)

		bastp := authorized.Group("/bastp")
		{
			bastp.GET("", h.BASTP.List)
			bastp.GET("/:id", h.BASTP.Get)
			bastp.POST("", middleware.RequireRole("PPIC"), h.BASTP.Create)
			bastp.PUT("/:id", middleware.RequireRole("PPIC"), h.BASTP.Update)
			bastp.DELETE("/:id", middleware.RequireRole("PPIC"), h.BASTP.Delete)

			bastp.POST("/:id/work-details", middleware.RequireRole("PPIC"), h.BASTP.LinkWorkDetail)
			bastp.DELETE("/:id/work-details/:workDetailId", middleware.RequireRole("PPIC"), h.BASTP.UnlinkWorkDetail)

			bastp.POST("/:id/signed-document", middleware.RequireRole("PPIC"), h.BASTP.UploadSignedDocument)
			bastp.GET("/:id/signed-document", h.BASTP.SignedDocumentURL)

			bastp.POST("/:id/general-services", middleware.RequireRole("PPIC"), h.BASTP.AddGeneralService)
		}

		authorized.PUT("/general-services/:id", middleware.RequireRole("PPIC"), h.BASTP.UpdateGeneralService)
		authorized.DELETE("/general-services/:id", middleware.RequireRole("PPIC"), h.BASTP.DeleteGeneralService)

		invoices := authorized.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.POST("", middleware.RequireRole("PPIC"), h.Invoice.Create)
			invoices.PUT("/:id", middleware.RequireRole("PPIC"), h.Invoice.Update)
			invoices.DELETE("/:id", middleware.RequireRole("PPIC"), h.Invoice.Delete)
		}

		materials := authorized.Group("/materials")
		{
			materials.GET("", h.Material.List)
			materials.GET("/:id", h.Material.Get)
			materials.POST("", middleware.RequireRole("PPIC"), h.Material.Create)
			materials.PUT("/:id", middleware.RequireRole("PPIC"), h.Material.Update)
			materials.DELETE("/:id", middleware.RequireRole("PPIC"), h.Material.Delete)
		}

		authorized.PUT("/material-usages/:id", middleware.RequireRole("PRODUCTION", "PPIC"), h.Material.UpdateUsage)
		authorized.DELETE("/material-usages/:id", middleware.RequireRole("PRODUCTION", "PPIC"), h.Material.DeleteUsage)

		serviceTypes := authorized.Group("/service-types")
		{
			serviceTypes.GET("", h.Reference.ListServiceTypes)
			serviceTypes.POST("", middleware.RequireRole("PPIC"), h.Reference.CreateServiceType)
			serviceTypes.PUT("/:id", middleware.RequireRole("PPIC"), h.Reference.UpdateServiceType)
			serviceTypes.DELETE("/:id", middleware.RequireRole("PPIC"), h.Reference.DeleteServiceType)
		}
	}
}
