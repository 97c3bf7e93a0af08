package service

import (
	"github.com/data-center-bgp/shipyard-ops/internal/config"
	"github.com/data-center-bgp/shipyard-ops/internal/yard/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services is the collection handed to the handlers.
type Services struct {
	Vessel       *VesselService
	WorkOrder    *WorkOrderService
	WorkDetail   *WorkDetailService
	Progress     *ProgressService
	BASTP        *BASTPService
	Invoice      *InvoiceService
	Verification *VerificationService
	Reference    *ReferenceService
	Material     *MaterialService
	Storage      *StorageService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO client init failed, file storage disabled", zap.Error(err))
			minioClient = nil
		}
	}

	storage := NewStorageService(minioClient, cfg.MinIO.Bucket, logger)
	progress := NewProgressService(repos.Progress, repos.WorkDetail)

	return &Services{
		Vessel:       NewVesselService(repos.Vessel),
		WorkOrder:    NewWorkOrderService(repos.WorkOrder, repos.Vessel),
		WorkDetail:   NewWorkDetailService(repos.WorkDetail, repos.WorkOrder, storage),
		Progress:     progress,
		BASTP:        NewBASTPService(repos.BASTP, repos.Vessel, repos.Verification, repos.Invoice, progress, storage, logger),
		Invoice:      NewInvoiceService(repos.Invoice, repos.BASTP),
		Verification: NewVerificationService(repos.Verification, repos.WorkDetail),
		Reference:    NewReferenceService(repos.ServiceType, rdb, logger),
		Material:     NewMaterialService(repos.Material, repos.WorkDetail),
		Storage:      storage,
	}
}
