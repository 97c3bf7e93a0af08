package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	// MaxDocumentSize is the upload ceiling for yard documents (10 MB).
	MaxDocumentSize = 10_485_760
	// DocumentContentType is the only accepted upload content type.
	DocumentContentType = "application/pdf"
	// presignExpiry bounds the lifetime of view/download links.
	presignExpiry = 15 * time.Minute
)

var (
	ErrStorageDisabled = errors.New("object storage is not configured")
	ErrNotPDF          = errors.New("only application/pdf uploads are accepted")
	ErrDocumentTooBig  = errors.New("document exceeds the 10MB limit")
)

// ValidateDocument checks an upload before any storage call is made.
func ValidateDocument(contentType string, size int64) error {
	if contentType != DocumentContentType {
		return ErrNotPDF
	}
	if size > MaxDocumentSize {
		return ErrDocumentTooBig
	}
	return nil
}

// StorageService wraps the MinIO client for yard documents: BASTP signed
// documents and work permit (PTW) files.
type StorageService struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewStorageService(client *minio.Client, bucket string, logger *zap.Logger) *StorageService {
	return &StorageService{client: client, bucket: bucket, logger: logger}
}

// UploadDocument validates and stores a PDF under prefix/yyyy/mm/dd/<uuid>.pdf
// and returns the object path.
func (s *StorageService) UploadDocument(ctx context.Context, prefix string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := ValidateDocument(contentType, size); err != nil {
		return "", err
	}
	if s.client == nil {
		return "", ErrStorageDisabled
	}

	objectName := fmt.Sprintf("%s/%s/%s.pdf", prefix, time.Now().Format("2006/01/02"), uuid.New().String()[:8])
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	return objectName, nil
}

// PresignedURL returns a time-limited GET URL for viewing a stored document.
func (s *StorageService) PresignedURL(ctx context.Context, objectName string) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign document: %w", err)
	}
	return u.String(), nil
}

// RemoveQuietly deletes a superseded object best-effort. Failures are logged
// and swallowed; the caller's primary operation must not fail on cleanup.
func (s *StorageService) RemoveQuietly(ctx context.Context, objectName string) {
	if s.client == nil || objectName == "" {
		return
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Warn("Failed to delete superseded document",
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}
