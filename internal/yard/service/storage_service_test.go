package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestValidateDocument(t *testing.T) {
	if err := ValidateDocument("application/pdf", 1024); err != nil {
		t.Errorf("valid PDF rejected: %v", err)
	}
	if err := ValidateDocument("application/pdf", MaxDocumentSize); err != nil {
		t.Errorf("exactly 10MB must pass: %v", err)
	}
	if err := ValidateDocument("application/pdf", MaxDocumentSize+1); !errors.Is(err, ErrDocumentTooBig) {
		t.Errorf("oversized upload: got %v, want ErrDocumentTooBig", err)
	}
	if err := ValidateDocument("image/png", 1024); !errors.Is(err, ErrNotPDF) {
		t.Errorf("non-PDF upload: got %v, want ErrNotPDF", err)
	}
}

// Validation runs before any storage access: a bad upload against a
// disabled backend reports the input problem, not ErrStorageDisabled.
func TestUploadDocumentValidatesBeforeStorage(t *testing.T) {
	s := NewStorageService(nil, "", zap.NewNop())

	_, err := s.UploadDocument(context.Background(), "bastp", bytes.NewReader(nil), 100, "text/plain")
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("got %v, want ErrNotPDF", err)
	}

	_, err = s.UploadDocument(context.Background(), "bastp", bytes.NewReader(nil), 100, "application/pdf")
	if !errors.Is(err, ErrStorageDisabled) {
		t.Errorf("got %v, want ErrStorageDisabled", err)
	}
}
