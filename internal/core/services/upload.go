package services

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadFailed is the message shown when an upload fails without a reason.
const UploadFailed = "Failed to upload file"

// UploadService tracks document uploads.
type UploadService struct {
	api     driven.BiasAPI
	tracker tracker[domain.UploadedDocument]
}

// NewUploadService creates a new upload service.
func NewUploadService(api driven.BiasAPI) *UploadService {
	return &UploadService{api: api}
}

// UploadFile validates and sends a file.
func (s *UploadService) UploadFile(ctx context.Context, file domain.UploadFile) (*domain.UploadedDocument, error) {
	return s.tracker.run(ctx, "upload", UploadFailed, func(ctx context.Context) (*domain.UploadedDocument, error) {
		if err := domain.ValidateUpload(file.Name, file.Size); err != nil {
			return nil, err
		}
		return s.api.UploadDocument(ctx, file)
	})
}

// Uploading reports whether an upload is in flight.
func (s *UploadService) Uploading() bool {
	return s.tracker.snapshot().InFlight()
}

// Error returns the message of the last failure, or "".
func (s *UploadService) Error() string {
	return s.tracker.snapshot().Err
}

// UploadedDocument returns the last uploaded document, or nil.
func (s *UploadService) UploadedDocument() *domain.UploadedDocument {
	return s.tracker.snapshot().Data
}

// Snapshot returns the current state record.
func (s *UploadService) Snapshot() domain.Operation[domain.UploadedDocument] {
	return s.tracker.snapshot()
}

// Reset returns the tracker to idle.
func (s *UploadService) Reset() {
	s.tracker.update(func(o domain.Operation[domain.UploadedDocument]) domain.Operation[domain.UploadedDocument] {
		return o.Reset()
	})
}
