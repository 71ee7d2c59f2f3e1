package driving

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// UploadService tracks a single document upload at a time.
type UploadService interface {
	// UploadFile sends a file. Returns domain.ErrOperationInProgress if an
	// upload is already pending, or a *domain.OperationError on failure.
	UploadFile(ctx context.Context, file domain.UploadFile) (*domain.UploadedDocument, error)

	// Uploading reports whether an upload is in flight.
	Uploading() bool

	// Error returns the message of the last failure, or "".
	Error() string

	// UploadedDocument returns the last uploaded document, or nil.
	UploadedDocument() *domain.UploadedDocument

	// Snapshot returns the current state record.
	Snapshot() domain.Operation[domain.UploadedDocument]

	// Reset returns the tracker to idle.
	Reset()
}

// AnalysisService tracks a single document analysis at a time.
type AnalysisService interface {
	// AnalyzeDocument runs an analysis. Returns domain.ErrOperationInProgress
	// if one is already pending, or a *domain.OperationError on failure.
	AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)

	// SetResult shows a previously fetched result without a request.
	SetResult(result domain.AnalysisResult)

	// Analyzing reports whether an analysis is in flight.
	Analyzing() bool

	// Error returns the message of the last failure, or "".
	Error() string

	// Result returns the current result, or nil.
	Result() *domain.AnalysisResult

	// Snapshot returns the current state record.
	Snapshot() domain.Operation[domain.AnalysisResult]

	// Reset returns the tracker to idle.
	Reset()
}

// WorkflowService chains upload and analysis.
type WorkflowService interface {
	// UploadAndAnalyze validates, uploads and analyzes a file. The analysis is not
	// attempted when the upload fails.
	UploadAndAnalyze(
		ctx context.Context, file domain.UploadFile, opts domain.CheckOptions,
	) (*domain.CheckResult, error)
}
