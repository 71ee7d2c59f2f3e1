package services

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// Ensure WorkflowService implements the interface.
var _ driving.WorkflowService = (*WorkflowService)(nil)

// WorkflowService chains the upload and analysis trackers.
type WorkflowService struct {
	uploads  driving.UploadService
	analyses driving.AnalysisService
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(uploads driving.UploadService, analyses driving.AnalysisService) *WorkflowService {
	return &WorkflowService{uploads: uploads, analyses: analyses}
}

// UploadAndAnalyze uploads file and analyzes the uploaded document.
// The analysis is not attempted when the upload fails.
func (s *WorkflowService) UploadAndAnalyze(
	ctx context.Context, file domain.UploadFile, opts domain.CheckOptions,
) (*domain.CheckResult, error) {
	logger.Section("Check " + file.Name)

	doc, err := s.uploads.UploadFile(ctx, file)
	if err != nil {
		return nil, err
	}
	logger.Info("Uploaded %s as %s", doc.Filename, doc.DocumentID)

	result, err := s.analyses.AnalyzeDocument(ctx, opts.AnalysisRequest(doc.DocumentID))
	if err != nil {
		return nil, err
	}
	logger.Info("Analyzed %s: %.2f", doc.DocumentID, result.OverallScore)

	return &domain.CheckResult{Document: *doc, Analysis: *result}, nil
}
