package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// Fallback messages for document operations.
const (
	DocumentsFailed = "Failed to load documents"
	DeleteFailed    = "Failed to delete document"
	ContextFailed   = "Failed to load context"
)

// DocumentService manages uploaded documents.
type DocumentService struct {
	api driven.BiasAPI
}

// NewDocumentService creates a new document service.
func NewDocumentService(api driven.BiasAPI) *DocumentService {
	return &DocumentService{api: api}
}

// List returns one page of documents.
func (s *DocumentService) List(ctx context.Context, skip, limit int) (*domain.DocumentList, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	list, err := s.api.ListDocuments(ctx, skip, limit)
	if err != nil {
		return nil, failure("list documents", DocumentsFailed, err)
	}
	return list, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if err := requireID(documentID); err != nil {
		return nil, err
	}
	doc, err := s.api.GetDocument(ctx, documentID)
	if err != nil {
		return nil, failure("get document", DocumentsFailed, err)
	}
	return doc, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if err := requireID(documentID); err != nil {
		return err
	}
	if err := s.api.DeleteDocument(ctx, documentID); err != nil {
		return failure("delete document", DeleteFailed, err)
	}
	return nil
}

// LatestAnalysis returns the newest analysis of a document.
func (s *DocumentService) LatestAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	if err := requireID(documentID); err != nil {
		return nil, err
	}
	result, err := s.api.LatestAnalysis(ctx, documentID)
	if err != nil {
		return nil, failure("latest analysis", AnalysisFailed, err)
	}
	return result, nil
}

// Analyze runs req directly. It keeps no state and accepts concurrent calls.
func (s *DocumentService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if err := requireID(req.DocumentID); err != nil {
		return nil, err
	}
	result, err := s.api.AnalyzeDocument(ctx, req)
	if err == nil && result == nil {
		err = errEmptyResponse
	}
	if err != nil {
		return nil, failure("analyze", AnalysisFailed, err)
	}
	return result, nil
}

// AllAnalyses returns one page of analyses across documents.
func (s *DocumentService) AllAnalyses(ctx context.Context, skip, limit int) (*domain.AnalysisList, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	list, err := s.api.AllAnalyses(ctx, skip, limit)
	if err != nil {
		return nil, failure("all analyses", HistoryFailed, err)
	}
	return list, nil
}

// Context returns reference chunks similar to req.Text.
func (s *DocumentService) Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return nil, domain.ErrEmptyQuery
	}
	if req.TopK <= 0 {
		req.TopK = domain.DefaultContextTopK
	}
	resp, err := s.api.Context(ctx, req)
	if err != nil {
		return nil, failure("context", ContextFailed, err)
	}
	return resp, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}
	return nil
}
