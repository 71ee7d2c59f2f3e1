package services

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
)

// mockAPI implements driven.BiasAPI with overridable functions.
// Unset functions return a 500 status error.
type mockAPI struct {
	uploadFn      func(ctx context.Context, file domain.UploadFile) (*domain.UploadedDocument, error)
	listFn        func(ctx context.Context, skip, limit int) (*domain.DocumentList, error)
	getFn         func(ctx context.Context, id string) (*domain.Document, error)
	deleteFn      func(ctx context.Context, id string) error
	analyzeFn     func(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	historyFn     func(ctx context.Context, id string, limit int) (*domain.AnalysisHistory, error)
	latestFn      func(ctx context.Context, id string) (*domain.AnalysisResult, error)
	allFn         func(ctx context.Context, skip, limit int) (*domain.AnalysisList, error)
	searchFn      func(ctx context.Context, q domain.SearchQuery) (*domain.SearchResponse, error)
	searchStatsFn func(ctx context.Context) (domain.SearchStats, error)
	askFn         func(ctx context.Context, q domain.Question) (*domain.Answer, error)
	contextFn     func(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error)
	statisticsFn  func(ctx context.Context) (*domain.SystemStatistics, error)
	statusFn      func(ctx context.Context) (*domain.RAGStatus, error)
}

var _ driven.BiasAPI = (*mockAPI)(nil)

func errStatus(code int) error {
	return &domain.APIError{Kind: domain.ErrorKindStatus, StatusCode: code}
}

func errDetail(code int, detail string) error {
	return &domain.APIError{Kind: domain.ErrorKindDetail, StatusCode: code, Detail: detail}
}

func (m *mockAPI) UploadDocument(ctx context.Context, file domain.UploadFile) (*domain.UploadedDocument, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, file)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) ListDocuments(ctx context.Context, skip, limit int) (*domain.DocumentList, error) {
	if m.listFn != nil {
		return m.listFn(ctx, skip, limit)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) DeleteDocument(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errStatus(500)
}

func (m *mockAPI) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, req)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) AnalysisHistory(ctx context.Context, id string, limit int) (*domain.AnalysisHistory, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, id, limit)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) LatestAnalysis(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, id)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) AllAnalyses(ctx context.Context, skip, limit int) (*domain.AnalysisList, error) {
	if m.allFn != nil {
		return m.allFn(ctx, skip, limit)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResponse, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) SearchStats(ctx context.Context) (domain.SearchStats, error) {
	if m.searchStatsFn != nil {
		return m.searchStatsFn(ctx)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) AskQuestion(ctx context.Context, q domain.Question) (*domain.Answer, error) {
	if m.askFn != nil {
		return m.askFn(ctx, q)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
	if m.contextFn != nil {
		return m.contextFn(ctx, req)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) Statistics(ctx context.Context) (*domain.SystemStatistics, error) {
	if m.statisticsFn != nil {
		return m.statisticsFn(ctx)
	}
	return nil, errStatus(500)
}

func (m *mockAPI) RAGStatus(ctx context.Context) (*domain.RAGStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return nil, errStatus(500)
}
