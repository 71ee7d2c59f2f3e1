package services

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisFailed is the message shown when an analysis fails without a reason.
const AnalysisFailed = "Failed to analyze document"

// AnalysisService tracks document analyses.
// A failed analysis keeps the previous result.
type AnalysisService struct {
	api     driven.BiasAPI
	tracker tracker[domain.AnalysisResult]
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(api driven.BiasAPI) *AnalysisService {
	return &AnalysisService{api: api}
}

// AnalyzeDocument sends req as given. Callers build it with
// domain.NewAnalysisRequest to get RAG enabled.
func (s *AnalysisService) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	return s.tracker.run(ctx, "analyze", AnalysisFailed, func(ctx context.Context) (*domain.AnalysisResult, error) {
		return s.api.AnalyzeDocument(ctx, req)
	})
}

// SetResult shows a previously fetched result without a request.
func (s *AnalysisService) SetResult(result domain.AnalysisResult) {
	s.tracker.update(func(o domain.Operation[domain.AnalysisResult]) domain.Operation[domain.AnalysisResult] {
		return o.WithData(result)
	})
}

// Analyzing reports whether an analysis is in flight.
func (s *AnalysisService) Analyzing() bool {
	return s.tracker.snapshot().InFlight()
}

// Error returns the message of the last failure, or "".
func (s *AnalysisService) Error() string {
	return s.tracker.snapshot().Err
}

// Result returns the current result, or nil.
func (s *AnalysisService) Result() *domain.AnalysisResult {
	return s.tracker.snapshot().Data
}

// Snapshot returns the current state record.
func (s *AnalysisService) Snapshot() domain.Operation[domain.AnalysisResult] {
	return s.tracker.snapshot()
}

// Reset returns the tracker to idle.
func (s *AnalysisService) Reset() {
	s.tracker.update(func(o domain.Operation[domain.AnalysisResult]) domain.Operation[domain.AnalysisResult] {
		return o.Reset()
	})
}
