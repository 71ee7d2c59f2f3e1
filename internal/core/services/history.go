package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryFailed is the message shown when the history page cannot be loaded.
const HistoryFailed = "Failed to load history"

// HistoryService joins documents with their latest analyses.
type HistoryService struct {
	api         driven.BiasAPI
	concurrency int
	limit       int
}

// NewHistoryService creates a new history service.
// concurrency bounds the analysis fetches; limit is the default page size.
func NewHistoryService(api driven.BiasAPI, concurrency, limit int) *HistoryService {
	if concurrency <= 0 {
		concurrency = domain.DefaultHistoryConcurrency
	}
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &HistoryService{api: api, concurrency: concurrency, limit: limit}
}

// PageSize returns the default page size.
func (s *HistoryService) PageSize() int {
	return s.limit
}

// Load fetches a page of documents and, for every analyzed one, its latest
// analysis. A failed analysis fetch leaves that item without an analysis.
// The result keeps the page order.
func (s *HistoryService) Load(ctx context.Context, skip, limit int) (*domain.History, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = s.limit
	}

	logger.Section("History")
	page, err := s.api.ListDocuments(ctx, skip, limit)
	if err != nil {
		return nil, failure("history", HistoryFailed, err)
	}

	items := make([]domain.HistoryItem, len(page.Documents))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, doc := range page.Documents {
		items[i] = domain.HistoryItem{Document: doc}
		if !doc.Analyzed {
			continue
		}
		g.Go(func() error {
			analysis, err := s.api.LatestAnalysis(ctx, doc.DocumentID)
			if err != nil {
				logger.Debug("Latest analysis of %s unavailable: %v", doc.DocumentID, err)
				return nil
			}
			items[i].LatestAnalysis = analysis
			return nil
		})
	}
	_ = g.Wait()

	h := &domain.History{Items: items, Skip: skip, Limit: limit}
	logger.Info("History: %d documents, %d with analysis", len(items), h.AnalyzedCount())
	return h, nil
}

// AnalysesFor returns the stored analyses of one document.
func (s *HistoryService) AnalysesFor(ctx context.Context, documentID string, limit int) (*domain.AnalysisHistory, error) {
	if limit <= 0 {
		limit = domain.DefaultAnalysisHistory
	}
	h, err := s.api.AnalysisHistory(ctx, documentID, limit)
	if err != nil {
		return nil, failure("analysis history", HistoryFailed, err)
	}
	return h, nil
}
