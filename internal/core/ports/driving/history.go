package driving

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// HistoryService composes documents with their latest analyses.
type HistoryService interface {
	// Load returns one page of documents, each paired with its latest
	// analysis when it has one. Only the page fetch can fail.
	Load(ctx context.Context, skip, limit int) (*domain.History, error)

	// AnalysesFor returns the stored analyses of one document.
	AnalysesFor(ctx context.Context, documentID string, limit int) (*domain.AnalysisHistory, error)

	// PageSize returns the configured page size used when limit <= 0.
	PageSize() int
}
