package driving

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// DocumentService manages uploaded documents and their analyses.
type DocumentService interface {
	// List returns one page of documents.
	List(ctx context.Context, skip, limit int) (*domain.DocumentList, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Delete removes a document.
	Delete(ctx context.Context, documentID string) error

	// LatestAnalysis returns the newest analysis of a document.
	LatestAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error)

	// Analyze runs one analysis without recording it anywhere.
	// Unlike AnalysisService it accepts concurrent calls.
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)

	// AllAnalyses returns one page of analyses across documents.
	AllAnalyses(ctx context.Context, skip, limit int) (*domain.AnalysisList, error)

	// Context returns reference chunks similar to a text.
	Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error)
}
