package driven

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// BiasAPI is the bias-detection backend.
// Every method returns a *domain.APIError on failure.
type BiasAPI interface {
	// UploadDocument sends a file as multipart form data.
	UploadDocument(ctx context.Context, file domain.UploadFile) (*domain.UploadedDocument, error)

	// ListDocuments returns one page of uploaded documents.
	ListDocuments(ctx context.Context, skip, limit int) (*domain.DocumentList, error)

	// GetDocument returns the metadata of one document.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)

	// DeleteDocument removes a document and its analyses.
	DeleteDocument(ctx context.Context, documentID string) error

	// AnalyzeDocument runs a bias analysis.
	AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)

	// AnalysisHistory returns up to limit analyses of one document.
	AnalysisHistory(ctx context.Context, documentID string, limit int) (*domain.AnalysisHistory, error)

	// LatestAnalysis returns the newest analysis of a document.
	// Fails when the document has never been analyzed.
	LatestAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error)

	// AllAnalyses returns one page of analyses across all documents.
	AllAnalyses(ctx context.Context, skip, limit int) (*domain.AnalysisList, error)

	// Search runs a semantic search.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResponse, error)

	// SearchStats describes the vector store.
	SearchStats(ctx context.Context) (domain.SearchStats, error)

	// AskQuestion asks the RAG assistant.
	AskQuestion(ctx context.Context, question domain.Question) (*domain.Answer, error)

	// Context returns reference chunks similar to a text.
	Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error)

	// Statistics returns system-wide counts.
	Statistics(ctx context.Context) (*domain.SystemStatistics, error)

	// RAGStatus returns the backend RAG configuration.
	RAGStatus(ctx context.Context) (*domain.RAGStatus, error)
}
