package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/biasctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/biasctl/internal/adapters/driven/files"
	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/services"
)

var testTime = domain.NewTimestamp(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC))

// mockBiasAPI is a canned backend with two documents.
// doc-1 has been analyzed, doc-2 has not.
type mockBiasAPI struct {
	mu        sync.Mutex
	uploaded  []domain.UploadFile
	requests  []domain.AnalysisRequest
	questions []domain.Question
	deleted   []string
	failAll   error
}

var _ driven.BiasAPI = (*mockBiasAPI)(nil)

func notFound(detail string) error {
	return &domain.APIError{Kind: domain.ErrorKindDetail, StatusCode: http.StatusNotFound, Detail: detail}
}

func testDocuments() []domain.Document {
	return []domain.Document{
		{DocumentID: "doc-1", Filename: "policy.txt", FileType: "text/plain", FileSize: 2048,
			UploadedAt: testTime, Analyzed: true, AnalysisID: "an-1"},
		{DocumentID: "doc-2", Filename: "memo.pdf", FileType: "application/pdf", FileSize: 4096,
			UploadedAt: testTime},
	}
}

func testAnalysis(id string, score float64) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		DocumentID:   id,
		OverallScore: score,
		Summary:      "The document uses gendered job titles.",
		AnalyzedAt:   testTime,
		BiasInstances: []domain.BiasInstance{{
			Type:        domain.BiasGender,
			Text:        "chairman",
			Explanation: "Gendered job title",
			Severity:    0.7,
			Suggestions: "chairperson",
		}},
		RAGMetadata: &domain.RAGMetadata{ContextUsed: true, NumReferenceChunks: 3, ReferenceDocuments: []string{"doc-2"}},
	}
}

func (m *mockBiasAPI) UploadDocument(_ context.Context, f domain.UploadFile) (*domain.UploadedDocument, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	if _, err := io.Copy(io.Discard, f.Content); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.uploaded = append(m.uploaded, f)
	m.mu.Unlock()
	return &domain.UploadedDocument{
		DocumentID: "doc-3",
		Filename:   f.Name,
		FileSize:   f.Size,
		FileType:   f.ContentType,
		UploadedAt: testTime,
	}, nil
}

func (m *mockBiasAPI) ListDocuments(_ context.Context, skip, limit int) (*domain.DocumentList, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	docs := testDocuments()
	if skip >= len(docs) {
		docs = nil
	} else {
		docs = docs[skip:]
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return &domain.DocumentList{Documents: docs, Skip: skip, Limit: limit, Count: len(docs)}, nil
}

func (m *mockBiasAPI) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	for _, d := range testDocuments() {
		if d.DocumentID == id {
			return &d, nil
		}
	}
	return nil, notFound("Document not found")
}

func (m *mockBiasAPI) DeleteDocument(_ context.Context, id string) error {
	if id != "doc-1" && id != "doc-2" {
		return notFound("Document not found")
	}
	m.mu.Lock()
	m.deleted = append(m.deleted, id)
	m.mu.Unlock()
	return nil
}

func (m *mockBiasAPI) AnalyzeDocument(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return testAnalysis(req.DocumentID, 0.42), nil
}

func (m *mockBiasAPI) AnalysisHistory(_ context.Context, id string, _ int) (*domain.AnalysisHistory, error) {
	if id != "doc-1" {
		return &domain.AnalysisHistory{DocumentID: id}, nil
	}
	a := testAnalysis(id, 0.75)
	return &domain.AnalysisHistory{
		DocumentID: id,
		TotalCount: 1,
		Analyses: []domain.AnalysisHistoryItem{{
			AnalysisID:    "an-1",
			DocumentID:    id,
			Filename:      "policy.txt",
			OverallScore:  a.OverallScore,
			Summary:       a.Summary,
			AnalyzedAt:    a.AnalyzedAt,
			BiasInstances: a.BiasInstances,
			RAGMetadata:   a.RAGMetadata,
		}},
	}, nil
}

func (m *mockBiasAPI) LatestAnalysis(_ context.Context, id string) (*domain.AnalysisResult, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	if id == "doc-1" {
		return testAnalysis(id, 0.75), nil
	}
	return nil, notFound("No analysis found for this document")
}

func (m *mockBiasAPI) AllAnalyses(_ context.Context, skip, limit int) (*domain.AnalysisList, error) {
	h, _ := m.AnalysisHistory(context.Background(), "doc-1", limit)
	return &domain.AnalysisList{Analyses: h.Analyses, Skip: skip, Limit: limit, Count: len(h.Analyses)}, nil
}

func (m *mockBiasAPI) Search(_ context.Context, q domain.SearchQuery) (*domain.SearchResponse, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	if q.Query == "nothing" {
		return &domain.SearchResponse{Query: q.Query}, nil
	}
	return &domain.SearchResponse{
		Query:        q.Query,
		TotalResults: 1,
		Results: []domain.SearchResult{{
			DocumentID:     "doc-1",
			Filename:       "policy.txt",
			TextChunk:      "The chairman will appoint a new board.",
			RelevanceScore: 0.87,
		}},
	}, nil
}

func (m *mockBiasAPI) SearchStats(context.Context) (domain.SearchStats, error) {
	return domain.SearchStats{"total_vectors": float64(128), "collection": "documents"}, nil
}

func (m *mockBiasAPI) AskQuestion(_ context.Context, q domain.Question) (*domain.Answer, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	m.mu.Lock()
	m.questions = append(m.questions, q)
	m.mu.Unlock()
	return &domain.Answer{
		Question:       q.Question,
		Answer:         "Gender bias is the most common.",
		Sources:        []domain.RAGSource{{Filename: "policy.txt", DocumentID: "doc-1", Relevance: 0.91}},
		NumSourcesUsed: 1,
	}, nil
}

func (m *mockBiasAPI) Context(_ context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
	return &domain.ContextResponse{
		ContextChunks: []domain.ContextChunk{{
			Text: "Similar wording in " + req.Text, Filename: "memo.pdf", RelevanceScore: 0.66, DocumentID: "doc-2",
		}},
		TotalFound: 1,
	}, nil
}

func (m *mockBiasAPI) Statistics(context.Context) (*domain.SystemStatistics, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	return &domain.SystemStatistics{
		TotalDocuments:    2,
		TotalAnalyses:     5,
		AverageBiasScore:  0.35,
		DatabaseConnected: true,
		RAGEnabled:        true,
		BiasDistribution: []domain.BiasDistribution{
			{Type: "gender", Count: 4},
			{Type: "political", Count: 2},
		},
	}, nil
}

func (m *mockBiasAPI) RAGStatus(context.Context) (*domain.RAGStatus, error) {
	return &domain.RAGStatus{
		RAGEnabled:         true,
		DatabaseConnected:  true,
		MaxContextChunks:   5,
		RelevanceThreshold: 0.7,
		EmbeddingModel:     "nomic-embed-text",
		AnalysisModel:      "llama3",
		VectorDB:           "pgvector",
	}, nil
}

// testAPI is the backend used by the current test, set by setupTestServices.
var testAPI *mockBiasAPI

// setupTestServices wires real services over a canned backend and returns a
// cleanup function that restores the previous state.
func setupTestServices() func() {
	oldUpload, oldAnalysis, oldWorkflow := uploadService, analysisService, workflowService
	oldHistory, oldSearch, oldChat := historyService, searchService, chatService
	oldStats, oldDocument, oldSettings := statsService, documentService, settingsService
	oldFiles, oldText, oldGatherer := fileSource, textExtractor, metricsGatherer

	dir, err := os.MkdirTemp("", "biasctl-cli-*")
	if err != nil {
		panic(err)
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		panic(err)
	}

	testAPI = &mockBiasAPI{}
	uploads := services.NewUploadService(testAPI)
	analyses := services.NewAnalysisService(testAPI)
	SetServices(Services{
		Upload:   uploads,
		Analysis: analyses,
		Workflow: services.NewWorkflowService(uploads, analyses),
		History:  services.NewHistoryService(testAPI, 4, 20),
		Search:   services.NewSearchService(testAPI, 10),
		Chat:     services.NewChatService(testAPI, 5),
		Stats:    services.NewStatsService(testAPI),
		Document: services.NewDocumentService(testAPI),
		Settings: services.NewSettingsService(store),
		Files:    files.NewSource(),
		Text:     files.NewSource(),
	})

	return func() {
		uploadService, analysisService, workflowService = oldUpload, oldAnalysis, oldWorkflow
		historyService, searchService, chatService = oldHistory, oldSearch, oldChat
		statsService, documentService, settingsService = oldStats, oldDocument, oldSettings
		fileSource, textExtractor, metricsGatherer = oldFiles, oldText, oldGatherer
		contextFile = ""
		outputFormat = formatTable
		os.RemoveAll(dir)
	}
}

// writeTestFile creates a file in a fresh temp dir and returns its path.
func writeTestFile(name string, data []byte) (string, func()) {
	dir, err := os.MkdirTemp("", "biasctl-file-*")
	if err != nil {
		panic(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		panic(err)
	}
	return path, func() { os.RemoveAll(dir) }
}
