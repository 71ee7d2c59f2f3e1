package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

var testTime = domain.NewTimestamp(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC))

func notFound() error {
	return &domain.APIError{Kind: domain.ErrorKindDetail, StatusCode: http.StatusNotFound, Detail: "Document not found"}
}

func sampleAnalysis(id string, score float64) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		DocumentID:   id,
		OverallScore: score,
		Summary:      "Gendered job titles.",
		AnalyzedAt:   testTime,
		BiasInstances: []domain.BiasInstance{{
			Type:        domain.BiasGender,
			Text:        "chairman",
			Explanation: "Gendered job title",
			Severity:    0.7,
			Suggestions: "chairperson",
		}},
		RAGMetadata: &domain.RAGMetadata{ContextUsed: true, NumReferenceChunks: 2, ReferenceDocuments: []string{"doc-2"}},
	}
}

// mockDocumentService knows doc-1 (analyzed) and doc-2 (not analyzed)
// and records analysis requests.
type mockDocumentService struct {
	driving.DocumentService
	requests   []domain.AnalysisRequest
	listLimit  int
	err        error
	analyzeErr error
}

func (m *mockDocumentService) Analyze(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	m.requests = append(m.requests, req)
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return sampleAnalysis(req.DocumentID, 0.42), nil
}

func (m *mockDocumentService) List(_ context.Context, skip, limit int) (*domain.DocumentList, error) {
	m.listLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	docs := []domain.Document{
		{DocumentID: "doc-1", Filename: "policy.txt", FileType: "text/plain", FileSize: 2048, UploadedAt: testTime, Analyzed: true},
		{DocumentID: "doc-2", Filename: "memo.pdf", FileType: "application/pdf", FileSize: 4096, UploadedAt: testTime},
	}
	return &domain.DocumentList{Documents: docs, Skip: skip, Limit: limit, Count: len(docs)}, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id != "doc-1" && id != "doc-2" {
		return nil, notFound()
	}
	return &domain.Document{DocumentID: id, Filename: id + ".txt", UploadedAt: testTime}, nil
}

func (m *mockDocumentService) LatestAnalysis(_ context.Context, id string) (*domain.AnalysisResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id != "doc-1" {
		return nil, notFound()
	}
	return sampleAnalysis(id, 0.75), nil
}

// mockSearchService returns canned results.
type mockSearchService struct {
	results []domain.SearchResult
	topK    int
	err     error
}

func (m *mockSearchService) Search(_ context.Context, query string, topK int) (*domain.SearchOutcome, error) {
	m.topK = topK
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SearchOutcome{Query: query, Results: m.results}, nil
}

// mockChatService echoes the question it received.
type mockChatService struct {
	driving.ChatService
	questions []domain.Question
	err       error
}

func (m *mockChatService) Answer(_ context.Context, q domain.Question) (*domain.Answer, error) {
	m.questions = append(m.questions, q)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Answer{
		Question:       q.Question,
		Answer:         "Gender bias is the most common.",
		Sources:        []domain.RAGSource{{Filename: "policy.txt", DocumentID: "doc-1", Relevance: 0.91}},
		NumSourcesUsed: 1,
	}, nil
}

// mockHistoryService returns one analyzed and one pending item.
type mockHistoryService struct {
	driving.HistoryService
	skip, limit int
	pageSize    int
	err         error
}

func (m *mockHistoryService) PageSize() int {
	return m.pageSize
}

func (m *mockHistoryService) Load(_ context.Context, skip, limit int) (*domain.History, error) {
	m.skip, m.limit = skip, limit
	if m.err != nil {
		return nil, m.err
	}
	return &domain.History{
		Skip:  skip,
		Limit: limit,
		Items: []domain.HistoryItem{
			{Document: domain.Document{DocumentID: "doc-1", Filename: "policy.txt", UploadedAt: testTime},
				LatestAnalysis: sampleAnalysis("doc-1", 0.75)},
			{Document: domain.Document{DocumentID: "doc-2", Filename: "memo.pdf"}},
		},
	}, nil
}

// mockStatsService returns fixed statistics.
type mockStatsService struct {
	driving.StatsService
	err error
}

func (m *mockStatsService) Statistics(context.Context) (*domain.SystemStatistics, error) {
	if m.err != nil {
		return nil, m.err
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

// newTestServer wires every port with a mock.
func newTestServer() (*Server, *Ports) {
	ports := &Ports{
		Document: &mockDocumentService{},
		Search:   &mockSearchService{},
		Chat:     &mockChatService{},
		History:  &mockHistoryService{pageSize: 15},
		Stats:    &mockStatsService{},
	}
	server, err := NewServer(ports)
	if err != nil {
		panic(err)
	}
	return server, ports
}
