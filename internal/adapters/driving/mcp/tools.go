package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_document tool.
type AnalyzeInput struct {
	DocumentID string   `json:"document_id" jsonschema:"the ID of an uploaded document"`
	BiasTypes  []string `json:"bias_types,omitempty" jsonschema:"bias types to look for, such as gender or political (default all)"`
	DisableRAG bool     `json:"disable_rag,omitempty" jsonschema:"skip reference context from other documents"`
}

// LatestAnalysisInput is the input schema for the latest_analysis tool.
type LatestAnalysisInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of an uploaded document"`
}

// AnalysisOutput is a bias analysis of one document.
type AnalysisOutput struct {
	DocumentID     string           `json:"document_id"`
	OverallScore   float64          `json:"overall_score"`
	Level          string           `json:"level"`
	Summary        string           `json:"summary"`
	AnalyzedAt     string           `json:"analyzed_at,omitempty"`
	RAGEnhanced    bool             `json:"rag_enhanced"`
	ReferenceDocs  []string         `json:"reference_documents,omitempty"`
	Insights       string           `json:"comparative_insights,omitempty"`
	BiasInstances  []InstanceOutput `json:"bias_instances"`
	InstancesCount int              `json:"instances_count"`
}

// InstanceOutput is one detected biased span.
type InstanceOutput struct {
	Type        string  `json:"type"`
	Text        string  `json:"text"`
	Explanation string  `json:"explanation"`
	Severity    float64 `json:"severity"`
	Suggestion  string  `json:"suggestion,omitempty"`
}

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"natural language search query"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	Question   string `json:"question" jsonschema:"question about bias patterns in the corpus"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"restrict the answer to one document"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"number of context chunks to use (default 5)"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput is a document cited by an answer.
type SourceOutput struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Relevance  float64 `json:"relevance"`
}

// HistoryInput is the input schema for the list_history tool.
type HistoryInput struct {
	Skip  int `json:"skip,omitempty" jsonschema:"number of documents to skip"`
	Limit int `json:"limit,omitempty" jsonschema:"page size (default: the configured history limit)"`
}

// HistoryOutput is the output schema for the list_history tool.
type HistoryOutput struct {
	Items    []HistoryItemOutput `json:"items"`
	Count    int                 `json:"count"`
	Analyzed int                 `json:"analyzed"`
}

// HistoryItemOutput is one document with its latest score, if any.
type HistoryItemOutput struct {
	DocumentID   string   `json:"document_id"`
	Filename     string   `json:"filename"`
	FileType     string   `json:"file_type"`
	FileSize     int64    `json:"file_size"`
	UploadedAt   string   `json:"uploaded_at,omitempty"`
	OverallScore *float64 `json:"overall_score,omitempty"`
	Level        string   `json:"level,omitempty"`
}

// StatsInput is the empty input of the get_statistics tool.
type StatsInput struct{}

// StatsOutput is the output schema for the get_statistics tool.
type StatsOutput struct {
	TotalDocuments    int            `json:"total_documents"`
	TotalAnalyses     int            `json:"total_analyses"`
	AverageBiasScore  float64        `json:"average_bias_score"`
	AverageLevel      string         `json:"average_level"`
	DatabaseConnected bool           `json:"database_connected"`
	RAGEnabled        bool           `json:"rag_enabled"`
	BiasDistribution  map[string]int `json:"bias_distribution"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_document",
		Description: "Run a bias analysis on an uploaded document and return its score and biased passages",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "latest_analysis",
		Description: "Return the most recent stored analysis of a document",
	}, s.handleLatestAnalysis)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Semantic search across all uploaded documents",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about bias patterns, answered from the document corpus",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_history",
		Description: "List uploaded documents with their latest bias score",
	}, s.handleHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_statistics",
		Description: "Document and analysis totals with the bias type distribution",
	}, s.handleStats)
}

func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	if input.DocumentID == "" {
		return nil, AnalysisOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	types := make([]domain.BiasType, 0, len(input.BiasTypes))
	for _, name := range input.BiasTypes {
		t, err := domain.ParseBiasType(name)
		if err != nil {
			return nil, AnalysisOutput{}, err
		}
		types = append(types, t)
	}

	req := domain.NewAnalysisRequest(input.DocumentID, types...)
	req.UseRAG = !input.DisableRAG

	result, err := s.ports.Document.Analyze(ctx, req)
	if err != nil {
		return nil, AnalysisOutput{}, err
	}
	return nil, analysisOutput(result), nil
}

func (s *Server) handleLatestAnalysis(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LatestAnalysisInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	if input.DocumentID == "" {
		return nil, AnalysisOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Document.LatestAnalysis(ctx, input.DocumentID)
	if err != nil {
		return nil, AnalysisOutput{}, err
	}
	return nil, analysisOutput(result), nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	outcome, err := s.ports.Search.Search(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Query:   outcome.Query,
		Results: make([]SearchResultOutput, len(outcome.Results)),
		Count:   len(outcome.Results),
	}
	for i, r := range outcome.Results {
		output.Results[i] = SearchResultOutput{
			DocumentID: r.DocumentID,
			Filename:   r.Filename,
			Score:      r.RelevanceScore,
			Content:    r.TextChunk,
		}
	}

	return nil, output, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Chat == nil {
		return nil, AskOutput{}, fmt.Errorf("%w: chat", ErrServiceUnavailable)
	}

	answer, err := s.ports.Chat.Answer(ctx, domain.Question{
		Question:   input.Question,
		DocumentID: input.DocumentID,
		TopK:       input.TopK,
	})
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Answer,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			DocumentID: src.DocumentID,
			Filename:   src.Filename,
			Relevance:  src.Relevance,
		}
	}

	return nil, output, nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.History == nil {
		return nil, HistoryOutput{}, fmt.Errorf("%w: history", ErrServiceUnavailable)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.ports.History.PageSize()
	}

	history, err := s.ports.History.Load(ctx, max(input.Skip, 0), limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Items:    make([]HistoryItemOutput, len(history.Items)),
		Count:    len(history.Items),
		Analyzed: history.AnalyzedCount(),
	}
	for i, item := range history.Items {
		doc := item.Document
		out := HistoryItemOutput{
			DocumentID: doc.DocumentID,
			Filename:   doc.Filename,
			FileType:   doc.FileType,
			FileSize:   doc.FileSize,
			UploadedAt: formatTime(doc.UploadedAt),
		}
		if item.Analyzed() {
			score := item.LatestAnalysis.OverallScore
			out.OverallScore = &score
			out.Level = domain.ScoreLabel(score)
		}
		output.Items[i] = out
	}

	return nil, output, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	if s.ports.Stats == nil {
		return nil, StatsOutput{}, fmt.Errorf("%w: statistics", ErrServiceUnavailable)
	}

	stats, err := s.ports.Stats.Statistics(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	dist := make(map[string]int, len(stats.BiasDistribution))
	for _, b := range stats.BiasDistribution {
		dist[b.Type] += b.Count
	}

	return nil, StatsOutput{
		TotalDocuments:    stats.TotalDocuments,
		TotalAnalyses:     stats.TotalAnalyses,
		AverageBiasScore:  stats.AverageBiasScore,
		AverageLevel:      domain.ScoreLabel(stats.AverageBiasScore),
		DatabaseConnected: stats.DatabaseConnected,
		RAGEnabled:        stats.RAGEnabled,
		BiasDistribution:  dist,
	}, nil
}

func analysisOutput(r *domain.AnalysisResult) AnalysisOutput {
	out := AnalysisOutput{
		DocumentID:     r.DocumentID,
		OverallScore:   r.OverallScore,
		Level:          r.Level().String(),
		Summary:        r.Summary,
		AnalyzedAt:     formatTime(r.AnalyzedAt),
		RAGEnhanced:    r.RAGEnhanced(),
		Insights:       r.ComparativeInsights,
		BiasInstances:  make([]InstanceOutput, len(r.BiasInstances)),
		InstancesCount: len(r.BiasInstances),
	}
	if r.RAGMetadata != nil {
		out.ReferenceDocs = r.RAGMetadata.ReferenceDocuments
	}
	for i, b := range r.BiasInstances {
		out.BiasInstances[i] = InstanceOutput{
			Type:        string(b.Type),
			Text:        b.Text,
			Explanation: b.Explanation,
			Severity:    b.Severity,
			Suggestion:  b.Suggestions,
		}
	}
	return out
}

func formatTime(t domain.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
