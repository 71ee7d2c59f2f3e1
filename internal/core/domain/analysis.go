package domain

import (
	"errors"
	"fmt"
	"strings"
)

// BiasType is a category of detected bias.
type BiasType string

// Bias types recognised by the backend.
const (
	BiasGender       BiasType = "gender"
	BiasPolitical    BiasType = "political"
	BiasCultural     BiasType = "cultural"
	BiasConfirmation BiasType = "confirmation"
	BiasSelection    BiasType = "selection"
	BiasAnchoring    BiasType = "anchoring"
	BiasOther        BiasType = "other"
)

// AllBiasTypes returns every bias type in display order.
func AllBiasTypes() []BiasType {
	return []BiasType{
		BiasGender,
		BiasPolitical,
		BiasCultural,
		BiasConfirmation,
		BiasSelection,
		BiasAnchoring,
		BiasOther,
	}
}

// ParseBiasType converts a case-insensitive name into a BiasType.
func ParseBiasType(s string) (BiasType, error) {
	name := BiasType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllBiasTypes() {
		if t == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBiasType, s)
}

// BiasInstance is one detected biased span within a document.
type BiasInstance struct {
	Type             BiasType `json:"type"`
	Text             string   `json:"text"`
	Explanation      string   `json:"explanation"`
	Severity         float64  `json:"severity"`
	StartPosition    int      `json:"start_position"`
	EndPosition      int      `json:"end_position"`
	Suggestions      string   `json:"suggestions,omitempty"`
	SeenInReferences bool     `json:"seen_in_references,omitempty"`
}

// Validate checks 0 <= StartPosition <= EndPosition.
func (b BiasInstance) Validate() error {
	if b.StartPosition < 0 || b.StartPosition > b.EndPosition {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidPosition, b.StartPosition, b.EndPosition)
	}
	return nil
}

// ValidateInstances joins the position errors of every invalid instance.
func ValidateInstances(instances []BiasInstance) error {
	var errs []error
	for i, inst := range instances {
		if err := inst.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("instance %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// RAGMetadata describes the reference context used during an analysis.
type RAGMetadata struct {
	ContextUsed        bool     `json:"context_used"`
	NumReferenceChunks int      `json:"num_reference_chunks"`
	ReferenceDocuments []string `json:"reference_documents"`
}

// AnalysisResult is a bias analysis of one document.
type AnalysisResult struct {
	DocumentID          string         `json:"document_id"`
	OverallScore        float64        `json:"overall_score"`
	BiasInstances       []BiasInstance `json:"bias_instances"`
	Summary             string         `json:"summary"`
	AnalyzedAt          Timestamp      `json:"analyzed_at"`
	RAGMetadata         *RAGMetadata   `json:"rag_metadata,omitempty"`
	ComparativeInsights string         `json:"comparative_insights,omitempty"`
}

// Level returns the score category of the overall score.
func (r *AnalysisResult) Level() ScoreLevel {
	return LevelForScore(r.OverallScore)
}

// RAGEnhanced reports whether reference context was used.
func (r *AnalysisResult) RAGEnhanced() bool {
	return r.RAGMetadata != nil && r.RAGMetadata.ContextUsed
}

// AnalysisRequest asks the backend to analyze a document.
type AnalysisRequest struct {
	DocumentID string     `json:"document_id"`
	BiasTypes  []BiasType `json:"bias_types,omitempty"`
	UseRAG     bool       `json:"use_rag"`
}

// NewAnalysisRequest builds a request with RAG enabled, the client default.
func NewAnalysisRequest(documentID string, biasTypes ...BiasType) AnalysisRequest {
	return AnalysisRequest{
		DocumentID: documentID,
		BiasTypes:  biasTypes,
		UseRAG:     true,
	}
}

// AnalysisHistoryItem is one stored analysis.
type AnalysisHistoryItem struct {
	AnalysisID    string         `json:"analysis_id,omitempty"`
	DocumentID    string         `json:"document_id"`
	Filename      string         `json:"filename"`
	OverallScore  float64        `json:"overall_score"`
	Summary       string         `json:"summary"`
	AnalyzedAt    Timestamp      `json:"analyzed_at"`
	BiasInstances []BiasInstance `json:"bias_instances"`
	RAGMetadata   *RAGMetadata   `json:"rag_metadata,omitempty"`
}

// AnalysisHistory lists the analyses of one document, newest first.
type AnalysisHistory struct {
	DocumentID string                `json:"document_id"`
	Analyses   []AnalysisHistoryItem `json:"analyses"`
	TotalCount int                   `json:"total_count"`
}

// AnalysisList is one page of analyses across all documents.
type AnalysisList struct {
	Analyses []AnalysisHistoryItem `json:"analyses"`
	Skip     int                   `json:"skip"`
	Limit    int                   `json:"limit"`
	Count    int                   `json:"count"`
}
