package domain

import "fmt"

// SearchQuery is a semantic search request.
type SearchQuery struct {
	Query  string         `json:"query"`
	TopK   int            `json:"top_k,omitempty"`
	Filter map[string]any `json:"filter,omitempty"`
}

// SearchResult is a single search hit.
type SearchResult struct {
	DocumentID     string         `json:"document_id"`
	Filename       string         `json:"filename"`
	TextChunk      string         `json:"text_chunk"`
	RelevanceScore float64        `json:"relevance_score"`
	Metadata       map[string]any `json:"metadata"`
}

// SearchResponse is the backend answer to a search.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
}

// SearchOutcome pairs the submitted query with its results.
type SearchOutcome struct {
	Query   string
	Results []SearchResult
}

// Empty reports whether the search found nothing.
func (o SearchOutcome) Empty() bool {
	return len(o.Results) == 0
}

// EmptyMessage is shown when a search found nothing.
func (o SearchOutcome) EmptyMessage() string {
	return fmt.Sprintf(`No results found for "%s"`, o.Query)
}

// SearchStats describes the vector store. Keys vary by backend store.
type SearchStats map[string]any

// TotalVectors returns the stored vector count, or 0 if not reported.
func (s SearchStats) TotalVectors() int {
	switch v := s["total_vectors"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
