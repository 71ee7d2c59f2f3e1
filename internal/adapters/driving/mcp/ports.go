package mcp

import (
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
// Tool calls use the stateless methods only; the UI trackers are not shared.
type Ports struct {
	// Document runs analyses and reads document metadata and stored analyses.
	Document driving.DocumentService

	// Search provides semantic search.
	Search driving.SearchService

	// Chat answers questions from the corpus.
	Chat driving.ChatService

	// History aggregates documents with their latest analysis.
	History driving.HistoryService

	// Stats reports system statistics.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
// Chat, History and Stats are optional; their tools and resources report
// ErrServiceUnavailable when missing.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
