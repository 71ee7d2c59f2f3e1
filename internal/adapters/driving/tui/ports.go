// Package tui provides an interactive terminal user interface for biasctl.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ports aggregates the services the TUI tabs talk to.
type Ports struct {
	// Upload tracks the document upload shown on the analyze tab.
	Upload driving.UploadService

	// Analysis tracks the analysis shown on the analyze tab.
	Analysis driving.AnalysisService

	// Workflow uploads then analyzes a file.
	Workflow driving.WorkflowService

	// History lists documents with their latest analyses.
	History driving.HistoryService

	// Search provides semantic search.
	Search driving.SearchService

	// Chat holds the RAG conversation.
	Chat driving.ChatService

	// Stats backs the statistics tab.
	Stats driving.StatsService

	// Document is optional. It backs the search result actions and document
	// deletion on the history tab.
	Document driving.DocumentService

	// Files opens local files for upload.
	Files driven.FileSource
}

// Validate ensures the ports needed by every tab are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Upload == nil || p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Workflow == nil {
		return ErrMissingWorkflowService
	}
	if p.Files == nil {
		return ErrMissingFileSource
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	if p.Stats == nil {
		return ErrMissingStatsService
	}
	return nil
}
