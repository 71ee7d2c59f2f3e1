// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
//
// Results of background requests carry the generation of the view that sent
// them. A view drops any result whose generation is no longer current.
package messages

import (
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAnalyze uploads a file and shows its score card.
	ViewAnalyze
	// ViewSearch is the semantic search view.
	ViewSearch
	// ViewChat is the RAG question and answer view.
	ViewChat
	// ViewHistory lists documents with their latest analyses.
	ViewHistory
	// ViewStats is the statistics dashboard.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAnalyze:
		return "analyze"
	case ViewSearch:
		return "search"
	case ViewChat:
		return "chat"
	case ViewHistory:
		return "history"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Title returns the tab label.
func (v ViewType) Title() string {
	switch v {
	case ViewAnalyze:
		return "Upload & Analyze"
	case ViewSearch:
		return "Search"
	case ViewChat:
		return "Ask AI"
	case ViewHistory:
		return "History"
	case ViewStats:
		return "Statistics"
	case ViewHelp:
		return "Help"
	default:
		return "Menu"
	}
}

// Tabs returns the tab views in display order.
func Tabs() []ViewType {
	return []ViewType{ViewAnalyze, ViewSearch, ViewChat, ViewHistory, ViewStats}
}

// IsTab reports whether v is one of the tabs.
func (v ViewType) IsTab() bool {
	return v >= ViewAnalyze && v <= ViewStats
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CheckCompleted carries the result of an upload followed by an analysis.
type CheckCompleted struct {
	Gen    int
	Path   string
	Result *domain.CheckResult
	Err    error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Gen     int
	Outcome *domain.SearchOutcome
	Err     error
}

// AnswerReceived signals the chat service finished a question.
type AnswerReceived struct {
	Gen    int
	Answer *domain.Answer
	Err    error
}

// HistoryLoaded carries one page of the aggregated history.
type HistoryLoaded struct {
	Gen     int
	History *domain.History
	Err     error
}

// StatsLoaded carries the dashboard data. Status is nil when only the
// statistics call succeeded.
type StatsLoaded struct {
	Gen        int
	Statistics *domain.SystemStatistics
	Status     *domain.RAGStatus
	Err        error
}

// ShowAnalysis asks the app to display a stored analysis on the analyze tab.
type ShowAnalysis struct {
	Result domain.AnalysisResult
}

// DocumentDeleted signals a document was removed from the backend.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}
