package driving

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// SearchService provides semantic search to external actors.
type SearchService interface {
	// Search trims the query and returns matching chunks.
	// A blank query returns domain.ErrEmptyQuery without a request.
	// topK <= 0 selects the configured default.
	Search(ctx context.Context, query string, topK int) (*domain.SearchOutcome, error)
}

// ChatService holds a RAG conversation.
type ChatService interface {
	// Ask appends the question and the assistant's answer to the conversation.
	Ask(ctx context.Context, question string) (*domain.Answer, error)

	// AskAbout is Ask scoped to one document with an explicit topK.
	AskAbout(ctx context.Context, q domain.Question) (*domain.Answer, error)

	// Answer sends q without adding it to the conversation.
	// Concurrent calls are allowed.
	Answer(ctx context.Context, q domain.Question) (*domain.Answer, error)

	// Messages returns a copy of the conversation.
	Messages() []domain.ChatMessage

	// Asking reports whether a question is in flight.
	Asking() bool

	// Error returns the message of the last failure, or "".
	Error() string

	// SuggestedQuestions returns the starter prompts.
	SuggestedQuestions() []string

	// Reset clears the conversation.
	Reset()
}

// StatsService exposes system dashboards.
type StatsService interface {
	// Statistics returns system-wide counts.
	Statistics(ctx context.Context) (*domain.SystemStatistics, error)

	// Status returns the backend RAG configuration.
	Status(ctx context.Context) (*domain.RAGStatus, error)

	// SearchStats describes the vector store.
	SearchStats(ctx context.Context) (domain.SearchStats, error)
}
