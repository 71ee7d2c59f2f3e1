package domain

import "time"

// Config keys understood by the settings service.
const (
	KeyAPIURL               = "api.url"
	KeyAPITimeoutSeconds    = "api.timeout_seconds"
	KeyAPIRequestsPerSecond = "api.requests_per_second"
	KeyHistoryConcurrency   = "history.concurrency"
	KeyHistoryLimit         = "history.limit"
	KeySearchTopK           = "search.top_k"
	KeyRAGTopK              = "rag.top_k"
)

// Environment variables consulted before the config file.
const (
	EnvAPIURL       = "BIASCTL_API_URL"
	EnvLegacyAPIURL = "NEXT_PUBLIC_API_URL"
)

// Defaults.
const (
	DefaultAPIURL             = "http://localhost:8000"
	DefaultTimeout            = 30 * time.Second
	DefaultHistoryConcurrency = 8
	DefaultHistoryLimit       = 20
	DefaultSearchTopK         = 10
	DefaultRAGTopK            = 5
	DefaultContextTopK        = 5
	DefaultAnalysisHistory    = 10
)

// ClientSettings holds the resolved client configuration.
type ClientSettings struct {
	// APIURL is the backend origin, without the /api/v1 suffix.
	APIURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests; zero disables throttling.
	RequestsPerSecond float64

	// HistoryConcurrency bounds the per-document analysis fan-out.
	HistoryConcurrency int

	// HistoryLimit is the default history page size.
	HistoryLimit int

	// SearchTopK is the default number of search results.
	SearchTopK int

	// RAGTopK is the default number of context chunks for questions.
	RAGTopK int
}

// DefaultClientSettings returns settings with every default applied.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		APIURL:             DefaultAPIURL,
		Timeout:            DefaultTimeout,
		HistoryConcurrency: DefaultHistoryConcurrency,
		HistoryLimit:       DefaultHistoryLimit,
		SearchTopK:         DefaultSearchTopK,
		RAGTopK:            DefaultRAGTopK,
	}
}
