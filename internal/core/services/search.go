package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchFailed is the message shown when a search fails without a reason.
const SearchFailed = "Search failed"

// SearchService runs semantic searches.
type SearchService struct {
	api  driven.BiasAPI
	topK int
}

// NewSearchService creates a new search service with the default result count.
func NewSearchService(api driven.BiasAPI, topK int) *SearchService {
	if topK <= 0 {
		topK = domain.DefaultSearchTopK
	}
	return &SearchService{api: api, topK: topK}
}

// Search returns chunks matching query.
func (s *SearchService) Search(ctx context.Context, query string, topK int) (*domain.SearchOutcome, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = s.topK
	}

	logger.Section("Search")
	logger.Debug("Query: %q, top_k: %d", q, topK)

	resp, err := s.api.Search(ctx, domain.SearchQuery{Query: q, TopK: topK})
	if err != nil {
		return nil, failure("search", SearchFailed, err)
	}

	logger.Info("Results: %d", len(resp.Results))
	return &domain.SearchOutcome{Query: q, Results: resp.Results}, nil
}
