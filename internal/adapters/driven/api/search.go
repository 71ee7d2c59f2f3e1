package api

import (
	"context"
	"net/http"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// Search runs a semantic search.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/search", query)
	if err != nil {
		return nil, err
	}
	var out domain.SearchResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchStats describes the vector store.
func (c *Client) SearchStats(ctx context.Context) (domain.SearchStats, error) {
	out := domain.SearchStats{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/search/stats"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
