package api

import (
	"context"
	"net/http"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// AskQuestion asks the RAG assistant.
func (c *Client) AskQuestion(ctx context.Context, question domain.Question) (*domain.Answer, error) {
	r, err := jsonRequest(http.MethodPost, "/rag/ask", question)
	if err != nil {
		return nil, err
	}
	var out domain.Answer
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Context returns reference chunks similar to a text.
func (c *Client) Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/rag/context", req)
	if err != nil {
		return nil, err
	}
	var out domain.ContextResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Statistics returns system-wide counts.
func (c *Client) Statistics(ctx context.Context) (*domain.SystemStatistics, error) {
	var out domain.SystemStatistics
	if err := c.do(ctx, request{method: http.MethodGet, path: "/rag/statistics"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RAGStatus returns the backend RAG configuration.
func (c *Client) RAGStatus(ctx context.Context) (*domain.RAGStatus, error) {
	var out domain.RAGStatus
	if err := c.do(ctx, request{method: http.MethodGet, path: "/rag/status"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
