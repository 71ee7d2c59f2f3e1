package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// AnalyzeDocument runs a bias analysis.
func (c *Client) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	r, err := jsonRequest(http.MethodPost, "/analysis/analyze", req)
	if err != nil {
		return nil, err
	}
	var out domain.AnalysisResult
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	checkPositions(out.DocumentID, out.BiasInstances)
	return &out, nil
}

// AnalysisHistory returns up to limit analyses of one document.
func (c *Client) AnalysisHistory(ctx context.Context, documentID string, limit int) (*domain.AnalysisHistory, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var out domain.AnalysisHistory
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/analysis/history/" + pathID(documentID),
		query:  q,
	}, &out)
	if err != nil {
		return nil, err
	}
	for _, a := range out.Analyses {
		checkPositions(a.DocumentID, a.BiasInstances)
	}
	return &out, nil
}

// LatestAnalysis returns the newest analysis of a document.
func (c *Client) LatestAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	var out domain.AnalysisResult
	if err := c.do(ctx, request{method: http.MethodGet, path: "/analysis/latest/" + pathID(documentID)}, &out); err != nil {
		return nil, err
	}
	checkPositions(out.DocumentID, out.BiasInstances)
	return &out, nil
}

// AllAnalyses returns one page of analyses across all documents.
func (c *Client) AllAnalyses(ctx context.Context, skip, limit int) (*domain.AnalysisList, error) {
	var out domain.AnalysisList
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/analysis/all",
		query:  pageQuery(skip, limit),
	}, &out)
	if err != nil {
		return nil, err
	}
	for _, a := range out.Analyses {
		checkPositions(a.DocumentID, a.BiasInstances)
	}
	return &out, nil
}

// checkPositions warns about instances whose span is out of order.
func checkPositions(documentID string, instances []domain.BiasInstance) {
	if err := domain.ValidateInstances(instances); err != nil {
		logger.Warn("analysis of %s has invalid bias positions: %v", documentID, err)
	}
}
