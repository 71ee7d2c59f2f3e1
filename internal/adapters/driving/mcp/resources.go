package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

const (
	uriScheme    = "biasctl://"
	mimeJSON     = "application/json"
	analysisPath = "/analysis"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "First page of uploaded documents",
		MIMEType:    mimeJSON,
	}, s.handleDocumentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "statistics",
		Name:        "statistics",
		Description: "Document and analysis totals",
		MIMEType:    mimeJSON,
	}, s.handleStatisticsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "Metadata of an uploaded document",
		MIMEType:    mimeJSON,
	}, s.handleDocumentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/analysis",
		Name:        "document-analysis",
		Description: "Latest bias analysis of a document",
		MIMEType:    mimeJSON,
	}, s.handleAnalysisResource)
}

func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	list, err := s.ports.Document.List(ctx, 0, s.pageSize())
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return jsonResource(req.Params.URI, list.Documents)
}

func (s *Server) handleStatisticsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Stats == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Stats.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading statistics: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return jsonResource(req.Params.URI, doc)
}

func (s *Server) handleAnalysisResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractAnalysisDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Document.LatestAnalysis(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting analysis: %w", err)
	}
	return jsonResource(req.Params.URI, analysisOutput(result))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like biasctl://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// extractAnalysisDocumentID extracts the document ID from biasctl://documents/{documentId}/analysis.
func extractAnalysisDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, analysisPath) {
		return ""
	}

	id := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), analysisPath)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

// pageSize is the configured history page size, or the default without a
// history service.
func (s *Server) pageSize() int {
	if s.ports.History == nil {
		return domain.DefaultHistoryLimit
	}
	return s.ports.History.PageSize()
}
