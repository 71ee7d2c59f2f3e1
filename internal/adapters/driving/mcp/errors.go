// Package mcp provides an MCP (Model Context Protocol) server adapter for biasctl.
// It lets AI assistants analyze documents, search the corpus and read the
// analysis history through the bias detection backend.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")

	// ErrServiceUnavailable is returned by a tool whose backing service was not wired.
	ErrServiceUnavailable = errors.New("mcp: service not available")
)
