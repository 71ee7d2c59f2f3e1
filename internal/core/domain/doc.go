// Package domain defines the typed contract shared with the bias-detection API.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document and its analysis flag
//   - AnalysisResult: A bias analysis with its detected instances
//   - SearchResult: A semantic search hit
//   - Answer: A RAG answer with its sources
//   - HistoryItem: A document paired with its latest analysis
//   - Operation: An immutable record of one asynchronous call
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
