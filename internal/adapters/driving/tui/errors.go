package tui

import "errors"

// ErrMissingAnalysisService is returned when the upload or analysis tracker is not provided.
var ErrMissingAnalysisService = errors.New("tui: upload and analysis services are required")

// ErrMissingWorkflowService is returned when the workflow service is not provided.
var ErrMissingWorkflowService = errors.New("tui: workflow service is required")

// ErrMissingFileSource is returned when the file source is not provided.
var ErrMissingFileSource = errors.New("tui: file source is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingHistoryService is returned when the history service is not provided.
var ErrMissingHistoryService = errors.New("tui: history service is required")

// ErrMissingStatsService is returned when the stats service is not provided.
var ErrMissingStatsService = errors.New("tui: stats service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
