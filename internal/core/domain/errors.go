package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// API errors with status 404 match it via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOperationInProgress indicates the same operation is already in flight.
	ErrOperationInProgress = errors.New("operation already in progress")

	// ErrEmptyQuery indicates a search query or question was blank.
	ErrEmptyQuery = errors.New("query is empty")

	// Upload Errors.

	// ErrUnsupportedFileType indicates the file extension is not accepted for upload.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates the file exceeds the upload size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile indicates the file has no content.
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidBiasType indicates an unknown bias type name.
	ErrInvalidBiasType = errors.New("invalid bias type")

	// ErrInvalidPosition indicates a bias instance span is out of order.
	ErrInvalidPosition = errors.New("invalid bias instance position")
)
