package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// ErrorKindTransport means the request never produced an HTTP response.
	ErrorKindTransport ErrorKind = iota
	// ErrorKindValidation means the backend rejected the request with a list of field errors.
	ErrorKindValidation
	// ErrorKindDetail means the backend returned a single detail message.
	ErrorKindDetail
	// ErrorKindStatus means the backend returned an error status without a usable body.
	ErrorKindStatus
	// ErrorKindDecode means a successful response could not be decoded.
	ErrorKindDecode
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindValidation:
		return "validation"
	case ErrorKindDetail:
		return "detail"
	case ErrorKindStatus:
		return "status"
	case ErrorKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Violation is one entry of a validation error list.
type Violation struct {
	// Location is the path of the offending field, e.g. ["body", "query"].
	Location []string

	// Message is the human-readable reason. May be empty.
	Message string

	// Raw is the original JSON of the entry, used when Message is empty.
	Raw string
}

// Text returns the message of the violation, falling back to its raw JSON.
func (v Violation) Text() string {
	if v.Message != "" {
		return v.Message
	}
	return v.Raw
}

// APIError is the error returned by every API client call.
// Kind selects which of the other fields are meaningful.
type APIError struct {
	Kind ErrorKind

	// StatusCode is the HTTP status, zero for transport errors.
	StatusCode int

	// Detail is the single backend message for ErrorKindDetail.
	Detail string

	// Violations holds the field errors for ErrorKindValidation.
	Violations []Violation

	// Cause is the underlying transport or decode error.
	Cause error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrorKindTransport:
		if e.Cause != nil {
			return "request failed: " + e.Cause.Error()
		}
		return "request failed"
	case ErrorKindValidation:
		return e.joinViolations()
	case ErrorKindDetail:
		return e.Detail
	case ErrorKindDecode:
		if e.Cause != nil {
			return "invalid response: " + e.Cause.Error()
		}
		return "invalid response"
	case ErrorKindStatus:
		return fmt.Sprintf("request failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports 404 responses as ErrNotFound.
func (e *APIError) Is(target error) bool {
	return e != nil && target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func (e *APIError) joinViolations() string {
	texts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		texts = append(texts, v.Text())
	}
	return strings.Join(texts, ", ")
}

// ErrorMessage turns any error into a display string.
//
// Validation errors are joined with ", ", a detail message is used verbatim,
// anything else falls back to the error's own message and finally to fallback.
// It never panics.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		switch apiErr.Kind {
		case ErrorKindValidation:
			if msg := apiErr.joinViolations(); msg != "" {
				return msg
			}
		case ErrorKindDetail:
			if apiErr.Detail != "" {
				return apiErr.Detail
			}
		case ErrorKindTransport, ErrorKindStatus, ErrorKindDecode:
		}
	}

	var opErr *OperationError
	if errors.As(err, &opErr) && opErr != nil && opErr.Message != "" {
		return opErr.Message
	}

	if msg := safeErrorText(err); msg != "" {
		return msg
	}
	return fallback
}

// safeErrorText calls Error, which may panic on a nil receiver.
func safeErrorText(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return err.Error()
}

// OperationError is returned by trackers after a failed call.
// Message is the normalised text already stored in the tracker state.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
