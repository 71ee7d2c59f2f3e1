package domain

import "io"

// Document is the metadata of an uploaded document.
// Identity is DocumentID; Analyzed flips to true once an analysis exists.
type Document struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt Timestamp `json:"uploaded_at"`
	Analyzed   bool      `json:"analyzed"`
	AnalysisID string    `json:"analysis_id,omitempty"`
}

// UploadedDocument is the response to a successful upload.
type UploadedDocument struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadedAt Timestamp `json:"uploaded_at"`
}

// DocumentList is one page of documents.
type DocumentList struct {
	Documents []Document `json:"documents"`
	Skip      int        `json:"skip"`
	Limit     int        `json:"limit"`
	Count     int        `json:"count"`
}

// UploadFile is a local file ready to be sent to the upload endpoint.
type UploadFile struct {
	// Name is the base file name sent in the multipart header.
	Name string

	// Size is the length of Content in bytes.
	Size int64

	// ContentType is the sniffed MIME type.
	ContentType string

	// Content is the file body.
	Content io.Reader
}
