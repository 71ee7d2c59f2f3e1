package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadDocument sends a file as the "file" field of a multipart form.
func (c *Client) UploadDocument(ctx context.Context, file domain.UploadFile) (*domain.UploadedDocument, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.ErrorKindTransport, Cause: fmt.Errorf("create form part: %w", err)}
	}
	if file.Content != nil {
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, &domain.APIError{Kind: domain.ErrorKindTransport, Cause: fmt.Errorf("read file: %w", err)}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &domain.APIError{Kind: domain.ErrorKindTransport, Cause: fmt.Errorf("close form: %w", err)}
	}

	var out domain.UploadedDocument
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/documents/upload",
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments returns one page of documents.
func (c *Client) ListDocuments(ctx context.Context, skip, limit int) (*domain.DocumentList, error) {
	var out domain.DocumentList
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/documents/list",
		query:  pageQuery(skip, limit),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument returns the metadata of one document.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	var out domain.Document
	if err := c.do(ctx, request{method: http.MethodGet, path: "/documents/" + pathID(documentID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/documents/" + pathID(documentID)}, nil)
}
