// Package api provides the HTTP adapter for the bias-detection backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.BiasAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultAPIURL
	DefaultTimeout = domain.DefaultTimeout

	// PathPrefix is prepended to every endpoint path.
	PathPrefix = "/api/v1"

	// HeaderRequestID carries a per-request correlation ID.
	HeaderRequestID = "X-Request-ID"
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the backend origin (default: http://localhost:8000).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// Registerer receives the request metrics. Nil disables metrics.
	Registerer prometheus.Registerer

	// Transport overrides the HTTP transport (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// Client calls the bias-detection backend.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.Registerer != nil {
		transport = instrument(cfg.Registerer, transport)
	}

	c := &Client{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one backend call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, path string, in any) (request, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return request{}, &domain.APIError{Kind: domain.ErrorKindTransport, Cause: fmt.Errorf("marshal request: %w", err)}
	}
	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, nil
}

// do sends r and decodes a successful body into out. out may be nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &domain.APIError{Kind: domain.ErrorKindTransport, Cause: err}
		}
	}

	target := c.baseURL + PathPrefix + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return &domain.APIError{Kind: domain.ErrorKindTransport, Cause: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("%s %s failed: %v", r.method, r.path, err)
		return &domain.APIError{Kind: domain.ErrorKindTransport, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Kind: domain.ErrorKindTransport, StatusCode: resp.StatusCode, Cause: fmt.Errorf("read response: %w", err)}
	}

	logger.WithFields(map[string]any{
		"status":     resp.StatusCode,
		"request_id": requestID,
		"elapsed":    time.Since(start).Round(time.Millisecond),
	}).Debugf("%s %s", r.method, r.path)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.APIError{Kind: domain.ErrorKindDecode, StatusCode: resp.StatusCode, Cause: err}
	}
	return nil
}

// pageQuery encodes skip/limit pagination parameters.
func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", fmt.Sprint(skip))
	q.Set("limit", fmt.Sprint(limit))
	return q
}

// pathID escapes an identifier for use as a path segment.
func pathID(id string) string {
	return url.PathEscape(id)
}
