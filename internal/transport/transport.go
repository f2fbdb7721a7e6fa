// Package transport owns every outbound HTTP call to the SmartDoc backend.
// It attaches credentials, serializes bodies, and classifies each outcome into
// the uniform Result envelope. Transport and HTTP failures are absorbed into
// negative Results, never returned as Go errors: callers branch on Success and
// need no error handling of their own for ordinary network failure.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"smartdoc/internal/config"
	"smartdoc/internal/session"
)

// connErrFallback mirrors the dashboard's generic connection-failure message.
const connErrFallback = "Lỗi kết nối đến server"

// timeoutErr is surfaced when the context deadline expires mid-request.
const timeoutErr = "Hết thời gian chờ phản hồi từ server"

// MultipartBody describes a file-upload request body. The JSON Content-Type
// default is suppressed so the multipart writer controls the boundary.
type MultipartBody struct {
	FileField string // defaults to "file"
	Filename  string
	Content   io.Reader
	Fields    map[string]string // extra form fields, e.g. serialized metadata
}

// Request describes one call against the configured base URL.
type Request struct {
	Method    string
	Path      string // joined to the base URL
	URL       string // absolute override; used for the server-root health check
	Name      string // operation label for logs/metrics; defaults to METHOD path
	Query     url.Values
	Header    http.Header
	Body      any // JSON-serialized when non-nil
	Multipart *MultipartBody
}

// Result is the uniform outcome of a transport call.
// Success=true implies the body was read; JSON bodies land in Data, anything
// else in Raw. Success=false implies Error is non-empty.
type Result struct {
	Success bool
	Status  int
	Data    json.RawMessage
	Raw     []byte
	Error   string
}

// Client issues requests against one base URL. It holds no mutable state
// across calls; the credential source is read fresh on every request, so
// concurrent calls are independent.
type Client struct {
	baseURL string
	locale  string
	tokens  session.Source
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests use this to point
// at httptest servers with custom transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a transport client. The default round-trip chain is
// otel tracing -> request-id injection -> JSON request logging -> metrics.
func New(cfg config.APIConfig, tokens session.Source, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		locale:  cfg.Locale,
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		chain := newMetricsTransport(http.DefaultTransport, defaultMetrics())
		c.http = &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: otelhttp.NewTransport(newRequestIDTransport(newLoggingTransport(chain))),
		}
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs one HTTP request and classifies the outcome. It never returns a
// Go error; every failure path yields a negative Result.
func (c *Client) Do(ctx context.Context, req Request) Result {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return failure(err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Status: resp.StatusCode,
			Error:  errorMessage(resp.StatusCode, body, isJSON),
		}
	}

	if isJSON {
		if !json.Valid(body) {
			return failure(fmt.Errorf("invalid JSON in response body"))
		}
		return Result{Success: true, Status: resp.StatusCode, Data: body}
	}
	return Result{Success: true, Status: resp.StatusCode, Raw: body}
}

// build assembles the http.Request: URL joining, header merging, bearer
// injection and body encoding.
func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target := req.URL
	if target == "" {
		target = c.baseURL + req.Path
	}
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Multipart != nil:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		field := req.Multipart.FileField
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, req.Multipart.Filename)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, req.Multipart.Content); err != nil {
			return nil, fmt.Errorf("copy file content: %w", err)
		}
		for k, v := range req.Multipart.Fields {
			if err := w.WriteField(k, v); err != nil {
				return nil, fmt.Errorf("write form field: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("close multipart writer: %w", err)
		}
		body = buf
		contentType = w.FormDataContentType()
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	default:
		contentType = "application/json"
	}

	name := req.Name
	if name == "" {
		name = req.Method + " " + req.Path
	}
	httpReq, err := http.NewRequestWithContext(withOperation(ctx, name), req.Method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", contentType)
	if c.locale != "" {
		httpReq.Header.Set("Accept-Language", c.locale)
	}
	if token := c.tokens.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, values := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	return httpReq, nil
}

// errorMessage prefers the server-provided detail, then message, then a
// synthesized status line.
func errorMessage(status int, body []byte, isJSON bool) string {
	if isJSON {
		var payload struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Detail != "" {
				return payload.Detail
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}

func failure(err error) Result {
	if errors.Is(err, context.DeadlineExceeded) {
		return Result{Error: timeoutErr}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return Result{Error: timeoutErr}
		}
		return Result{Error: connErrFallback}
	}
	if err == nil || err.Error() == "" {
		return Result{Error: connErrFallback}
	}
	return Result{Error: err.Error()}
}
