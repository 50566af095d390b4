// Package api is the REST client for the storefront backend. It owns the
// wire types, attaches bearer tokens, and surfaces backend errors verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"monoshop/internal/domain"
	"monoshop/internal/observability"

	"github.com/google/uuid"
)

// Error is a backend-reported failure. Its message is the backend's error
// string unchanged so callers can show it to the user as-is.
type Error struct {
	Status  int
	Message string

	sentinel error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap maps the HTTP status onto a domain sentinel so callers can use
// errors.Is without inspecting status codes
func (e *Error) Unwrap() error {
	return e.sentinel
}

// TokenSource yields the current bearer token, or "" when no session exists
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, used for one-off authenticated
// calls outside a session store
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client handles requests to the storefront backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a new backend client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues a JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses are returned as *Error with the backend's
// message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart issues a multipart/form-data request built by form
func (c *Client) doMultipart(ctx context.Context, method, path string, form *multipartForm, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, value := range form.fields {
		if err := mw.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}
	for _, f := range form.files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		if err != nil {
			return fmt.Errorf("failed to create form file %q: %w", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			return fmt.Errorf("failed to write form file %q: %w", f.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if req.Header.Get("Authorization") == "" && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	observability.FromContext(req.Context()).Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's {"error": "..."} body, falling back to
// the HTTP status text
func decodeError(resp *http.Response) error {
	apiErr := &Error{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.sentinel = domain.ErrUnauthorized
	case http.StatusBadRequest:
		apiErr.sentinel = domain.ErrInvalidInput
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// multipartForm accumulates fields and in-memory files for upload requests
type multipartForm struct {
	fields map[string]string
	files  []formFile
}

type formFile struct {
	field    string
	filename string
	data     []byte
}

func newMultipartForm() *multipartForm {
	return &multipartForm{fields: map[string]string{}}
}

func (f *multipartForm) setField(key, value string) {
	if value != "" {
		f.fields[key] = value
	}
}

func (f *multipartForm) addFile(field, filename string, data []byte) {
	f.files = append(f.files, formFile{field: field, filename: filename, data: data})
}
