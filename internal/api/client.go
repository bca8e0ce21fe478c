// ABOUTME: HTTP client core for the assistant backend REST API
// ABOUTME: Holds base URL, bearer token source, and shared request plumbing

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors surfaced to callers.
var (
	// ErrUnauthorized is returned when the backend rejects the bearer token
	// (HTTP 401). Callers should tear down the stored session.
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidCredentials is returned by Login when the backend rejects
	// the username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when a request fails client-side validation
	// before any network call is made.
	ErrValidation = errors.New("validation failed")
)

// Error is a non-2xx backend response that is not an authentication failure.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// TokenSource returns the current bearer token, or "" when logged out.
type TokenSource func() string

// Client is a typed client for the assistant backend.
type Client struct {
	baseURL  string
	httpc    *http.Client
	token    TokenSource
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// New creates a Client for the backend at baseURL. token may be nil for a
// client that only performs unauthenticated calls.
func New(baseURL string, token TokenSource) *Client {
	return NewWithOptions(baseURL, token)
}

// NewWithOptions creates a Client with extra options applied.
func NewWithOptions(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpc:    &http.Client{Timeout: 60 * time.Second},
		token:    token,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// bearerToken returns the current token or "" when no source is configured.
func (c *Client) bearerToken() string {
	if c.token == nil {
		return ""
	}
	return c.token()
}

// newRequest builds a request against the backend, attaching the bearer
// token when one is available.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). 401 responses map to
// ErrUnauthorized, other non-2xx responses to *Error.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// checkStatus maps error statuses to the package's error taxonomy. The
// response body is consumed only on failure.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return &Error{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Body),
	}
}

// errorMessage extracts a human-readable message from an error response
// body. Backends vary between {"detail": ...}, {"message": ...}, and
// {"error": ...} shapes.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Detail != "":
		return payload.Detail
	case payload.Message != "":
		return payload.Message
	default:
		return payload.Err
	}
}

// validateStruct runs client-side validation and wraps failures in
// ErrValidation so no network call fires for an incomplete form.
func (c *Client) validateStruct(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
