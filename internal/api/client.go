// ABOUTME: HTTP gateway for the community board REST API.
// ABOUTME: Sends JSON with session cookies and unwraps the {success,message,data} envelope.
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
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/2389-research/community/internal/models"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// RequestError is returned when the server answers with a non-2xx status or an
// envelope whose success flag is false.
type RequestError struct {
	Status  int
	Message string
	Body    *models.Envelope
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsRequestError reports whether err is (or wraps) a *RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// Client talks to the board backend. Each client owns a cookie jar, so the
// session established by Login is sent on every later call.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is attached
// if the given client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		if hc.Jar == nil {
			hc.Jar = c.client.Jar
		}
		c.client = hc
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	c := &Client{
		baseURL: NormalizeBaseURL(baseURL),
		client:  &http.Client{Timeout: DefaultTimeout, Jar: jar},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NormalizeBaseURL strips trailing slashes and a trailing /api segment, since
// every endpoint path already starts with /api.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return strings.TrimSuffix(baseURL, "/api")
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one API call. body, when non-nil, is sent as JSON. The parsed
// envelope is returned on success; it is nil when the response body was empty
// or not JSON.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*models.Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	env := decodeEnvelope(raw)

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.Failed() {
		msg := ""
		if env != nil {
			msg = env.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("요청 실패 (%d)", resp.StatusCode)
		}
		return nil, &RequestError{Status: resp.StatusCode, Message: msg, Body: env}
	}
	return env, nil
}

// decodeEnvelope parses raw as an envelope, returning nil for empty or
// non-JSON bodies.
func decodeEnvelope(raw []byte) *models.Envelope {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return &env
}

// decodeData unmarshals the envelope's data field into v. A missing envelope
// or data field leaves v untouched.
func decodeData(env *models.Envelope, v any) error {
	if !hasData(env) {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// hasData reports whether env carries a non-null data payload.
func hasData(env *models.Envelope) bool {
	return env != nil && len(env.Data) > 0 && string(bytes.TrimSpace(env.Data)) != "null"
}

// decodeList unmarshals a list payload. Anything that is not a JSON array
// decodes to an empty slice.
func decodeList[T any](env *models.Envelope) []T {
	items := []T{}
	if env == nil || len(env.Data) == 0 {
		return items
	}
	trimmed := bytes.TrimSpace(env.Data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return items
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return []T{}
	}
	return items
}
