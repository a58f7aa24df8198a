// ABOUTME: HTTP client for the BlogHub REST API
// ABOUTME: Injects bearer credentials and turns 401 responses into a global unauthorized event

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request when no other timeout is configured
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// CredentialProvider supplies the persisted access token and purges it when the
// backend rejects it. The session store implements it.
type CredentialProvider interface {
	AccessToken(ctx context.Context) string
	ClearCredentials(ctx context.Context)
}

// UnauthorizedEvent describes a request the backend answered with 401
type UnauthorizedEvent struct {
	Method string
	Path   string
	Err    *APIError
}

// Client is the API client for the BlogHub backend
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialProvider
	limiter     *rate.Limiter

	mu          sync.RWMutex
	subscribers map[int]func(UnauthorizedEvent)
	nextSubID   int
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit throttles outbound requests to rps with the given burst.
// rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCredentials sets the credential provider at construction time
func WithCredentials(p CredentialProvider) Option {
	return func(c *Client) {
		c.credentials = p
	}
}

// New creates a new API client with the given base URL (including the /api prefix)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		subscribers: make(map[int]func(UnauthorizedEvent)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetCredentials installs the credential provider. The session store is built on
// top of the client, so it is wired in after both exist.
func (c *Client) SetCredentials(p CredentialProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credentials = p
}

// OnUnauthorized registers fn to run after every 401 response, once the stored
// credentials have been cleared. The returned func removes the subscription.
// Subscribers run on the request goroutine and must not block.
func (c *Client) OnUnauthorized(fn func(UnauthorizedEvent)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Client) provider() CredentialProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credentials
}

// getJSON issues a GET and decodes the response into out
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, target, nil, "")
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// sendJSON issues a request with a JSON body and decodes the response into out
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// sendForm issues a request with a form-encoded body
func (c *Client) sendForm(ctx context.Context, method, path string, form url.Values, out any) error {
	req, err := c.newRequest(ctx, method, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do applies the request and response interceptors around a single round trip
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.handleRequestError(ctx, err)
		}
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if p := c.provider(); p != nil {
		if token := p.AccessToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("API request failed", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "error", err)
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	slog.Debug("API request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.handleErrorResponse(resp)
		apiErr.RequestID = requestID
		if apiErr.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx, req, apiErr)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// handleUnauthorized purges stored credentials and notifies subscribers
func (c *Client) handleUnauthorized(ctx context.Context, req *http.Request, apiErr *APIError) {
	slog.Info("Backend rejected credentials", "method", req.Method, "path", req.URL.Path)

	if p := c.provider(); p != nil {
		p.ClearCredentials(ctx)
	}

	c.mu.RLock()
	subs := make([]func(UnauthorizedEvent), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.RUnlock()

	event := UnauthorizedEvent{
		Method: req.Method,
		Path:   strings.TrimPrefix(req.URL.Path, c.pathPrefix()),
		Err:    apiErr,
	}
	for _, fn := range subs {
		fn(event)
	}
}

// pathPrefix is the path component of the base URL, e.g. "/api"
func (c *Client) pathPrefix() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: request canceled", ErrTransport)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", ErrTransport)
	}
	return fmt.Errorf("%w: cannot connect to backend at %s: %w", ErrTransport, c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil {
		return apiErr
	}
	apiErr.Detail = errResp.message()
	return apiErr
}
