// ABOUTME: Backend liveness probe
// ABOUTME: The health route lives at the server root, outside the /api prefix

package client

import (
	"context"
	"net/http"
	"net/url"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// Health calls GET /health on the backend's origin
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.originURL()+"/health", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var resp HealthResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// originURL is the base URL without its path, e.g. "http://localhost:8000"
func (c *Client) originURL() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL
	}
	return u.Scheme + "://" + u.Host
}
