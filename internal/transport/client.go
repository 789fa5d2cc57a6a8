// Package transport provides the HTTP client used to query Sesame mirrors.
// It owns timeout and status handling only; retry policy is the resolution
// client's mirror-fallback loop, and TLS configuration stays with net/http.
package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gilleslandais/astropy/pkg/constants"
	"github.com/gilleslandais/astropy/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP fetch functionality for Sesame mirrors. Every
// failure surfaces as a TransportError so the caller can treat an
// unreachable mirror and a non-success status identically.
type Client struct {
	http *http.Client
}

// New creates a new transport client. A non-positive timeout falls back to
// the default; a bounded timeout is what lets the mirror loop fail fast and
// move on instead of hanging on a dead mirror.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Get fetches the body of url. Non-2xx statuses, connection failures and
// context cancellation all return a TransportError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewTransportError(url, 0, "invalid request", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(url, 0, err.Error(), err)
	}
	defer func() {
		// Drain any remaining body to allow connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewTransportError(url, resp.StatusCode, resp.Status, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(url, resp.StatusCode, "reading response body", err)
	}

	return body, nil
}
