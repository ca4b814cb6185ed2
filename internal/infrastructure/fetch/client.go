package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"PageWatcher/internal/ports"
)

// Client fetches raw page markup over HTTP with a fixed user agent,
// a bounded timeout and an optional polite rate limit. No retries and
// no redirect handling beyond net/http defaults.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

var _ ports.Fetcher = (*Client)(nil)

// NewClient wires an HTTP client; nil defaults to a 20s timeout.
// ratePerSecond <= 0 disables rate limiting.
func NewClient(client *http.Client, userAgent string, ratePerSecond float64) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}

	return &Client{http: client, userAgent: userAgent, limiter: limiter}
}

// Fetch performs a single GET and returns the response body as a string.
// Timeouts, transport errors and non-200 statuses all surface as errors.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
