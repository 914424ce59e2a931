package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pfrederiksen/bref-rosters/internal/logger"
)

const (
	UserAgent                = "bref-rosters/1.0 (github.com/pfrederiksen/bref-rosters)"
	Timeout                  = 30 * time.Second
	DefaultRequestsPerMinute = 10
)

// Client fetches pages over HTTP.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. hc itself is never
// modified; WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRequestsPerMinute sets the pacing budget. Values <= 0 disable pacing.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
	}
}

// New creates a new Client
func New(opts ...Option) *Client {
	c := &Client{
		client:    &http.Client{Timeout: Timeout},
		userAgent: UserAgent,
	}
	WithRequestsPerMinute(DefaultRequestsPerMinute)(c)
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.client.Timeout != c.timeout {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

// Fetch returns the body of url. Non-200 responses are errors.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	logger.IncrCounter("fetch.requests")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("reading body: %w", err)
	}

	logger.RecordTiming("fetch.duration", time.Since(start))
	logger.Debug("Fetched page", logger.Fields{
		"url":    url,
		"bytes":  len(body),
		"status": resp.StatusCode,
	})
	return body, nil
}
