package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the outcome of an exchange. The body is opaque to this
// package; the caller interprets status and payload.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NetworkError represents a network-level failure after retries were
// exhausted.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client posts and fetches opaque byte payloads.
type Client struct {
	httpClient *http.Client
	retry      retryPolicy
}

// Option configures the transport client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRetries sets how many times a failed request is reattempted after
// the initial try. Zero disables retries. Default: 3.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retry.maxRetries = n
	}
}

// WithRetryBackoff sets the first and the largest wait between attempts.
// Defaults: 1s and 30s.
func WithRetryBackoff(base, max time.Duration) Option {
	return func(c *Client) {
		c.retry.baseDelay = base
		c.retry.maxDelay = max
	}
}

// WithRetryOn replaces the set of status codes that trigger a retry.
// Default: 408, 429, 500, 502, 503, 504.
func WithRetryOn(codes ...int) Option {
	return func(c *Client) {
		c.retry.retryOn = make(map[int]bool, len(codes))
		for _, code := range codes {
			c.retry.retryOn[code] = true
		}
	}
}

// New creates a transport client with a 30-second default timeout and the
// default retry policy.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: defaultRetryPolicy(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get fetches a payload. Non-2xx responses are returned to the caller, not
// converted into errors; only network-level failures after retries produce
// an error.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, nil, headers)
}

// Post sends a payload. The payload is opaque bytes; the caller sets any
// content-type header it needs.
func (c *Client) Post(ctx context.Context, url string, payload []byte, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, payload, headers)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte, headers map[string]string) (*Response, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt >= c.retry.maxRetries {
				return nil, &NetworkError{Err: lastErr, URL: url, Attempt: attempt + 1}
			}
			if err := c.retry.wait(ctx, attempt, nil); err != nil {
				return nil, err
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}

		if c.retry.shouldRetry(attempt, resp.StatusCode) {
			if err := c.retry.wait(ctx, attempt, resp.Header); err != nil {
				return nil, err
			}
			continue
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       body,
		}, nil
	}
}
