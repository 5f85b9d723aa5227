package transport

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// retryPolicy decides which responses are retried and how long to wait
// between attempts. Waits double from baseDelay up to maxDelay and carry a
// jitter fraction so a fleet of clients does not reattempt in lockstep.
// When the server names its own pause in a Retry-After header, that wins.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	jitter     float64
	retryOn    map[int]bool
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxRetries: 3,
		baseDelay:  time.Second,
		maxDelay:   30 * time.Second,
		jitter:     0.2,
		retryOn: map[int]bool{
			http.StatusRequestTimeout:      true,
			http.StatusTooManyRequests:     true,
			http.StatusInternalServerError: true,
			http.StatusBadGateway:          true,
			http.StatusServiceUnavailable:  true,
			http.StatusGatewayTimeout:      true,
		},
	}
}

// shouldRetry reports whether the attempt-th try of a request that got
// statusCode may be followed by another.
func (p retryPolicy) shouldRetry(attempt, statusCode int) bool {
	return attempt < p.maxRetries && p.retryOn[statusCode]
}

// delay returns the wait before the next attempt. A parseable Retry-After
// response header overrides the backoff schedule, clamped to maxDelay.
func (p retryPolicy) delay(attempt int, headers http.Header) time.Duration {
	if d, ok := parseRetryAfter(headers.Get("Retry-After")); ok {
		return min(d, p.maxDelay)
	}

	d := p.baseDelay << attempt
	if d <= 0 || d > p.maxDelay {
		d = p.maxDelay
	}
	if p.jitter > 0 {
		spread := p.jitter * float64(d)
		d = time.Duration(float64(d) - spread + rand.Float64()*2*spread)
	}
	return d
}

// parseRetryAfter understands both forms of the header: a whole number of
// seconds and an HTTP date. A date in the past yields a zero wait.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(value); err == nil {
		return max(time.Until(at), 0), true
	}
	return 0, false
}

// wait sleeps for the computed delay, aborting early when ctx ends.
func (p retryPolicy) wait(ctx context.Context, attempt int, headers http.Header) error {
	timer := time.NewTimer(p.delay(attempt, headers))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
