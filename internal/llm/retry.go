package llm

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"context"
)

// RetryPolicy makes retry-vs-fail-fast explicit. The zero value fails fast:
// one attempt, errors surface immediately and the caller's fallback applies.
type RetryPolicy struct {
	Enabled        bool
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy returns the policy used when retries are enabled
// without further tuning.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Enabled:        true,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// shouldRetry determines if a status code is retryable.
func shouldRetry(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// backoffFor calculates exponential backoff capped at MaxBackoff.
func (p RetryPolicy) backoffFor(attempt int) time.Duration {
	backoff := float64(p.InitialBackoff) * math.Pow(2, float64(attempt))
	if backoff > float64(p.MaxBackoff) {
		backoff = float64(p.MaxBackoff)
	}
	return time.Duration(backoff)
}

// doWithRetry executes the request, retrying per the configured policy.
func (c *Client) doWithRetry(ctx context.Context, reqFunc func() (*http.Response, error)) (*http.Response, error) {
	if !c.retry.Enabled {
		return reqFunc()
	}

	policy := c.retry
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = 3
	}
	if policy.InitialBackoff <= 0 {
		policy.InitialBackoff = 1 * time.Second
	}
	if policy.MaxBackoff <= 0 {
		policy.MaxBackoff = 30 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := reqFunc()
		if err == nil && resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
			if !shouldRetry(resp.StatusCode) {
				return resp, nil
			}
			resp.Body.Close()
		}

		if attempt == policy.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.backoffFor(attempt)):
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", policy.MaxRetries, lastErr)
}
