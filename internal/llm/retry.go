package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/VJd357/Happyplates/internal/domain"
)

// shouldRetry determines if a status code is retryable.
func shouldRetry(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusInternalServerError: // 500
		return true
	case http.StatusBadGateway: // 502
		return true
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	default:
		return false
	}
}

// calculateBackoff returns the exponential backoff for an attempt, capped at
// the configured maximum.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.retry.InitialBackoff) * math.Pow(2, float64(attempt))
	if backoff > float64(c.retry.MaxBackoff) {
		backoff = float64(c.retry.MaxBackoff)
	}
	return time.Duration(backoff)
}

// retryWithBackoff wraps an HTTP request with the bounded retry policy.
// Non-retryable statuses are returned immediately for the caller to report.
func (c *Client) retryWithBackoff(ctx context.Context, reqFunc func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
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
		} else if resp != nil {
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)

			if !shouldRetry(resp.StatusCode) {
				return resp, nil
			}

			if resp.Body != nil {
				resp.Body.Close()
			}
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn().Int("attempt", attempt+1).Int("max_retries", c.retry.MaxRetries).
			Dur("backoff", backoff).Err(lastErr).Msg("request failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, domain.APIError(fmt.Sprintf("request failed after %d retries", c.retry.MaxRetries), lastErr)
}
