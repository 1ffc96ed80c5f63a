package takeoff

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"takeoff-backend/internal/llm"
)

const (
	DefaultUpstreamTimeout = 60 * time.Second
	DefaultMaxRetries      = 2

	retryBaseDelay = 300 * time.Millisecond
)

// callWithRetry issues the upstream call with a per-attempt timeout and a
// bounded, sequential retry loop. It returns the raw response, the number of
// attempts made, and the terminal error after retries are exhausted.
func callWithRetry(ctx context.Context, client llm.Client, input llm.AnalyzeInput, timeout time.Duration, maxRetries int) (string, int, error) {
	attempts := 0
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			log.Printf("llm retry attempt=%d delay=%s error=%s", attempt, delay, sanitizeError(lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", attempts, ctx.Err()
			}
		}
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := client.AnalyzeBlueprint(attemptCtx, input)
		cancel()
		if err == nil {
			return raw, attempts, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", attempts, ctx.Err()
		}
		if !shouldRetry(err) {
			return "", attempts, err
		}
	}
	return "", attempts, fmt.Errorf("%w after %d attempts: %v", ErrUpstreamExhausted, attempts, lastErr)
}

// shouldRetry classifies transient upstream failures: timeouts, connection
// drops and 5xx-style provider errors.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") || strings.Contains(msg, "rate_limit") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}
