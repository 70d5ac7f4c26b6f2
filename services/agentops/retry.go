package agentops

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Backoff bounds for the harness. A server-suggested wait overrides the
// exponential schedule but is clamped so a hostile or confused upstream
// cannot stall the caller.
const (
	backoffBase    = 250 * time.Millisecond
	backoffCap     = 1000 * time.Millisecond
	maxServerDelay = 30 * time.Second
)

// statusCoder is implemented by errors that carry an upstream HTTP status.
type statusCoder interface {
	StatusCode() int
}

var retryableStatuses = map[int]bool{
	408: true, 429: true, 500: true, 502: true, 503: true, 504: true,
}

var transientMarkers = []string{
	"timeout", "timed out", "network", "connection refused",
	"connection reset", "no such host", "unexpected eof",
	"temporarily unavailable", "econnreset",
}

// IsRetryable reports whether an error is worth another attempt: a retryable
// upstream status, or a message indicating a network/timeout condition.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var coder statusCoder
	if errors.As(err, &coder) {
		return retryableStatuses[coder.StatusCode()]
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WithAgentRetry invokes fn up to op.MaxAttempts times, retrying only
// transient failures. Non-retryable errors propagate on first occurrence;
// exhausting the attempts returns the last error. Attempts run sequentially,
// and the caller's context deadline bounds the whole call.
func WithAgentRetry[T any](ctx context.Context, op OperationContext, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	maxAttempts := op.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err
		if attempt == maxAttempts {
			break
		}

		delay := retryDelay(err, attempt)
		zap.L().Debug("retrying operation",
			zap.String("action", op.ActionType),
			zap.String("idempotencyKey", op.IdempotencyKey),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

// retryDelay picks the wait before the next attempt: the server-suggested
// delay when the error carries one (clamped to [0, maxServerDelay]), else
// exponential backoff starting at backoffBase, doubling per attempt, capped
// at backoffCap.
func retryDelay(err error, attempt int) time.Duration {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		switch {
		case conflict.RetryAfterSeconds != nil:
			return clampServerDelay(time.Duration(*conflict.RetryAfterSeconds) * time.Second)
		case conflict.RetryAfter != nil:
			return clampServerDelay(time.Until(*conflict.RetryAfter))
		}
	}

	delay := backoffBase << (attempt - 1)
	if delay > backoffCap {
		delay = backoffCap
	}
	return delay
}

func clampServerDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > maxServerDelay {
		return maxServerDelay
	}
	return d
}
