package agentops

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithAgentRetry_RetriesOn503ThenSucceeds(t *testing.T) {
	op := NewOperationContext("confirm-session", 3)

	calls := 0
	result, err := WithAgentRetry(context.Background(), op, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", &StatusError{Status: 503, Message: "service unavailable"}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestWithAgentRetry_DoesNotRetryOn403(t *testing.T) {
	op := NewOperationContext("confirm-session", 5)

	calls := 0
	_, err := WithAgentRetry(context.Background(), op, func(ctx context.Context) (string, error) {
		calls++
		return "", &StatusError{Status: 403, Message: "forbidden"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 403, statusErr.Status)
}

func TestWithAgentRetry_ExhaustionReturnsLastError(t *testing.T) {
	op := NewOperationContext("acquire-hold", 3)

	calls := 0
	_, err := WithAgentRetry(context.Background(), op, func(ctx context.Context) (int, error) {
		calls++
		return 0, &StatusError{Status: 503, Message: "still down"}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "still down")
}

func TestWithAgentRetry_NetworkErrorMessageIsRetryable(t *testing.T) {
	op := NewOperationContext("acquire-hold", 2)

	calls := 0
	_, err := WithAgentRetry(context.Background(), op, func(ctx context.Context) (struct{}, error) {
		calls++
		return struct{}{}, errors.New("dial tcp: connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithAgentRetry_PermanentErrorPropagatesImmediately(t *testing.T) {
	op := NewOperationContext("acquire-hold", 4)

	calls := 0
	wantErr := errors.New("validation failed: end before start")
	_, err := WithAgentRetry(context.Background(), op, func(ctx context.Context) (struct{}, error) {
		calls++
		return struct{}{}, wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(&StatusError{Status: 429}))
	assert.True(t, IsRetryable(&StatusError{Status: 500}))
	assert.False(t, IsRetryable(&StatusError{Status: 404}))
	assert.True(t, IsRetryable(errors.New("request timed out")))
	assert.False(t, IsRetryable(errors.New("invalid payload")))
}

func TestNewOperationContext(t *testing.T) {
	op := NewOperationContext("confirm-session", 7)

	assert.Equal(t, "confirm-session", op.ActionType)
	assert.Equal(t, 7, op.MaxAttempts)
	assert.NotEmpty(t, op.OperationID)
	assert.NotEmpty(t, op.CorrelationID)
	assert.Equal(t, "confirm-session:"+op.OperationID, op.IdempotencyKey)

	// Each logical action gets its own ids.
	other := NewOperationContext("confirm-session", 7)
	assert.NotEqual(t, op.OperationID, other.OperationID)
}

func TestNewOperationContext_DefaultAttempts(t *testing.T) {
	op := NewOperationContext("anything", 0)
	assert.Equal(t, defaultMaxAttempts, op.MaxAttempts)
}
