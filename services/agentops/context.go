package agentops

import (
	"fmt"

	"github.com/google/uuid"
)

const defaultMaxAttempts = 3

// OperationContext identifies one logical user action across however many
// attempts it takes. The idempotency key and correlation id are generated
// once and propagated unchanged across retries so server-side logs can be
// joined across attempts. Never persisted.
type OperationContext struct {
	ActionType     string
	OperationID    string
	IdempotencyKey string
	CorrelationID  string
	MaxAttempts    int
}

// NewOperationContext creates the retry context for one logical action.
// maxAttempts <= 0 falls back to the default.
func NewOperationContext(actionType string, maxAttempts int) OperationContext {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	operationID := uuid.New().String()
	return OperationContext{
		ActionType:     actionType,
		OperationID:    operationID,
		IdempotencyKey: fmt.Sprintf("%s:%s", actionType, operationID),
		CorrelationID:  uuid.New().String(),
		MaxAttempts:    maxAttempts,
	}
}
