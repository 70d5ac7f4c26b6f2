package holdRepo

import (
	"context"
	"time"

	"caresched/models"
)

// HoldRepository manages persisted session holds. All read/write operations
// except ConfirmTransactionally and DeleteExpiredBefore are scoped to the
// caller's organization: a hold is invisible and immutable outside it.
type HoldRepository interface {
	// Create persists a new hold.
	Create(ctx context.Context, hold *models.SessionHold) error
	// GetByID fetches a hold within the given organization scope.
	GetByID(ctx context.Context, orgID, holdID string) (*models.SessionHold, error)
	// GetByHoldKey fetches a hold by its caller-supplied idempotency token.
	GetByHoldKey(ctx context.Context, orgID, holdKey string) (*models.SessionHold, error)
	// Delete removes a hold within the given organization scope. Returns
	// ErrHoldNotFound when no hold matched, including foreign-tenant attempts.
	Delete(ctx context.Context, orgID, holdID string) error
	// ConfirmTransactionally converts an unexpired hold into a session in a
	// single transaction, re-validating expiry and therapist/client overlap.
	// Privileged: not org-scoped, callable by service credentials only.
	ConfirmTransactionally(ctx context.Context, holdID string, session *models.Session) error
	// DeleteExpiredBefore removes holds whose expires_at is older than cutoff.
	// Used by the background sweeper; protocol correctness never depends on it.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
