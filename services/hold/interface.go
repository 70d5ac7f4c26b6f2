package hold

import (
	"context"

	"caresched/models"
)

// HoldService manages the hold/confirm protocol. Acquire, Get and Release
// operate within the caller's organization scope; Confirm is privileged and
// reachable only through a service-level credential.
type HoldService interface {
	Acquire(ctx context.Context, orgID string, req models.HoldRequest) (*models.SessionHold, error)
	Get(ctx context.Context, orgID, holdID string) (*models.SessionHold, error)
	Release(ctx context.Context, orgID, holdID string) error
	Confirm(ctx context.Context, holdID string) (*models.Session, error)
}
