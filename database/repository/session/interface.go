package sessionRepo

import (
	"context"
	"time"

	"caresched/models"
)

// SessionRepository reads persisted sessions for conflict exclusion and
// serves session lookups after confirmation.
type SessionRepository interface {
	// ListForWindow returns non-cancelled sessions overlapping [start, end)
	// for the given organization.
	ListForWindow(ctx context.Context, orgID string, start, end time.Time) ([]models.Session, error)
	// GetByID fetches a session within the given organization scope.
	GetByID(ctx context.Context, orgID, sessionID string) (*models.Session, error)
}
