package hold

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	holdRepo "caresched/database/repository/hold"
	"caresched/models"
	"caresched/services/agentops"
	"caresched/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidHoldRequest covers malformed acquire payloads (inverted time
// range, missing hold key).
var ErrInvalidHoldRequest = errors.New("invalid hold request")

// DefaultHoldService implements HoldService over the Mongo repository with a
// TTL'd Redis mirror for cheap duplicate checks.
type DefaultHoldService struct {
	Repo        holdRepo.HoldRepository
	CacheClient *redis.Client
	Logger      *zap.Logger
	TTL         time.Duration
}

// Acquire creates a hold, or returns the existing one when the same hold key
// is replayed (idempotent retries of the same logical action).
func (s *DefaultHoldService) Acquire(ctx context.Context, orgID string, req models.HoldRequest) (*models.SessionHold, error) {
	if req.HoldKey == "" || !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidHoldRequest
	}

	if existing, err := s.Repo.GetByHoldKey(ctx, orgID, req.HoldKey); err == nil {
		if !existing.Expired(time.Now()) {
			return existing, nil
		}
		// The previous hold on this key expired. Remove it so the key stays
		// usable for a fresh acquisition instead of tripping the unique index.
		if err := s.Repo.Delete(ctx, orgID, existing.ID); err != nil && !errors.Is(err, holdRepo.ErrHoldNotFound) {
			return nil, err
		}
		if s.CacheClient != nil {
			s.CacheClient.Del(ctx, utils.HoldCachePrefix+existing.ID)
		}
	} else if !errors.Is(err, holdRepo.ErrHoldNotFound) {
		return nil, err
	}

	now := time.Now()
	h := &models.SessionHold{
		ID:             uuid.New().String(),
		TherapistID:    req.TherapistID,
		ClientID:       req.ClientID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		HoldKey:        req.HoldKey,
		ExpiresAt:      now.Add(s.TTL),
		OrganizationID: orgID,
		CreatedAt:      now,
	}

	if err := s.Repo.Create(ctx, h); err != nil {
		switch {
		case errors.Is(err, holdRepo.ErrDuplicateHold):
			return nil, s.conflictError("This time is already held by another scheduling attempt.", err)
		case errors.Is(err, holdRepo.ErrHoldKeyInUse):
			// Unique-index race: a concurrent replay of the same key won the
			// insert, so return its row.
			return s.Repo.GetByHoldKey(ctx, orgID, req.HoldKey)
		default:
			return nil, err
		}
	}

	if s.CacheClient != nil {
		key := utils.HoldCachePrefix + h.ID
		if err := s.CacheClient.Set(ctx, key, h.HoldKey, s.TTL+utils.HoldCacheTTLSlack).Err(); err != nil {
			s.Logger.Warn("failed to mirror hold in redis", zap.String("holdId", h.ID), zap.Error(err))
		}
	}

	s.Logger.Info("hold acquired",
		zap.String("holdId", h.ID),
		zap.String("therapistId", h.TherapistID),
		zap.Time("expiresAt", h.ExpiresAt))
	return h, nil
}

func (s *DefaultHoldService) Get(ctx context.Context, orgID, holdID string) (*models.SessionHold, error) {
	return s.Repo.GetByID(ctx, orgID, holdID)
}

// Release deletes the caller's own hold. A foreign tenant's hold matches
// nothing and the denial is explicit, never a silent success.
func (s *DefaultHoldService) Release(ctx context.Context, orgID, holdID string) error {
	if err := s.Repo.Delete(ctx, orgID, holdID); err != nil {
		return err
	}
	if s.CacheClient != nil {
		s.CacheClient.Del(ctx, utils.HoldCachePrefix+holdID)
	}
	s.Logger.Info("hold released", zap.String("holdId", holdID))
	return nil
}

// Confirm converts a valid, unexpired hold into a session. Losing the race
// (or arriving after expiry) yields a structured conflict carrying retry
// guidance for the caller-facing hint.
func (s *DefaultHoldService) Confirm(ctx context.Context, holdID string) (*models.Session, error) {
	session := &models.Session{ID: uuid.New().String()}

	err := s.Repo.ConfirmTransactionally(ctx, holdID, session)
	switch {
	case err == nil:
	case errors.Is(err, holdRepo.ErrHoldNotFound):
		return nil, err
	case errors.Is(err, holdRepo.ErrHoldExpired):
		return nil, &agentops.ConflictError{
			Status:           http.StatusConflict,
			Message:          err.Error(),
			RetryHint:        "The hold expired before confirmation. Acquire a fresh hold and try again.",
			RollbackGuidance: "No session was created; the expired hold can be discarded.",
		}
	case errors.Is(err, holdRepo.ErrSlotConflict), errors.Is(err, holdRepo.ErrSessionCollide):
		return nil, s.conflictError("Another scheduling attempt confirmed this time first. Pick a different slot.", err)
	default:
		return nil, fmt.Errorf("confirm failed for hold %s: %w", holdID, err)
	}

	if s.CacheClient != nil {
		s.CacheClient.Del(ctx, utils.HoldCachePrefix+holdID)
	}

	s.Logger.Info("hold confirmed",
		zap.String("holdId", holdID),
		zap.String("sessionId", session.ID),
		zap.String("therapistId", session.TherapistID))
	return session, nil
}

func (s *DefaultHoldService) conflictError(hint string, cause error) *agentops.ConflictError {
	retryAfter := int(s.TTL.Seconds())
	return &agentops.ConflictError{
		Status:            http.StatusConflict,
		Message:           cause.Error(),
		RetryHint:         hint,
		RetryAfterSeconds: &retryAfter,
	}
}
