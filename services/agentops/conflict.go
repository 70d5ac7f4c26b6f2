package agentops

import (
	"errors"
	"fmt"
	"time"
)

// Hint clamps. The human-readable hint tolerates longer waits than the retry
// harness is willing to actually sleep.
const (
	maxHintWaitSeconds = 3600
	minuteCutoverSecs  = 120
)

// ConflictError is the structured error a losing confirm (or any contended
// mutating call) surfaces to callers. All advisory fields are optional.
type ConflictError struct {
	Status            int        `json:"status"`
	Message           string     `json:"message"`
	RetryHint         string     `json:"retryHint,omitempty"`
	RetryAfterSeconds *int       `json:"retryAfterSeconds,omitempty"`
	RetryAfter        *time.Time `json:"retryAfter,omitempty"`
	RollbackGuidance  string     `json:"rollbackGuidance,omitempty"`
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("conflict (status %d)", e.Status)
}

func (e *ConflictError) StatusCode() int {
	return e.Status
}

// StatusError is a minimal error carrying an upstream HTTP status, used by
// call sites that have nothing to add beyond the code.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *StatusError) StatusCode() int {
	return e.Status
}

// BuildSchedulingConflictHint produces the user-facing hint for a scheduling
// conflict. It starts from the error's own retry hint (or the fallback),
// appends a "retry in about N seconds/minutes" clause when the error carries
// wait guidance, and appends any rollback guidance verbatim. Each clause is
// independently omittable; a nil error yields exactly the fallback.
func BuildSchedulingConflictHint(err error, fallbackHint string) string {
	hint := fallbackHint

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		return hint
	}
	if conflict.RetryHint != "" {
		hint = conflict.RetryHint
	}

	if secs, ok := hintWaitSeconds(conflict, time.Now()); ok {
		if secs >= minuteCutoverSecs {
			hint = fmt.Sprintf("%s Retry in about %d minutes.", hint, (secs+30)/60)
		} else {
			hint = fmt.Sprintf("%s Retry in about %d seconds.", hint, secs)
		}
	}

	if conflict.RollbackGuidance != "" {
		hint = hint + " " + conflict.RollbackGuidance
	}
	return hint
}

// hintWaitSeconds extracts the advised wait, clamped to [0, maxHintWaitSeconds],
// preferring the explicit second count over the absolute timestamp.
func hintWaitSeconds(conflict *ConflictError, now time.Time) (int, bool) {
	var secs int
	switch {
	case conflict.RetryAfterSeconds != nil:
		secs = *conflict.RetryAfterSeconds
	case conflict.RetryAfter != nil:
		secs = int(conflict.RetryAfter.Sub(now).Round(time.Second).Seconds())
	default:
		return 0, false
	}
	if secs < 0 {
		secs = 0
	}
	if secs > maxHintWaitSeconds {
		secs = maxHintWaitSeconds
	}
	return secs, true
}
