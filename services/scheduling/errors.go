package scheduling

import "errors"

// Business-level infeasibility (no capacity, no availability overlap, no
// therapists) is returned as data, never as an error. Errors are reserved for
// malformed input.
var (
	ErrInvalidWindow = errors.New("window end must not be before window start")
	ErrWindowTooWide = errors.New("window exceeds the maximum schedulable day span")
)
