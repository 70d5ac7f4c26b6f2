// File: utils/constants.go
package utils

import "time"

// HoldCachePrefix is the prefix used for Redis hold-mirror keys.
const HoldCachePrefix = "hold:"

// HoldCacheTTLSlack pads the Redis mirror TTL so the authoritative expires_at
// in Mongo always wins the race against the mirror.
const HoldCacheTTLSlack = 30 * time.Second

// Correlation headers propagated unchanged across retries of the same
// logical operation.
const (
	CorrelationIDHeader = "x-correlation-id"
	RequestIDHeader     = "x-request-id"
)
