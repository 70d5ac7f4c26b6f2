package models

import "time"

// SessionHold is a short-lived soft lock reserving a therapist/time/client
// triple ahead of confirmation. Expiry is checked at read time; holds past
// ExpiresAt are ignorable.
type SessionHold struct {
	ID             string    `bson:"id" json:"id"`
	TherapistID    string    `bson:"therapist_id" json:"therapist_id"`
	ClientID       string    `bson:"client_id" json:"client_id"`
	StartTime      time.Time `bson:"start_time" json:"start_time"`
	EndTime        time.Time `bson:"end_time" json:"end_time"`
	HoldKey        string    `bson:"hold_key" json:"hold_key"` // caller-supplied idempotency token
	ExpiresAt      time.Time `bson:"expires_at" json:"expires_at"`
	OrganizationID string    `bson:"organization_id" json:"organization_id"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Expired reports whether the hold is past its TTL at the given instant.
func (h SessionHold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// HoldRequest is the payload for acquiring a hold.
type HoldRequest struct {
	TherapistID string    `json:"therapist_id" binding:"required"`
	ClientID    string    `json:"client_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	HoldKey     string    `json:"hold_key" binding:"required"`
}
