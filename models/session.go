package models

import "time"

// Session statuses recognised by the engine. Anything cancelled no longer
// occupies its time range.
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session is a persisted therapy session. The scheduling engine only reads
// these to exclude occupied time ranges; it never mutates them.
type Session struct {
	ID             string    `bson:"id" json:"id"`
	TherapistID    string    `bson:"therapist_id" json:"therapist_id"`
	ClientID       string    `bson:"client_id" json:"client_id"`
	StartTime      time.Time `bson:"start_time" json:"start_time"`
	EndTime        time.Time `bson:"end_time" json:"end_time"`
	Status         string    `bson:"status" json:"status"`
	OrganizationID string    `bson:"organization_id" json:"organization_id"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Occupies reports whether the session still blocks its time range.
func (s Session) Occupies() bool {
	return s.Status != SessionStatusCancelled
}
