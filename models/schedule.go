package models

import "time"

// ScheduleSlot is one ranked candidate pairing produced by a scheduling run.
// Produced fresh per run and never mutated afterward.
type ScheduleSlot struct {
	TherapistID string            `json:"therapist_id"`
	ClientID    string            `json:"client_id"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Location    *GeocodedLocation `json:"location,omitempty"` // nil when the client has no address
	Score       float64           `json:"score"`
}

// CappedClientInfo explains why a client received no slot: its remaining
// authorized/unscheduled minutes cannot cover one standard session.
type CappedClientInfo struct {
	ClientID         string `json:"client_id"`
	RemainingMinutes int    `json:"remaining_minutes"`
}

// ScheduleResult is the full output of one scheduling run. Slots and
// CappedClients are mutually exclusive over the client set.
type ScheduleResult struct {
	Slots         []ScheduleSlot     `json:"slots"`
	CappedClients []CappedClientInfo `json:"capped_clients"`
}

// ScheduleRequest is the HTTP payload for a scheduling run.
type ScheduleRequest struct {
	Therapists  []Therapist `json:"therapists" binding:"required"`
	Clients     []Client    `json:"clients" binding:"required"`
	Sessions    []Session   `json:"sessions"`
	WindowStart time.Time   `json:"window_start" binding:"required"`
	WindowEnd   time.Time   `json:"window_end" binding:"required"`
}
