package models

import "time"

// Client represents a client awaiting session placement.
// Immutable for the duration of a scheduling run.
type Client struct {
	ID           string                     `bson:"id" json:"id"`
	Name         string                     `bson:"name" json:"name"`
	Availability map[time.Weekday]DayWindow `bson:"availability" json:"availability"`
	Address      string                     `bson:"address,omitempty" json:"address,omitempty"`

	// AuthorizedHoursPerMonth is the insurance-approved hour budget for the
	// current billing period. Nil means no cap is configured.
	AuthorizedHoursPerMonth *float64 `bson:"authorizedHoursPerMonth,omitempty" json:"authorizedHoursPerMonth,omitempty"`
	// HoursProvidedPerMonth counts hours already delivered this period.
	HoursProvidedPerMonth float64 `bson:"hoursProvidedPerMonth,omitempty" json:"hoursProvidedPerMonth,omitempty"`
	// UnscheduledHours is a pre-computed remainder independent of authorization.
	UnscheduledHours *float64 `bson:"unscheduledHours,omitempty" json:"unscheduledHours,omitempty"`
}

// CapacityRecord is the derived schedulable capacity for a client. Not persisted.
type CapacityRecord struct {
	RemainingHours   float64  `json:"remainingHours"`
	RemainingMinutes int      `json:"remainingMinutes"`
	AuthorizedHours  *float64 `json:"authorizedHours"` // nil when no cap is configured
}
