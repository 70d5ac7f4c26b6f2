package models

import "time"

// Therapist represents a care provider available for session matching.
// Immutable for the duration of a scheduling run.
type Therapist struct {
	ID                   string                     `bson:"id" json:"id"`
	Name                 string                     `bson:"name" json:"name"`
	Availability         map[time.Weekday]DayWindow `bson:"availability" json:"availability"` // days absent from the map are unavailable
	MinHoursPerWeek      float64                    `bson:"minHoursPerWeek,omitempty" json:"minHoursPerWeek,omitempty"`
	MaxHoursPerWeek      float64                    `bson:"maxHoursPerWeek,omitempty" json:"maxHoursPerWeek,omitempty"`
	MaxConcurrentClients int                        `bson:"maxConcurrentClients,omitempty" json:"maxConcurrentClients,omitempty"`
	ServiceTypes         []string                   `bson:"serviceTypes,omitempty" json:"serviceTypes,omitempty"`
}
