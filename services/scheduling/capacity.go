package scheduling

import (
	"math"

	"caresched/models"
)

// NormalizeClientHourCapacity computes the client's remaining schedulable
// capacity for the current authorization period. Pure; absent numeric inputs
// default to zero.
//
// With an authorization configured, remaining hours are the authorized budget
// minus hours already provided, clamped at zero and further clamped to the
// pre-computed unscheduled remainder when that is smaller. Without one, the
// unscheduled remainder stands alone and AuthorizedHours is nil.
func NormalizeClientHourCapacity(client models.Client) models.CapacityRecord {
	var remaining float64
	var authorized *float64

	if client.AuthorizedHoursPerMonth != nil {
		a := *client.AuthorizedHoursPerMonth
		authorized = &a
		remaining = math.Max(0, a-client.HoursProvidedPerMonth)
		if client.UnscheduledHours != nil && *client.UnscheduledHours < remaining {
			remaining = *client.UnscheduledHours
		}
	} else if client.UnscheduledHours != nil {
		remaining = *client.UnscheduledHours
	}
	if remaining < 0 {
		remaining = 0
	}

	return models.CapacityRecord{
		RemainingHours:   remaining,
		RemainingMinutes: int(math.Round(remaining * 60)),
		AuthorizedHours:  authorized,
	}
}
