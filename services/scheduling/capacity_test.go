package scheduling

import (
	"testing"

	"caresched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }

func TestNormalizeClientHourCapacity_AuthorizedAndUnscheduled(t *testing.T) {
	rec := NormalizeClientHourCapacity(models.Client{
		AuthorizedHoursPerMonth: fptr(20),
		HoursProvidedPerMonth:   5,
		UnscheduledHours:        fptr(3),
	})

	assert.Equal(t, 3.0, rec.RemainingHours)
	assert.Equal(t, 180, rec.RemainingMinutes)
	require.NotNil(t, rec.AuthorizedHours)
	assert.Equal(t, 20.0, *rec.AuthorizedHours)
}

func TestNormalizeClientHourCapacity_NoAuthorization(t *testing.T) {
	rec := NormalizeClientHourCapacity(models.Client{
		UnscheduledHours: fptr(4),
	})

	assert.Equal(t, 4.0, rec.RemainingHours)
	assert.Equal(t, 240, rec.RemainingMinutes)
	assert.Nil(t, rec.AuthorizedHours)
}

func TestNormalizeClientHourCapacity_ProvidedExceedsAuthorized(t *testing.T) {
	rec := NormalizeClientHourCapacity(models.Client{
		AuthorizedHoursPerMonth: fptr(10),
		HoursProvidedPerMonth:   12,
		UnscheduledHours:        fptr(8),
	})

	assert.Equal(t, 0.0, rec.RemainingHours)
	assert.Equal(t, 0, rec.RemainingMinutes)
}

func TestNormalizeClientHourCapacity_UnscheduledDoesNotClampWhenLarger(t *testing.T) {
	rec := NormalizeClientHourCapacity(models.Client{
		AuthorizedHoursPerMonth: fptr(10),
		HoursProvidedPerMonth:   4,
		UnscheduledHours:        fptr(20),
	})

	assert.Equal(t, 6.0, rec.RemainingHours)
	assert.Equal(t, 360, rec.RemainingMinutes)
}

func TestNormalizeClientHourCapacity_Defaults(t *testing.T) {
	rec := NormalizeClientHourCapacity(models.Client{})

	assert.Equal(t, 0.0, rec.RemainingHours)
	assert.Equal(t, 0, rec.RemainingMinutes)
	assert.Nil(t, rec.AuthorizedHours)
}

func TestNormalizeClientHourCapacity_FractionalHours(t *testing.T) {
	rec := NormalizeClientHourCapacity(models.Client{
		UnscheduledHours: fptr(0.75),
	})

	assert.Equal(t, 0.75, rec.RemainingHours)
	assert.Equal(t, 45, rec.RemainingMinutes)
}
