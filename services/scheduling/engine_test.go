package scheduling

import (
	"testing"
	"time"

	"caresched/models"
	"caresched/services/geocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func weekdayAvailability(start, end int) map[time.Weekday]models.DayWindow {
	avail := make(map[time.Weekday]models.DayWindow)
	for wd := time.Monday; wd <= time.Friday; wd++ {
		avail[wd] = models.DayWindow{Start: start, End: end}
	}
	return avail
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(geocode.NewService(zap.NewNop()), zap.NewNop(), 60)
}

// Monday through Friday, fixed week.
var (
	testWindowStart = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	testWindowEnd   = time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
)

func TestGenerateOptimalSchedule_ZeroRemainingClientIsCapped(t *testing.T) {
	engine := newTestEngine(t)

	therapist := models.Therapist{ID: "th-1", Availability: weekdayAvailability(540, 1020)}
	client := models.Client{
		ID:                      "cl-1",
		Availability:            weekdayAvailability(540, 1020),
		AuthorizedHoursPerMonth: fptr(10),
		HoursProvidedPerMonth:   10,
	}

	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{client}, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)

	assert.Empty(t, result.Slots)
	require.Len(t, result.CappedClients, 1)
	assert.Equal(t, "cl-1", result.CappedClients[0].ClientID)
	assert.Equal(t, 0, result.CappedClients[0].RemainingMinutes)
}

func TestGenerateOptimalSchedule_FractionalCapacityIsCapped(t *testing.T) {
	engine := newTestEngine(t)

	therapist := models.Therapist{ID: "th-1", Availability: weekdayAvailability(540, 1020)}
	client := models.Client{
		ID:               "cl-frac",
		Availability:     weekdayAvailability(540, 1020),
		UnscheduledHours: fptr(0.75),
	}

	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{client}, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)

	assert.Empty(t, result.Slots)
	require.Len(t, result.CappedClients, 1)
	assert.Equal(t, 45, result.CappedClients[0].RemainingMinutes)
}

func TestGenerateOptimalSchedule_CappedAndEligibleAreMutuallyExclusive(t *testing.T) {
	engine := newTestEngine(t)

	therapist := models.Therapist{ID: "th-1", Availability: weekdayAvailability(540, 1020)}
	capped := models.Client{
		ID:                      "cl-capped",
		Availability:            weekdayAvailability(540, 1020),
		AuthorizedHoursPerMonth: fptr(10),
		HoursProvidedPerMonth:   10,
	}
	eligible := models.Client{
		ID:               "cl-eligible",
		Availability:     weekdayAvailability(600, 720),
		UnscheduledHours: fptr(5),
	}

	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{capped, eligible}, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)

	require.NotEmpty(t, result.Slots)
	slotClients := make(map[string]bool)
	for _, slot := range result.Slots {
		slotClients[slot.ClientID] = true
	}
	assert.True(t, slotClients["cl-eligible"])
	assert.False(t, slotClients["cl-capped"])

	require.Len(t, result.CappedClients, 1)
	assert.Equal(t, "cl-capped", result.CappedClients[0].ClientID)
}

func TestGenerateOptimalSchedule_RespectsRemainingCapacity(t *testing.T) {
	engine := newTestEngine(t)

	therapist := models.Therapist{ID: "th-1", Availability: weekdayAvailability(540, 1020)}
	client := models.Client{
		ID:               "cl-1",
		Availability:     weekdayAvailability(540, 1020),
		UnscheduledHours: fptr(2), // only two one-hour sessions fit
	}

	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{client}, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)

	assert.Len(t, result.Slots, 2)
	seenDays := make(map[string]bool)
	for _, slot := range result.Slots {
		day := slot.StartTime.Format("2006-01-02")
		assert.False(t, seenDays[day], "client assigned twice on %s", day)
		seenDays[day] = true
	}
}

func TestGenerateOptimalSchedule_ExcludesExistingSessionOverlap(t *testing.T) {
	engine := newTestEngine(t)

	// Availability exactly one session long, so any overlap kills the day.
	therapist := models.Therapist{ID: "th-1", Availability: weekdayAvailability(540, 600)}
	client := models.Client{
		ID:               "cl-1",
		Availability:     weekdayAvailability(540, 600),
		UnscheduledHours: fptr(10),
	}

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	existing := models.Session{
		ID:          "sess-1",
		TherapistID: "th-1",
		ClientID:    "someone-else",
		StartTime:   monday.Add(9 * time.Hour),
		EndTime:     monday.Add(10 * time.Hour),
		Status:      models.SessionStatusScheduled,
	}

	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{client},
		[]models.Session{existing}, monday, monday)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)

	// A cancelled session no longer occupies its range.
	existing.Status = models.SessionStatusCancelled
	engine.ClearScheduleCache()
	result, err = engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{client},
		[]models.Session{existing}, monday, monday)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 1)
}

func TestGenerateOptimalSchedule_DeterministicAcrossRuns(t *testing.T) {
	engine := newTestEngine(t)

	therapists := []models.Therapist{
		{ID: "th-1", Availability: weekdayAvailability(540, 1020)},
		{ID: "th-2", Availability: weekdayAvailability(540, 1020)},
	}
	clients := []models.Client{
		{ID: "cl-1", Availability: weekdayAvailability(540, 1020), Address: "12 Oak Street, Springfield", UnscheduledHours: fptr(3)},
		{ID: "cl-2", Availability: weekdayAvailability(540, 1020), Address: "99 Elm Avenue, Shelbyville", UnscheduledHours: fptr(3)},
	}

	first, err := engine.GenerateOptimalSchedule(therapists, clients, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)
	require.NotEmpty(t, first.Slots)

	// Clearing only the schedule cache must not change locations or scores.
	engine.ClearScheduleCache()
	second, err := engine.GenerateOptimalSchedule(therapists, clients, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)

	require.Equal(t, len(first.Slots), len(second.Slots))
	for i := range first.Slots {
		assert.Equal(t, first.Slots[i].ClientID, second.Slots[i].ClientID)
		assert.Equal(t, first.Slots[i].TherapistID, second.Slots[i].TherapistID)
		assert.Equal(t, first.Slots[i].Location, second.Slots[i].Location)
		assert.InDelta(t, first.Slots[i].Score, second.Slots[i].Score, 1e-6)
	}
}

func TestGenerateOptimalSchedule_MissingAddressGetsNeutralScore(t *testing.T) {
	engine := newTestEngine(t)

	therapist := models.Therapist{ID: "th-1", Availability: weekdayAvailability(540, 660)}
	client := models.Client{
		ID:               "cl-1",
		Availability:     weekdayAvailability(540, 660),
		UnscheduledHours: fptr(1),
	}

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, []models.Client{client}, nil, monday, monday)
	require.NoError(t, err)

	require.Len(t, result.Slots, 1)
	assert.Nil(t, result.Slots[0].Location)
	assert.InDelta(t, neutralTravelPts, result.Slots[0].Score, 1e-9)
}

func TestGenerateOptimalSchedule_InvalidWindow(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.GenerateOptimalSchedule(nil, nil, nil, testWindowEnd, testWindowStart)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGenerateOptimalSchedule_NoTherapistsYieldsEmptyResult(t *testing.T) {
	engine := newTestEngine(t)

	client := models.Client{
		ID:               "cl-1",
		Availability:     weekdayAvailability(540, 1020),
		UnscheduledHours: fptr(4),
	}

	result, err := engine.GenerateOptimalSchedule(nil, []models.Client{client}, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Empty(t, result.CappedClients)
}

func TestGenerateOptimalSchedule_MaxConcurrentClients(t *testing.T) {
	engine := newTestEngine(t)

	therapist := models.Therapist{
		ID:                   "th-1",
		Availability:         weekdayAvailability(540, 1020),
		MaxConcurrentClients: 1,
	}
	clients := []models.Client{
		{ID: "cl-1", Availability: weekdayAvailability(540, 1020), UnscheduledHours: fptr(2)},
		{ID: "cl-2", Availability: weekdayAvailability(540, 1020), UnscheduledHours: fptr(2)},
	}

	result, err := engine.GenerateOptimalSchedule(
		[]models.Therapist{therapist}, clients, nil, testWindowStart, testWindowEnd)
	require.NoError(t, err)

	served := make(map[string]bool)
	for _, slot := range result.Slots {
		served[slot.ClientID] = true
	}
	assert.Len(t, served, 1)
}
