package scheduling

import (
	"fmt"
	"hash/fnv"
	"io"
	"sync"
	"time"

	"caresched/models"
)

// resultCache memoizes full scheduling runs keyed by a signature of the
// complete input. It is process-local and must be explicitly clearable so
// tests can force recomputation.
type resultCache struct {
	mu sync.RWMutex
	m  map[uint64]*models.ScheduleResult
}

func (c *resultCache) get(sig uint64) *models.ScheduleResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.m[sig]
}

func (c *resultCache) put(sig uint64, result *models.ScheduleResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[uint64]*models.ScheduleResult)
	}
	c.m[sig] = result
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = nil
}

// inputSignature hashes every input that can influence a run. Availability
// maps are walked in fixed weekday order so the signature never depends on
// map iteration.
func inputSignature(
	therapists []models.Therapist,
	clients []models.Client,
	sessions []models.Session,
	windowStart, windowEnd time.Time,
	sessionMinutes int,
) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "w|%d|%d|%d;", windowStart.Unix(), windowEnd.Unix(), sessionMinutes)
	for _, t := range therapists {
		fmt.Fprintf(h, "t|%s|%d;", t.ID, t.MaxConcurrentClients)
		writeAvailability(h, t.Availability)
	}
	for _, c := range clients {
		fmt.Fprintf(h, "c|%s|%s|%v|%v|%v;", c.ID, c.Address,
			floatOrNil(c.AuthorizedHoursPerMonth), c.HoursProvidedPerMonth, floatOrNil(c.UnscheduledHours))
		writeAvailability(h, c.Availability)
	}
	for _, s := range sessions {
		fmt.Fprintf(h, "s|%s|%s|%s|%d|%d|%s;", s.ID, s.TherapistID, s.ClientID,
			s.StartTime.Unix(), s.EndTime.Unix(), s.Status)
	}
	return h.Sum64()
}

func writeAvailability(h io.Writer, avail map[time.Weekday]models.DayWindow) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if w, ok := avail[wd]; ok {
			fmt.Fprintf(h, "a|%d|%d|%d;", wd, w.Start, w.End)
		}
	}
}

func floatOrNil(f *float64) any {
	if f == nil {
		return "nil"
	}
	return *f
}
