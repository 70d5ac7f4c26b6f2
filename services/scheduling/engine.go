package scheduling

import (
	"math"
	"sort"
	"sync"
	"time"

	"caresched/models"
	"caresched/services/geocode"

	"go.uber.org/zap"
)

// Scoring constants. Shorter travel distance earns more points; a client
// without a resolvable address contributes the neutral midpoint so missing
// data neither helps nor hurts the pairing.
const (
	maxTravelPoints    = 45.0
	maxTravelKm        = 10.0
	neutralTravelPts   = maxTravelPoints / 2
	defaultSessionMins = 60
)

// Engine computes conflict-free, ranked candidate slots over a date window.
// It is a pure batch computation over immutable inputs; geocoding lookups are
// its only side effect.
type Engine struct {
	Geo            *geocode.Service
	Logger         *zap.Logger
	SessionMinutes int // standard session length gating capacity eligibility
	MaxWindowDays  int // 0 means unlimited

	cache resultCache
}

// NewEngine builds an Engine. sessionMinutes <= 0 falls back to the standard
// 60-minute session.
func NewEngine(geo *geocode.Service, logger *zap.Logger, sessionMinutes int) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionMinutes <= 0 {
		sessionMinutes = defaultSessionMins
	}
	return &Engine{Geo: geo, Logger: logger, SessionMinutes: sessionMinutes}
}

// candidate is one (client, therapist, day) pairing surviving availability
// intersection and conflict exclusion, prior to scoring.
type candidate struct {
	therapist models.Therapist
	client    models.Client
	start     time.Time
	end       time.Time
	location  *models.GeocodedLocation
	score     float64
}

// GenerateOptimalSchedule produces ranked session slots for every eligible
// client across [windowStart, windowEnd], plus the clients excluded because
// their remaining minutes cannot cover one standard session. The two lists
// are mutually exclusive over the client set.
func (e *Engine) GenerateOptimalSchedule(
	therapists []models.Therapist,
	clients []models.Client,
	existingSessions []models.Session,
	windowStart, windowEnd time.Time,
) (*models.ScheduleResult, error) {
	if windowEnd.Before(windowStart) {
		return nil, ErrInvalidWindow
	}
	startDay := midnight(windowStart)
	endDay := midnight(windowEnd)
	days := int(endDay.Sub(startDay).Hours()/24) + 1
	if e.MaxWindowDays > 0 && days > e.MaxWindowDays {
		return nil, ErrWindowTooWide
	}

	sig := inputSignature(therapists, clients, existingSessions, windowStart, windowEnd, e.SessionMinutes)
	if cached := e.cache.get(sig); cached != nil {
		return cached, nil
	}

	// Eligibility filter runs before any availability search: a client with
	// insufficient remaining capacity never consumes matching work.
	capacities := make(map[string]models.CapacityRecord, len(clients))
	var eligible []models.Client
	var capped []models.CappedClientInfo
	for _, c := range clients {
		rec := NormalizeClientHourCapacity(c)
		capacities[c.ID] = rec
		if rec.RemainingMinutes < e.SessionMinutes {
			capped = append(capped, models.CappedClientInfo{
				ClientID:         c.ID,
				RemainingMinutes: rec.RemainingMinutes,
			})
			continue
		}
		eligible = append(eligible, c)
	}
	sort.Slice(capped, func(i, j int) bool { return capped[i].ClientID < capped[j].ClientID })

	candidates := e.buildCandidates(therapists, eligible, existingSessions, startDay, days)
	e.scoreCandidates(candidates)

	// Deterministic ranking: score, then fixed tie-break keys, so parallel
	// scoring cannot leak goroutine or map ordering.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.client.ID != b.client.ID {
			return a.client.ID < b.client.ID
		}
		if a.therapist.ID != b.therapist.ID {
			return a.therapist.ID < b.therapist.ID
		}
		return a.start.Before(b.start)
	})

	slots := e.selectSlots(candidates, capacities)

	result := &models.ScheduleResult{
		Slots:         slots,
		CappedClients: capped,
	}
	if result.Slots == nil {
		result.Slots = []models.ScheduleSlot{}
	}
	if result.CappedClients == nil {
		result.CappedClients = []models.CappedClientInfo{}
	}
	e.cache.put(sig, result)

	e.Logger.Debug("schedule generated",
		zap.Int("candidates", len(candidates)),
		zap.Int("slots", len(result.Slots)),
		zap.Int("capped", len(result.CappedClients)))
	return result, nil
}

// ClearScheduleCache drops all memoized results, forcing recomputation on the
// next run. The geocoding cache is owned by the Geo service and is not
// touched.
func (e *Engine) ClearScheduleCache() {
	e.cache.clear()
}

// buildCandidates intersects client and therapist availability for each day
// of the window and discards pairings that overlap an existing session for
// either party.
func (e *Engine) buildCandidates(
	therapists []models.Therapist,
	eligible []models.Client,
	existingSessions []models.Session,
	startDay time.Time,
	days int,
) []*candidate {
	sessionLen := time.Duration(e.SessionMinutes) * time.Minute

	var candidates []*candidate
	for offset := 0; offset < days; offset++ {
		day := startDay.AddDate(0, 0, offset)
		weekday := day.Weekday()
		for _, client := range eligible {
			cw, ok := client.Availability[weekday]
			if !ok {
				continue
			}
			for _, therapist := range therapists {
				tw, ok := therapist.Availability[weekday]
				if !ok {
					continue
				}
				interStart := max(cw.Start, tw.Start)
				interEnd := min(cw.End, tw.End)
				if interEnd-interStart < e.SessionMinutes {
					continue
				}

				// One candidate per triple, anchored at the intersection
				// start. A session occupying that anchor removes the day's
				// pairing; candidates never slide later within the window.
				start := day.Add(time.Duration(interStart) * time.Minute)
				end := start.Add(sessionLen)
				if overlapsExisting(existingSessions, therapist.ID, client.ID, start, end) {
					continue
				}

				candidates = append(candidates, &candidate{
					therapist: therapist,
					client:    client,
					start:     start,
					end:       end,
				})
			}
		}
	}
	return candidates
}

// scoreCandidates resolves each candidate's location and computes its score.
// Candidates are independent, so scoring fans out across goroutines; ordering
// is re-imposed by the caller's deterministic sort.
func (e *Engine) scoreCandidates(candidates []*candidate) {
	var wg sync.WaitGroup
	for _, cand := range candidates {
		wg.Add(1)
		go func(cand *candidate) {
			defer wg.Done()
			if cand.client.Address != "" && e.Geo != nil {
				cand.location = e.Geo.Geocode(cand.client.Address)
			}
			cand.score = travelScore(cand.location)
		}(cand)
	}
	wg.Wait()
}

// selectSlots walks the ranked candidates and assigns at most one slot per
// client per day, consuming each client's remaining minutes as it goes and
// never double-booking a therapist within the run.
func (e *Engine) selectSlots(candidates []*candidate, capacities map[string]models.CapacityRecord) []models.ScheduleSlot {
	remaining := make(map[string]int, len(capacities))
	for id, rec := range capacities {
		remaining[id] = rec.RemainingMinutes
	}

	type interval struct{ start, end time.Time }
	therapistBusy := make(map[string][]interval)
	clientDay := make(map[string]bool)
	therapistClients := make(map[string]map[string]bool)

	var slots []models.ScheduleSlot
	for _, cand := range candidates {
		if remaining[cand.client.ID] < e.SessionMinutes {
			continue
		}
		dayKey := cand.client.ID + "|" + cand.start.Format("2006-01-02")
		if clientDay[dayKey] {
			continue
		}
		busy := false
		for _, iv := range therapistBusy[cand.therapist.ID] {
			if cand.start.Before(iv.end) && iv.start.Before(cand.end) {
				busy = true
				break
			}
		}
		if busy {
			continue
		}
		if cand.therapist.MaxConcurrentClients > 0 {
			served := therapistClients[cand.therapist.ID]
			if served == nil {
				served = make(map[string]bool)
				therapistClients[cand.therapist.ID] = served
			}
			if !served[cand.client.ID] && len(served) >= cand.therapist.MaxConcurrentClients {
				continue
			}
			served[cand.client.ID] = true
		}

		slots = append(slots, models.ScheduleSlot{
			TherapistID: cand.therapist.ID,
			ClientID:    cand.client.ID,
			StartTime:   cand.start,
			EndTime:     cand.end,
			Location:    cand.location,
			Score:       cand.score,
		})
		remaining[cand.client.ID] -= e.SessionMinutes
		clientDay[dayKey] = true
		therapistBusy[cand.therapist.ID] = append(therapistBusy[cand.therapist.ID], interval{cand.start, cand.end})
	}
	return slots
}

// travelScore converts distance from the service base into ranking points:
// shorter travel earns more, anything beyond maxTravelKm earns zero, and an
// unresolvable location earns the neutral midpoint.
func travelScore(loc *models.GeocodedLocation) float64 {
	if loc == nil {
		return neutralTravelPts
	}
	d := haversine(geocode.BaseLatitude, geocode.BaseLongitude, loc.Latitude, loc.Longitude)
	if d >= maxTravelKm {
		return 0
	}
	return maxTravelPoints * (1 - d/maxTravelKm)
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

func overlapsExisting(sessions []models.Session, therapistID, clientID string, start, end time.Time) bool {
	for _, s := range sessions {
		if !s.Occupies() {
			continue
		}
		if s.TherapistID != therapistID && s.ClientID != clientID {
			continue
		}
		if start.Before(s.EndTime) && s.StartTime.Before(end) {
			return true
		}
	}
	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
