package schedule

import (
	"time"

	"github.com/schul92/worshipteam-api/internal/models"
)

// Per-date staffing buckets for the leader dashboard.
const (
	DayComplete = "complete"
	DayPartial  = "partial"
	DayPending  = "pending"
)

// CountSources holds up to three assignment counts for one service, in
// fixed priority: a per-service detail fetch (live breakdown), then the
// server's aggregate column, then a local cache entry. List queries
// return the cheaper, staler tiers; the detail tier arrives later and
// wins once present.
type CountSources struct {
	Detail    *int
	Aggregate *int
	Cached    *int
}

// Resolve picks the highest-priority count available. The second return
// reports whether any tier had data.
func (c CountSources) Resolve() (int, bool) {
	if c.Detail != nil {
		return *c.Detail, true
	}
	if c.Aggregate != nil {
		return *c.Aggregate, true
	}
	if c.Cached != nil {
		return *c.Cached, true
	}
	return 0, false
}

// DatedService is one service on a dashboard date with its count sources.
type DatedService struct {
	Service models.Service
	Counts  CountSources
}

type DaySummary struct {
	Date     time.Time `json:"date"`
	Expected int       `json:"expected"`
	Assigned int       `json:"assigned"`
	Status   string    `json:"status"`
}

// SummarizeDay computes a date's staffing status. Expected slots are the
// sum, over service types whose default weekday matches the date, of the
// distinct services matching that type; when no type matches, one slot is
// expected. Assigned counts the services with at least one assignment.
func SummarizeDay(date time.Time, services []DatedService, types []models.ServiceType) DaySummary {
	expected := 0
	for _, st := range types {
		if st.DefaultWeekday != int(date.Weekday()) {
			continue
		}
		for _, ds := range services {
			if resolved := ResolveType(ds.Service, types); resolved != nil && resolved.ID == st.ID {
				expected++
			}
		}
	}
	if expected == 0 {
		expected = 1
	}

	assigned := 0
	for _, ds := range services {
		if n, ok := ds.Counts.Resolve(); ok && n > 0 {
			assigned++
		}
	}

	status := DayPending
	switch {
	case assigned == 0:
		status = DayPending
	case assigned >= expected:
		status = DayComplete
	default:
		status = DayPartial
	}

	return DaySummary{Date: date, Expected: expected, Assigned: assigned, Status: status}
}
