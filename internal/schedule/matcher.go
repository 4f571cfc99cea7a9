// Package schedule derives client-facing views from service, availability
// and assignment rows: which dates a member still owes a response, the
// team schedule, and per-date staffing summaries.
package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/models"
)

// PendingRequest is a draft service the member has not yet answered.
type PendingRequest struct {
	Service       models.Service `json:"service"`
	ServiceTypeID *uuid.UUID     `json:"service_type_id,omitempty"`
}

// SubmittedResponse pairs a draft service with the availability row the
// member already filed for its date.
type SubmittedResponse struct {
	Service     models.Service `json:"service"`
	IsAvailable bool           `json:"is_available"`
	Reason      *string        `json:"reason,omitempty"`
}

type MatchResult struct {
	Pending   []PendingRequest    `json:"pending"`
	Responded []SubmittedResponse `json:"responded"`
}

// ParseServiceName splits the legacy "<M>/<D> <TypeName>" encoding and
// returns the type name. Rows written before service_type_id existed
// carry the type only in the name, so this shim stays on the read path.
func ParseServiceName(name string) (string, bool) {
	first, rest, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found || rest == "" {
		return "", false
	}

	month, day, ok := strings.Cut(first, "/")
	if !ok || !allDigits(month) || !allDigits(day) {
		return "", false
	}
	return rest, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveType finds the service type a service row belongs to. The
// explicit service_type_id wins; the name shim is the fallback. A nil
// result means the service is ad-hoc.
func ResolveType(svc models.Service, types []models.ServiceType) *models.ServiceType {
	if svc.ServiceTypeID != nil {
		for i := range types {
			if types[i].ID == *svc.ServiceTypeID {
				return &types[i]
			}
		}
	}

	name, ok := ParseServiceName(svc.Name)
	if !ok {
		return nil
	}
	for i := range types {
		if types[i].Name == name {
			return &types[i]
		}
	}
	return nil
}

// genuine reports whether a service row is a real instance of its
// resolved type. A weekday mismatch means the stored row drifted from the
// type's canonical schedule and must be hidden; ad-hoc services are
// always genuine.
func genuine(svc models.Service, types []models.ServiceType) bool {
	st := ResolveType(svc, types)
	if st == nil {
		return true
	}
	return int(svc.Date.Weekday()) == st.DefaultWeekday
}

// Match derives the pending-response and already-responded lists for a
// member from the draft services in the window, the team's service types
// and the member's availability rows. The derivation is a pure snapshot:
// callers replace their prior state with the result wholesale, so local
// entries for drafts the store no longer has simply vanish.
func Match(drafts []models.Service, types []models.ServiceType, avail []models.Availability) MatchResult {
	byDate := make(map[string]models.Availability, len(avail))
	for _, a := range avail {
		byDate[dateKey(a.Date)] = a
	}

	var result MatchResult
	for _, svc := range drafts {
		if svc.Status != models.ServiceDraft || !genuine(svc, types) {
			continue
		}

		if a, ok := byDate[dateKey(svc.Date)]; ok {
			result.Responded = append(result.Responded, SubmittedResponse{
				Service:     svc,
				IsAvailable: a.IsAvailable,
				Reason:      a.Reason,
			})
			continue
		}

		var typeID *uuid.UUID
		if st := ResolveType(svc, types); st != nil {
			typeID = &st.ID
		}
		result.Pending = append(result.Pending, PendingRequest{Service: svc, ServiceTypeID: typeID})
	}
	return result
}

// TeamSchedule filters a window of services for the schedule view,
// applying the same weekday guard as Match.
func TeamSchedule(services []models.Service, types []models.ServiceType) []models.Service {
	out := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if genuine(svc, types) {
			out = append(out, svc)
		}
	}
	return out
}

// Window returns the active availability window: the first day of the
// month containing now through the last day of the following month.
func Window(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 2, -1)
	return start, end
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
