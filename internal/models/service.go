package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType is a team-configured template (name + default weekday) used
// to classify service rows. Weekday follows time.Weekday (Sunday = 0).
type ServiceType struct {
	ID             uuid.UUID `json:"id"`
	TeamID         uuid.UUID `json:"team_id"`
	Name           string    `json:"name"`
	DefaultWeekday int       `json:"default_weekday"`
	DisplayOrder   int       `json:"display_order"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Service statuses. A draft service is an availability request with no
// binding force; members only ever see published and completed services.
const (
	ServiceDraft     = "draft"
	ServicePublished = "published"
	ServiceCompleted = "completed"
	ServiceCancelled = "cancelled"
)

type Service struct {
	ID            uuid.UUID  `json:"id"`
	TeamID        uuid.UUID  `json:"team_id"`
	ServiceTypeID *uuid.UUID `json:"service_type_id,omitempty"`
	Name          string     `json:"name"`
	Date          time.Time  `json:"date"`
	StartTime     *string    `json:"start_time,omitempty"`
	EndTime       *string    `json:"end_time,omitempty"`
	RehearsalDate *time.Time `json:"rehearsal_date,omitempty"`
	RehearsalTime *string    `json:"rehearsal_time,omitempty"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// serviceTransitions encodes draft → published → completed, with
// cancellation reachable from draft and published only.
var serviceTransitions = map[string][]string{
	ServiceDraft:     {ServicePublished, ServiceCancelled},
	ServicePublished: {ServiceCompleted, ServiceCancelled},
}

// CanServiceTransition reports whether a service may move between the two
// statuses. Transitions only move forward; there is no un-publish.
func CanServiceTransition(from, to string) bool {
	for _, next := range serviceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Service) VisibleToMembers() bool {
	return s.Status == ServicePublished || s.Status == ServiceCompleted
}
