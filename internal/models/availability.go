package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a member's yes/no response for a calendar date,
// independent of any specific service. Absence of a row means "unknown",
// which is distinct from an explicit is_available = false.
type Availability struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	UserID      uuid.UUID `json:"user_id"`
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"is_available"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvailabilityEntry is one date's worth of a bulk submission.
type AvailabilityEntry struct {
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"is_available"`
	Reason      *string   `json:"reason,omitempty"`
}
