package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a musical part a team schedules (vocals, drums, keys, ...),
// distinct from the membership role constants in team.go.
type Role struct {
	ID           uuid.UUID `json:"id"`
	TeamID       uuid.UUID `json:"team_id"`
	Name         string    `json:"name"`
	NameKo       *string   `json:"name_ko,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MemberRole links a membership to a musical part. At most one per
// membership is marked primary.
type MemberRole struct {
	ID           uuid.UUID `json:"id"`
	MembershipID uuid.UUID `json:"membership_id"`
	RoleID       uuid.UUID `json:"role_id"`
	IsPrimary    bool      `json:"is_primary"`
	Proficiency  int       `json:"proficiency"`
	CreatedAt    time.Time `json:"created_at"`
	Role         *Role     `json:"role,omitempty"`
}
