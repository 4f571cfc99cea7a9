package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Color      *string         `json:"color,omitempty"`
	Timezone   string          `json:"timezone"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	InviteCode string          `json:"invite_code"`
	Settings   json.RawMessage `json:"settings"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Membership roles within a team.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership statuses. Leaving or being removed flips the status to
// inactive; rows are never hard-deleted so the history stays auditable.
const (
	MembershipActive   = "active"
	MembershipInactive = "inactive"
	MembershipPending  = "pending"
)

type Membership struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *User     `json:"user,omitempty"`
}

func (m *Membership) IsActive() bool {
	return m.Status == MembershipActive
}
