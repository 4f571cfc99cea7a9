package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvitationPending   = "pending"
	InvitationAccepted  = "accepted"
	InvitationExpired   = "expired"
	InvitationCancelled = "cancelled"
)

type Invitation struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	InviterID uuid.UUID `json:"inviter_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Team      *Team     `json:"team,omitempty"`
	Inviter   *User     `json:"inviter,omitempty"`
}

func CanInvitationTransition(from, to string) bool {
	if from != InvitationPending {
		return false
	}
	return to == InvitationAccepted || to == InvitationExpired || to == InvitationCancelled
}

// ExpiredBy reports whether a still-pending invitation has passed its
// expiry. Expiry is detected lazily at read time, not by a background job.
func (i *Invitation) ExpiredBy(now time.Time) bool {
	return i.Status == InvitationPending && now.After(i.ExpiresAt)
}
