package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment statuses. A decline is terminal: the only path back to
// confirmed is for a leader to delete and recreate the assignment.
const (
	AssignmentPending   = "pending"
	AssignmentConfirmed = "confirmed"
	AssignmentDeclined  = "declined"
)

type Assignment struct {
	ID            uuid.UUID  `json:"id"`
	ServiceID     uuid.UUID  `json:"service_id"`
	MembershipID  uuid.UUID  `json:"membership_id"`
	RoleID        uuid.UUID  `json:"role_id"`
	Status        string     `json:"status"`
	DeclineReason *string    `json:"decline_reason,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Membership    *Membership `json:"membership,omitempty"`
	Role          *Role       `json:"role,omitempty"`
}

func CanAssignmentTransition(from, to string) bool {
	if from != AssignmentPending {
		return false
	}
	return to == AssignmentConfirmed || to == AssignmentDeclined
}
