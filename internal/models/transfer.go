package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransferPending   = "pending"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
	TransferExpired   = "expired"
)

// OwnershipTransfer records an in-flight owner handoff between two active
// memberships of the same team.
type OwnershipTransfer struct {
	ID         uuid.UUID `json:"id"`
	TeamID     uuid.UUID `json:"team_id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func CanTransferTransition(from, to string) bool {
	if from != TransferPending {
		return false
	}
	return to == TransferCompleted || to == TransferCancelled || to == TransferExpired
}

func (t *OwnershipTransfer) ExpiredBy(now time.Time) bool {
	return t.Status == TransferPending && now.After(t.ExpiresAt)
}
