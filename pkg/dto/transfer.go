package dto

import "github.com/google/uuid"

type InitiateTransferRequest struct {
	ToUserID uuid.UUID `json:"to_user_id"`
}

type CompleteTransferRequest struct {
	PriorOwnerRole string `json:"prior_owner_role"`
}

type TransferResponse struct {
	ID         uuid.UUID `json:"id"`
	TeamID     uuid.UUID `json:"team_id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Status     string    `json:"status"`
	ExpiresAt  string    `json:"expires_at"`
}
