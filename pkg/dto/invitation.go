package dto

import "github.com/google/uuid"

type CreateInvitationRequest struct {
	Email string `json:"email"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

type InvitationResponse struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	Status    string    `json:"status"`
	ExpiresAt string    `json:"expires_at"`
}
