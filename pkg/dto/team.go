package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreateTeamRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
}

type UpdateTeamRequest struct {
	Name     string          `json:"name"`
	Color    *string         `json:"color,omitempty"`
	Timezone string          `json:"timezone,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

type JoinTeamRequest struct {
	InviteCode string `json:"invite_code"`
}

type TeamResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Color      *string         `json:"color,omitempty"`
	Timezone   string          `json:"timezone"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	InviteCode string          `json:"invite_code,omitempty"`
	Settings   json.RawMessage `json:"settings,omitempty"`
	Role       string          `json:"role,omitempty"`
}

type InviteCodeResponse struct {
	InviteCode string `json:"invite_code"`
}
