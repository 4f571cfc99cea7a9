package dto

import "github.com/google/uuid"

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type MembershipResponse struct {
	ID     uuid.UUID     `json:"id"`
	TeamID uuid.UUID     `json:"team_id"`
	UserID uuid.UUID     `json:"user_id"`
	Role   string        `json:"role"`
	Status string        `json:"status"`
	User   *UserResponse `json:"user,omitempty"`
}
