package dto

import "github.com/google/uuid"

type CreateRoleRequest struct {
	Name         string  `json:"name"`
	NameKo       *string `json:"name_ko,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type UpdateRoleRequest struct {
	Name         string  `json:"name"`
	NameKo       *string `json:"name_ko,omitempty"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}

type AssignRoleRequest struct {
	RoleID      uuid.UUID `json:"role_id"`
	IsPrimary   bool      `json:"is_primary"`
	Proficiency int       `json:"proficiency"`
}

type RoleResponse struct {
	ID           uuid.UUID `json:"id"`
	TeamID       uuid.UUID `json:"team_id"`
	Name         string    `json:"name"`
	NameKo       *string   `json:"name_ko,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
}

type MemberRoleResponse struct {
	ID           uuid.UUID     `json:"id"`
	MembershipID uuid.UUID     `json:"membership_id"`
	RoleID       uuid.UUID     `json:"role_id"`
	IsPrimary    bool          `json:"is_primary"`
	Proficiency  int           `json:"proficiency"`
	Role         *RoleResponse `json:"role,omitempty"`
}
