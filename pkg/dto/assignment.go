package dto

import "github.com/google/uuid"

type CreateAssignmentRequest struct {
	MembershipID uuid.UUID `json:"membership_id"`
	RoleID       uuid.UUID `json:"role_id"`
}

type RespondAssignmentRequest struct {
	Confirm       bool    `json:"confirm"`
	DeclineReason *string `json:"decline_reason,omitempty"`
}

type AssignmentResponse struct {
	ID            uuid.UUID           `json:"id"`
	ServiceID     uuid.UUID           `json:"service_id"`
	MembershipID  uuid.UUID           `json:"membership_id"`
	RoleID        uuid.UUID           `json:"role_id"`
	Status        string              `json:"status"`
	DeclineReason *string             `json:"decline_reason,omitempty"`
	RespondedAt   *string             `json:"responded_at,omitempty"`
	Membership    *MembershipResponse `json:"membership,omitempty"`
	Role          *RoleResponse       `json:"role,omitempty"`
}
