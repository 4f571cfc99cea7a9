package handlers

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

const dateLayout = "2006-01-02"

// serviceError maps the error taxonomy onto HTTP statuses. Conflicts get
// an explicit 409 body since drift has no helper for that status.
func serviceError(c *drift.Context, err error, fallback string) {
	switch {
	case apperrors.IsAuth(err):
		c.Unauthorized(err.Error())
	case apperrors.IsPermission(err):
		c.Forbidden(err.Error())
	case apperrors.IsNotFound(err):
		c.NotFound(err.Error())
	case apperrors.IsConflict(err):
		_ = c.JSON(409, map[string]string{"error": err.Error()})
	default:
		c.InternalServerError(fallback)
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Language:  u.Language,
	}
}

func toTeamResponse(t *models.Team, role string) dto.TeamResponse {
	return dto.TeamResponse{
		ID:         t.ID,
		Name:       t.Name,
		Color:      t.Color,
		Timezone:   t.Timezone,
		OwnerID:    t.OwnerID,
		InviteCode: t.InviteCode,
		Settings:   t.Settings,
		Role:       role,
	}
}

func toServiceResponse(s *models.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:            s.ID,
		TeamID:        s.TeamID,
		ServiceTypeID: s.ServiceTypeID,
		Name:          s.Name,
		Date:          s.Date.Format(dateLayout),
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		RehearsalDate: formatDatePtr(s.RehearsalDate),
		RehearsalTime: s.RehearsalTime,
		Status:        s.Status,
		PublishedAt:   formatTimePtr(s.PublishedAt),
	}
}

func toRoleResponse(r *models.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:           r.ID,
		TeamID:       r.TeamID,
		Name:         r.Name,
		NameKo:       r.NameKo,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}
}

func toMembershipResponse(m *models.Membership) dto.MembershipResponse {
	resp := dto.MembershipResponse{
		ID:     m.ID,
		TeamID: m.TeamID,
		UserID: m.UserID,
		Role:   m.Role,
		Status: m.Status,
	}
	if m.User != nil {
		u := toUserResponse(m.User)
		resp.User = &u
	}
	return resp
}

func toAssignmentResponse(a *models.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:            a.ID,
		ServiceID:     a.ServiceID,
		MembershipID:  a.MembershipID,
		RoleID:        a.RoleID,
		Status:        a.Status,
		DeclineReason: a.DeclineReason,
		RespondedAt:   formatTimePtr(a.RespondedAt),
	}
	if a.Membership != nil {
		m := toMembershipResponse(a.Membership)
		resp.Membership = &m
	}
	if a.Role != nil {
		r := toRoleResponse(a.Role)
		resp.Role = &r
	}
	return resp
}

func toInvitationResponse(inv *models.Invitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:        inv.ID,
		TeamID:    inv.TeamID,
		Email:     inv.Email,
		Token:     inv.Token,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
	}
}

func toTransferResponse(t *models.OwnershipTransfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:         t.ID,
		TeamID:     t.TeamID,
		FromUserID: t.FromUserID,
		ToUserID:   t.ToUserID,
		Status:     t.Status,
		ExpiresAt:  t.ExpiresAt.Format(time.RFC3339),
	}
}
