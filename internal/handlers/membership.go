package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type MembershipHandler struct {
	membershipService MembershipServiceInterface
	teamService       TeamServiceInterface
}

func NewMembershipHandler(membershipService MembershipServiceInterface, teamService TeamServiceInterface) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		teamService:       teamService,
	}
}

func (h *MembershipHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	role, err := h.teamService.ActiveRole(context.Background(), teamID, userID)
	if err != nil {
		c.InternalServerError("failed to check membership")
		return
	}
	if role == "" {
		c.NotFound("team not found")
		return
	}

	members, err := h.membershipService.List(context.Background(), teamID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.MembershipResponse, len(members))
	for i := range members {
		response[i] = toMembershipResponse(&members[i])
	}

	_ = c.JSON(200, response)
}

func (h *MembershipHandler) ChangeRole(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	membershipID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid membership id")
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleMember {
		c.BadRequest("role must be admin or member")
		return
	}

	m, err := h.membershipService.ChangeRole(context.Background(), membershipID, userID, req.Role)
	if err != nil {
		serviceError(c, err, "failed to change role")
		return
	}

	_ = c.JSON(200, toMembershipResponse(m))
}

func (h *MembershipHandler) Remove(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	membershipID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid membership id")
		return
	}

	if err := h.membershipService.Remove(context.Background(), membershipID, userID); err != nil {
		serviceError(c, err, "failed to remove member")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}

func (h *MembershipHandler) Leave(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	if err := h.membershipService.Leave(context.Background(), teamID, userID); err != nil {
		serviceError(c, err, "failed to leave team")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left team"})
}
