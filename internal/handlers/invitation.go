package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type InvitationHandler struct {
	invitationService InvitationServiceInterface
}

func NewInvitationHandler(invitationService InvitationServiceInterface) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func (h *InvitationHandler) Create(c *drift.Context) {
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

	var req dto.CreateInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	inv, err := h.invitationService.Create(context.Background(), teamID, userID, req.Email)
	if err != nil {
		serviceError(c, err, "failed to create invitation")
		return
	}

	_ = c.JSON(201, toInvitationResponse(inv))
}

func (h *InvitationHandler) List(c *drift.Context) {
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

	invitations, err := h.invitationService.ListForTeam(context.Background(), teamID, userID)
	if err != nil {
		serviceError(c, err, "failed to list invitations")
		return
	}

	response := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		response[i] = toInvitationResponse(&invitations[i])
	}

	_ = c.JSON(200, response)
}

// ListMine returns the pending invitations addressed to the caller's email.
func (h *InvitationHandler) ListMine(c *drift.Context) {
	email := middleware.GetUserEmail(c)
	if email == "" {
		c.Unauthorized("not authenticated")
		return
	}

	invitations, err := h.invitationService.ListForEmail(context.Background(), email)
	if err != nil {
		serviceError(c, err, "failed to list invitations")
		return
	}

	response := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		response[i] = toInvitationResponse(&invitations[i])
	}

	_ = c.JSON(200, response)
}

// Preview resolves an invitation token without accepting it, so the
// invitee can see what they were invited to before signing in.
func (h *InvitationHandler) Preview(c *drift.Context) {
	token := c.Param("token")
	if token == "" {
		c.BadRequest("token is required")
		return
	}

	inv, err := h.invitationService.GetByToken(context.Background(), token)
	if err != nil {
		serviceError(c, err, "failed to load invitation")
		return
	}

	resp := toInvitationResponse(inv)
	resp.Token = ""
	_ = c.JSON(200, resp)
}

func (h *InvitationHandler) Accept(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.AcceptInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Token == "" {
		c.BadRequest("token is required")
		return
	}

	team, err := h.invitationService.Accept(context.Background(), req.Token, userID)
	if err != nil {
		if errors.Is(err, services.ErrInviteNotPending) {
			_ = c.JSON(409, map[string]string{"error": "invitation is no longer pending"})
			return
		}
		serviceError(c, err, "failed to accept invitation")
		return
	}

	resp := toTeamResponse(team, models.RoleMember)
	resp.InviteCode = ""
	_ = c.JSON(200, resp)
}

func (h *InvitationHandler) Cancel(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invitationID, err := uuid.Parse(c.Param("invitationId"))
	if err != nil {
		c.BadRequest("invalid invitation id")
		return
	}

	if err := h.invitationService.Cancel(context.Background(), invitationID, userID); err != nil {
		serviceError(c, err, "failed to cancel invitation")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "invitation cancelled"})
}
