package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type AssignmentHandler struct {
	assignmentService AssignmentServiceInterface
}

func NewAssignmentHandler(assignmentService AssignmentServiceInterface) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func (h *AssignmentHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		c.BadRequest("invalid service id")
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.MembershipID == uuid.Nil || req.RoleID == uuid.Nil {
		c.BadRequest("membership_id and role_id are required")
		return
	}

	a, err := h.assignmentService.Create(context.Background(), serviceID, req.MembershipID, req.RoleID, userID)
	if err != nil {
		serviceError(c, err, "failed to create assignment")
		return
	}

	_ = c.JSON(201, toAssignmentResponse(a))
}

func (h *AssignmentHandler) Respond(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	assignmentID, err := uuid.Parse(c.Param("assignmentId"))
	if err != nil {
		c.BadRequest("invalid assignment id")
		return
	}

	var req dto.RespondAssignmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	a, err := h.assignmentService.Respond(context.Background(), assignmentID, userID, req.Confirm, req.DeclineReason)
	if err != nil {
		serviceError(c, err, "failed to respond to assignment")
		return
	}

	_ = c.JSON(200, toAssignmentResponse(a))
}

func (h *AssignmentHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	assignmentID, err := uuid.Parse(c.Param("assignmentId"))
	if err != nil {
		c.BadRequest("invalid assignment id")
		return
	}

	if err := h.assignmentService.Delete(context.Background(), assignmentID, userID); err != nil {
		serviceError(c, err, "failed to delete assignment")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "assignment removed"})
}

func (h *AssignmentHandler) ListForService(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		c.BadRequest("invalid service id")
		return
	}

	list, err := h.assignmentService.ListForService(context.Background(), serviceID)
	if err != nil {
		serviceError(c, err, "failed to list assignments")
		return
	}

	response := make([]dto.AssignmentResponse, len(list))
	for i := range list {
		response[i] = toAssignmentResponse(&list[i])
	}

	_ = c.JSON(200, response)
}

func (h *AssignmentHandler) ListMine(c *drift.Context) {
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

	list, err := h.assignmentService.ListMine(context.Background(), teamID, userID)
	if err != nil {
		serviceError(c, err, "failed to list assignments")
		return
	}

	response := make([]dto.AssignmentResponse, len(list))
	for i := range list {
		response[i] = toAssignmentResponse(&list[i])
	}

	_ = c.JSON(200, response)
}
