package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type RoleHandler struct {
	roleService RoleServiceInterface
	teamService TeamServiceInterface
}

func NewRoleHandler(roleService RoleServiceInterface, teamService TeamServiceInterface) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		teamService: teamService,
	}
}

func (h *RoleHandler) Create(c *drift.Context) {
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

	var req dto.CreateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	role, err := h.roleService.Create(context.Background(), teamID, userID, req.Name, req.NameKo, req.DisplayOrder)
	if err != nil {
		serviceError(c, err, "failed to create role")
		return
	}

	_ = c.JSON(201, toRoleResponse(role))
}

func (h *RoleHandler) List(c *drift.Context) {
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

	memberRole, err := h.teamService.ActiveRole(context.Background(), teamID, userID)
	if err != nil {
		c.InternalServerError("failed to check membership")
		return
	}
	if memberRole == "" {
		c.NotFound("team not found")
		return
	}

	roles, err := h.roleService.List(context.Background(), teamID)
	if err != nil {
		c.InternalServerError("failed to get roles")
		return
	}

	response := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		response[i] = toRoleResponse(&roles[i])
	}

	_ = c.JSON(200, response)
}

func (h *RoleHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	roleID, err := uuid.Parse(c.Param("roleId"))
	if err != nil {
		c.BadRequest("invalid role id")
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	role, err := h.roleService.Update(context.Background(), roleID, userID, req.Name, req.NameKo, req.DisplayOrder, req.IsActive)
	if err != nil {
		serviceError(c, err, "failed to update role")
		return
	}

	_ = c.JSON(200, toRoleResponse(role))
}

func (h *RoleHandler) AssignToMember(c *drift.Context) {
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
	membershipID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid membership id")
		return
	}

	var req dto.AssignRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.RoleID == uuid.Nil {
		c.BadRequest("role_id is required")
		return
	}

	mr, err := h.roleService.AssignToMember(context.Background(), teamID, userID, membershipID, req.RoleID, req.IsPrimary, req.Proficiency)
	if err != nil {
		serviceError(c, err, "failed to assign role")
		return
	}

	_ = c.JSON(201, dto.MemberRoleResponse{
		ID:           mr.ID,
		MembershipID: mr.MembershipID,
		RoleID:       mr.RoleID,
		IsPrimary:    mr.IsPrimary,
		Proficiency:  mr.Proficiency,
	})
}

func (h *RoleHandler) RemoveFromMember(c *drift.Context) {
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
	membershipID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid membership id")
		return
	}
	roleID, err := uuid.Parse(c.Param("roleId"))
	if err != nil {
		c.BadRequest("invalid role id")
		return
	}

	if err := h.roleService.RemoveFromMember(context.Background(), teamID, userID, membershipID, roleID); err != nil {
		serviceError(c, err, "failed to remove role")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "role removed"})
}

func (h *RoleHandler) MemberRoles(c *drift.Context) {
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

	memberRoles, err := h.roleService.MemberRoles(context.Background(), membershipID)
	if err != nil {
		c.InternalServerError("failed to get member roles")
		return
	}

	response := make([]dto.MemberRoleResponse, len(memberRoles))
	for i, mr := range memberRoles {
		response[i] = dto.MemberRoleResponse{
			ID:           mr.ID,
			MembershipID: mr.MembershipID,
			RoleID:       mr.RoleID,
			IsPrimary:    mr.IsPrimary,
			Proficiency:  mr.Proficiency,
		}
		if mr.Role != nil {
			r := toRoleResponse(mr.Role)
			response[i].Role = &r
		}
	}

	_ = c.JSON(200, response)
}
