package handlers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

// SessionHandler issues access tokens. The identity provider in front of
// the API has already verified the email; this exchange just mints the
// bearer token the rest of the routes consume.
type SessionHandler struct {
	userService UserServiceInterface
	jwtService  JWTServiceInterface
	expirySecs  int64
}

func NewSessionHandler(userService UserServiceInterface, jwtService JWTServiceInterface, expirySecs int64) *SessionHandler {
	return &SessionHandler{
		userService: userService,
		jwtService:  jwtService,
		expirySecs:  expirySecs,
	}
}

func (h *SessionHandler) Create(c *drift.Context) {
	var req dto.SessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		c.BadRequest("a valid email is required")
		return
	}

	user, err := h.userService.FindOrCreate(context.Background(), email, req.Name)
	if err != nil {
		serviceError(c, err, "failed to create session")
		return
	}

	token, err := h.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to issue token")
		return
	}

	_ = c.JSON(201, dto.SessionResponse{
		AccessToken: token,
		ExpiresIn:   h.expirySecs,
		User:        toUserResponse(user),
	})
}

func (h *SessionHandler) Me(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		serviceError(c, err, "failed to load profile")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *SessionHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	user, err := h.userService.UpdateProfile(context.Background(), userID, req.Name, req.Language)
	if err != nil {
		serviceError(c, err, "failed to update profile")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}
