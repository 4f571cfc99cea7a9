package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type TransferHandler struct {
	transferService TransferServiceInterface
}

func NewTransferHandler(transferService TransferServiceInterface) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) Initiate(c *drift.Context) {
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

	var req dto.InitiateTransferRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.ToUserID == uuid.Nil {
		c.BadRequest("to_user_id is required")
		return
	}
	if req.ToUserID == userID {
		c.BadRequest("cannot transfer ownership to yourself")
		return
	}

	transfer, err := h.transferService.Initiate(context.Background(), teamID, userID, req.ToUserID)
	if err != nil {
		serviceError(c, err, "failed to initiate transfer")
		return
	}

	_ = c.JSON(201, toTransferResponse(transfer))
}

func (h *TransferHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	transferID, err := uuid.Parse(c.Param("transferId"))
	if err != nil {
		c.BadRequest("invalid transfer id")
		return
	}

	transfer, err := h.transferService.Get(context.Background(), transferID)
	if err != nil {
		serviceError(c, err, "failed to load transfer")
		return
	}
	if transfer.FromUserID != userID && transfer.ToUserID != userID {
		c.NotFound("ownership transfer not found")
		return
	}

	_ = c.JSON(200, toTransferResponse(transfer))
}

func (h *TransferHandler) Complete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	transferID, err := uuid.Parse(c.Param("transferId"))
	if err != nil {
		c.BadRequest("invalid transfer id")
		return
	}

	var req dto.CompleteTransferRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.PriorOwnerRole == "" {
		c.BadRequest("prior_owner_role is required")
		return
	}

	transfer, err := h.transferService.Complete(context.Background(), transferID, userID, req.PriorOwnerRole)
	if err != nil {
		serviceError(c, err, "failed to complete transfer")
		return
	}

	_ = c.JSON(200, toTransferResponse(transfer))
}

func (h *TransferHandler) Cancel(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	transferID, err := uuid.Parse(c.Param("transferId"))
	if err != nil {
		c.BadRequest("invalid transfer id")
		return
	}

	if err := h.transferService.Cancel(context.Background(), transferID, userID); err != nil {
		serviceError(c, err, "failed to cancel transfer")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "transfer cancelled"})
}
