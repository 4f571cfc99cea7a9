package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/schedule"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type AvailabilityHandler struct {
	availabilityService AvailabilityServiceInterface
}

func NewAvailabilityHandler(availabilityService AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

func (h *AvailabilityHandler) ListMine(c *drift.Context) {
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

	from, to := schedule.Window(time.Now())
	list, err := h.availabilityService.ListMine(context.Background(), teamID, userID, from, to)
	if err != nil {
		serviceError(c, err, "failed to list availability")
		return
	}

	response := make([]dto.AvailabilityResponse, len(list))
	for i, a := range list {
		response[i] = dto.AvailabilityResponse{
			Date:        a.Date.Format(dateLayout),
			IsAvailable: a.IsAvailable,
			Reason:      a.Reason,
		}
	}

	_ = c.JSON(200, response)
}

func (h *AvailabilityHandler) Set(c *drift.Context) {
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

	var req dto.SetAvailabilityRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	entries := make([]models.AvailabilityEntry, len(req.Entries))
	for i, e := range req.Entries {
		date, err := parseDate(e.Date)
		if err != nil {
			c.BadRequest("dates must be YYYY-MM-DD")
			return
		}
		entries[i] = models.AvailabilityEntry{
			Date:        date,
			IsAvailable: e.IsAvailable,
			Reason:      e.Reason,
		}
	}

	if err := h.availabilityService.SetBulk(context.Background(), teamID, userID, entries); err != nil {
		serviceError(c, err, "failed to save availability")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "availability saved"})
}

// Requests lists the draft services still waiting on the caller's
// availability, alongside the ones already answered.
func (h *AvailabilityHandler) Requests(c *drift.Context) {
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

	result, err := h.availabilityService.PendingRequests(context.Background(), teamID, userID, time.Now())
	if err != nil {
		serviceError(c, err, "failed to load availability requests")
		return
	}

	response := dto.AvailabilityRequestsResponse{
		Pending:   make([]dto.PendingRequestResponse, len(result.Pending)),
		Responded: make([]dto.SubmittedResponseEntry, len(result.Responded)),
	}
	for i, p := range result.Pending {
		response.Pending[i] = dto.PendingRequestResponse{Service: toServiceResponse(&p.Service)}
	}
	for i, r := range result.Responded {
		response.Responded[i] = dto.SubmittedResponseEntry{
			Service:     toServiceResponse(&r.Service),
			IsAvailable: r.IsAvailable,
			Reason:      r.Reason,
		}
	}

	_ = c.JSON(200, response)
}

func (h *AvailabilityHandler) Dashboard(c *drift.Context) {
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

	summaries, err := h.availabilityService.Dashboard(context.Background(), teamID, userID, time.Now())
	if err != nil {
		serviceError(c, err, "failed to load dashboard")
		return
	}

	response := make([]dto.DaySummaryResponse, len(summaries))
	for i, s := range summaries {
		response[i] = dto.DaySummaryResponse{
			Date:     s.Date.Format(dateLayout),
			Expected: s.Expected,
			Assigned: s.Assigned,
			Status:   s.Status,
		}
	}

	_ = c.JSON(200, response)
}
