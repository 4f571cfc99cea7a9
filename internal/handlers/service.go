package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/schedule"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/schul92/worshipteam-api/pkg/dto"
)

type ServiceHandler struct {
	scheduleService ScheduleServiceInterface
}

func NewServiceHandler(scheduleService ScheduleServiceInterface) *ServiceHandler {
	return &ServiceHandler{scheduleService: scheduleService}
}

func (h *ServiceHandler) bindInput(c *drift.Context) (services.CreateServiceInput, bool) {
	var req dto.CreateServiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return services.CreateServiceInput{}, false
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return services.CreateServiceInput{}, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.BadRequest("date must be YYYY-MM-DD")
		return services.CreateServiceInput{}, false
	}

	in := services.CreateServiceInput{
		ServiceTypeID: req.ServiceTypeID,
		Name:          req.Name,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RehearsalTime: req.RehearsalTime,
	}
	if req.RehearsalDate != nil {
		rd, err := parseDate(*req.RehearsalDate)
		if err != nil {
			c.BadRequest("rehearsal_date must be YYYY-MM-DD")
			return services.CreateServiceInput{}, false
		}
		in.RehearsalDate = &rd
	}
	return in, true
}

func (h *ServiceHandler) Create(c *drift.Context) {
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

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	service, err := h.scheduleService.CreateDraft(context.Background(), teamID, userID, in)
	if err != nil {
		serviceError(c, err, "failed to create service")
		return
	}

	_ = c.JSON(201, toServiceResponse(service))
}

func (h *ServiceHandler) Get(c *drift.Context) {
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

	service, err := h.scheduleService.GetByID(context.Background(), serviceID)
	if err != nil {
		serviceError(c, err, "failed to get service")
		return
	}

	_ = c.JSON(200, toServiceResponse(service))
}

// List returns the team's services inside the scheduling window. Drafts
// are filtered out for plain members by the service layer.
func (h *ServiceHandler) List(c *drift.Context) {
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
	if q := c.QueryParam("from"); q != "" {
		if from, err = parseDate(q); err != nil {
			c.BadRequest("from must be YYYY-MM-DD")
			return
		}
	}
	if q := c.QueryParam("to"); q != "" {
		if to, err = parseDate(q); err != nil {
			c.BadRequest("to must be YYYY-MM-DD")
			return
		}
	}

	list, err := h.scheduleService.ListWindow(context.Background(), teamID, userID, from, to)
	if err != nil {
		serviceError(c, err, "failed to list services")
		return
	}

	response := make([]dto.ServiceResponse, len(list))
	for i := range list {
		response[i] = toServiceResponse(&list[i])
	}

	_ = c.JSON(200, response)
}

func (h *ServiceHandler) Update(c *drift.Context) {
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

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	service, err := h.scheduleService.Update(context.Background(), serviceID, userID, in)
	if err != nil {
		serviceError(c, err, "failed to update service")
		return
	}

	_ = c.JSON(200, toServiceResponse(service))
}

func (h *ServiceHandler) Publish(c *drift.Context) {
	h.transition(c, h.scheduleService.Publish)
}

func (h *ServiceHandler) Complete(c *drift.Context) {
	h.transition(c, h.scheduleService.Complete)
}

func (h *ServiceHandler) Cancel(c *drift.Context) {
	h.transition(c, h.scheduleService.Cancel)
}

func (h *ServiceHandler) transition(c *drift.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*models.Service, error)) {
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

	service, err := fn(context.Background(), serviceID, userID)
	if err != nil {
		serviceError(c, err, "failed to update service status")
		return
	}

	_ = c.JSON(200, toServiceResponse(service))
}

func (h *ServiceHandler) Delete(c *drift.Context) {
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

	if err := h.scheduleService.Delete(context.Background(), serviceID, userID); err != nil {
		serviceError(c, err, "failed to delete service")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "service deleted"})
}

func (h *ServiceHandler) CreateType(c *drift.Context) {
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

	var req dto.CreateServiceTypeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	st, err := h.scheduleService.CreateServiceType(context.Background(), teamID, userID, req.Name, req.DefaultWeekday, req.DisplayOrder)
	if err != nil {
		serviceError(c, err, "failed to create service type")
		return
	}

	_ = c.JSON(201, dto.ServiceTypeResponse{
		ID:             st.ID,
		TeamID:         st.TeamID,
		Name:           st.Name,
		DefaultWeekday: st.DefaultWeekday,
		DisplayOrder:   st.DisplayOrder,
		IsActive:       st.IsActive,
	})
}

func (h *ServiceHandler) ListTypes(c *drift.Context) {
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

	types, err := h.scheduleService.ListServiceTypes(context.Background(), teamID)
	if err != nil {
		c.InternalServerError("failed to list service types")
		return
	}

	response := make([]dto.ServiceTypeResponse, len(types))
	for i, st := range types {
		response[i] = dto.ServiceTypeResponse{
			ID:             st.ID,
			TeamID:         st.TeamID,
			Name:           st.Name,
			DefaultWeekday: st.DefaultWeekday,
			DisplayOrder:   st.DisplayOrder,
			IsActive:       st.IsActive,
		}
	}

	_ = c.JSON(200, response)
}
