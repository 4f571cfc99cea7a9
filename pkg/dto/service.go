package dto

import "github.com/google/uuid"

// Dates travel as "2006-01-02" strings; times of day as "15:04".

type CreateServiceRequest struct {
	ServiceTypeID *uuid.UUID `json:"service_type_id,omitempty"`
	Name          string     `json:"name"`
	Date          string     `json:"date"`
	StartTime     *string    `json:"start_time,omitempty"`
	EndTime       *string    `json:"end_time,omitempty"`
	RehearsalDate *string    `json:"rehearsal_date,omitempty"`
	RehearsalTime *string    `json:"rehearsal_time,omitempty"`
}

type UpdateServiceRequest = CreateServiceRequest

type ServiceResponse struct {
	ID            uuid.UUID  `json:"id"`
	TeamID        uuid.UUID  `json:"team_id"`
	ServiceTypeID *uuid.UUID `json:"service_type_id,omitempty"`
	Name          string     `json:"name"`
	Date          string     `json:"date"`
	StartTime     *string    `json:"start_time,omitempty"`
	EndTime       *string    `json:"end_time,omitempty"`
	RehearsalDate *string    `json:"rehearsal_date,omitempty"`
	RehearsalTime *string    `json:"rehearsal_time,omitempty"`
	Status        string     `json:"status"`
	PublishedAt   *string    `json:"published_at,omitempty"`
}

type CreateServiceTypeRequest struct {
	Name           string `json:"name"`
	DefaultWeekday int    `json:"default_weekday"`
	DisplayOrder   int    `json:"display_order"`
}

type ServiceTypeResponse struct {
	ID             uuid.UUID `json:"id"`
	TeamID         uuid.UUID `json:"team_id"`
	Name           string    `json:"name"`
	DefaultWeekday int       `json:"default_weekday"`
	DisplayOrder   int       `json:"display_order"`
	IsActive       bool      `json:"is_active"`
}
