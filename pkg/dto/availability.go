package dto

type AvailabilityEntryRequest struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"is_available"`
	Reason      *string `json:"reason,omitempty"`
}

type SetAvailabilityRequest struct {
	Entries []AvailabilityEntryRequest `json:"entries"`
}

type AvailabilityResponse struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"is_available"`
	Reason      *string `json:"reason,omitempty"`
}

type PendingRequestResponse struct {
	Service ServiceResponse `json:"service"`
}

type SubmittedResponseEntry struct {
	Service     ServiceResponse `json:"service"`
	IsAvailable bool            `json:"is_available"`
	Reason      *string         `json:"reason,omitempty"`
}

type AvailabilityRequestsResponse struct {
	Pending   []PendingRequestResponse `json:"pending"`
	Responded []SubmittedResponseEntry `json:"responded"`
}

type DaySummaryResponse struct {
	Date     string `json:"date"`
	Expected int    `json:"expected"`
	Assigned int    `json:"assigned"`
	Status   string `json:"status"`
}
