package model

type Event struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Sport       string `json:"sport,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Sport       string `json:"sport"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type CreateEventResponse struct {
	ID string `json:"id"`
}

type GetEventRequest struct {
	ID string `json:"id"`
}

type GetEventResponse Event

type GetListEventRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListEventResponse struct {
	Events []Event `json:"events"`
}
