package model

import "time"

// CreateEventRequest is the body of POST /event.
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	CategoryID  string    `json:"categoryId" binding:"required"`
}

// UpdateEventRequest is the body of PATCH /event/:id. Nil fields are left unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Type        *string    `json:"type"`
}
