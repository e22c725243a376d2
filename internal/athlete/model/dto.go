package model

import "time"

// CreateAthleteRequest is the body of POST /athlete.
type CreateAthleteRequest struct {
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Phone       string     `json:"phone"`
	Password    string     `json:"password" binding:"required"`
	BirthDate   *time.Time `json:"birthDate"`
	ShirtNumber *int       `json:"shirtNumber" binding:"omitempty,min=0"`
	Position    string     `json:"position"`
	CategoryIDs []string   `json:"categoryIds"`
}

// UpdateAthleteRequest is the body of PATCH /athlete/:id. Nil fields are
// left unchanged; a non-nil CategoryIDs replaces the category set.
type UpdateAthleteRequest struct {
	Name        *string    `json:"name"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Phone       *string    `json:"phone"`
	BirthDate   *time.Time `json:"birthDate"`
	ShirtNumber *int       `json:"shirtNumber" binding:"omitempty,min=0"`
	Position    *string    `json:"position"`
	CategoryIDs *[]string  `json:"categoryIds"`
}
