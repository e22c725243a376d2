package model

import userModel "github.com/squadboard/squadboard-api/internal/user/model"

// RegisterRequest is the body of POST /team/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is returned after a team signs up.
type RegisterResponse struct {
	Token string          `json:"token"`
	Team  *Team           `json:"team"`
	User  *userModel.User `json:"user"`
}

// UpdateTeamRequest is the body of PATCH /team. Nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
}
