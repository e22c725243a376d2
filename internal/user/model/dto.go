package model

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ChangePasswordRequest is the body of PATCH /user/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// CreateManagerRequest is the body of POST /manager.
type CreateManagerRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Password    string   `json:"password" binding:"required"`
	CategoryIDs []string `json:"categoryIds"`
}

// MeResponse describes the authenticated account.
type MeResponse struct {
	User    *User    `json:"user"`
	Manager *Manager `json:"manager,omitempty"`
}
