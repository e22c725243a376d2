package model

import "github.com/squadboard/squadboard-api/internal/apperror"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = apperror.NotFound("user not found")
	// ErrManagerNotFound indicates that the manager does not exist in the caller's team.
	ErrManagerNotFound = apperror.NotFound("manager not found")
	// ErrInvalidCredentials indicates a wrong username or password.
	ErrInvalidCredentials = apperror.Unauthorized("invalid username or password")
	// ErrUsernameTaken indicates the derived username is already in use.
	ErrUsernameTaken = apperror.Conflict("username is already taken")
	// ErrWeakPassword indicates a password shorter than MinPasswordLength.
	ErrWeakPassword = apperror.Validation("password must be at least 6 characters")
	// ErrMissingContact indicates neither phone nor email was given.
	ErrMissingContact = apperror.Validation("phone or email is required")
)
