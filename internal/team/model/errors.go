package model

import "github.com/squadboard/squadboard-api/internal/apperror"

var (
	// ErrTeamExists indicates that a team with the given email already exists.
	ErrTeamExists = apperror.Conflict("team with this email already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = apperror.NotFound("team not found")
	// ErrInvalidTeamName indicates that the provided team name is empty.
	ErrInvalidTeamName = apperror.Validation("invalid team name")
)
