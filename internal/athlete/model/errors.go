package model

import "github.com/squadboard/squadboard-api/internal/apperror"

var (
	// ErrAthleteNotFound indicates the athlete does not exist in the caller's team.
	ErrAthleteNotFound = apperror.NotFound("athlete not found")
	// ErrInvalidAthleteName indicates an empty athlete name.
	ErrInvalidAthleteName = apperror.Validation("athlete name is required")
)
