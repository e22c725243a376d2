package model

import "github.com/squadboard/squadboard-api/internal/apperror"

var (
	// ErrEventNotFound indicates the event does not exist in the caller's team.
	ErrEventNotFound = apperror.NotFound("event not found")
	// ErrConfirmationNotFound indicates the confirmation does not exist in the caller's team.
	ErrConfirmationNotFound = apperror.NotFound("confirmation not found")
	// ErrConfirmationUserNotFound indicates the caller has no slot in the roll-call.
	ErrConfirmationUserNotFound = apperror.NotFound("no confirmation slot for this user")
	// ErrEventFinalized indicates the event no longer accepts changes.
	ErrEventFinalized = apperror.Conflict("event is finalized")
	// ErrEventAlreadyFinalized indicates finalize was called twice.
	ErrEventAlreadyFinalized = apperror.Conflict("event already finalized")
	// ErrInvalidEventName indicates an empty event name.
	ErrInvalidEventName = apperror.Validation("event name is required")
)
