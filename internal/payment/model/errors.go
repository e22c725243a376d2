package model

import "github.com/squadboard/squadboard-api/internal/apperror"

var (
	// ErrPaymentNotFound indicates the payment does not exist in the caller's team.
	ErrPaymentNotFound = apperror.NotFound("payment not found")
	// ErrPaymentItemNotFound indicates the item does not exist or belongs to another payment.
	ErrPaymentItemNotFound = apperror.NotFound("payment item not found")
	// ErrPaymentUserNotFound indicates the caller was not charged by this payment.
	ErrPaymentUserNotFound = apperror.NotFound("user is not part of this payment")
	// ErrPaymentFinalized indicates a mutation of a finalized payment.
	ErrPaymentFinalized = apperror.Conflict("payment is finalized and can no longer be edited")
	// ErrPaymentAlreadyFinalized indicates finalize was called twice.
	ErrPaymentAlreadyFinalized = apperror.Conflict("payment already finalized")
	// ErrPaymentWithoutEvent indicates processing with items on a payment with no event.
	ErrPaymentWithoutEvent = apperror.InvalidState("payment has no associated event")
	// ErrAlreadyPaid indicates the caller already settled this payment.
	ErrAlreadyPaid = apperror.Conflict("payment already settled")
	// ErrInvalidQuantity indicates a selected quantity below 1.
	ErrInvalidQuantity = apperror.Validation("quantity must be greater than 0")
	// ErrInvalidPaymentName indicates an empty payment or item name.
	ErrInvalidPaymentName = apperror.Validation("name is required")
)
