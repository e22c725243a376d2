package model

import (
	"time"

	"github.com/squadboard/squadboard-api/pkg/money"
)

// CreatePaymentRequest is the body of POST /payment/create-payment.
type CreatePaymentRequest struct {
	Name       string    `json:"name" binding:"required"`
	DueDate    time.Time `json:"dueDate" binding:"required"`
	PixKey     string    `json:"pixKey"`
	CategoryID string    `json:"categoryId" binding:"required"`
	EventID    *string   `json:"eventId"`
}

// UpdatePaymentRequest is the body of PATCH /payment/:id. Nil fields are left
// unchanged; ClearEvent detaches the payment from its event.
type UpdatePaymentRequest struct {
	Name       *string    `json:"name"`
	DueDate    *time.Time `json:"dueDate"`
	PixKey     *string    `json:"pixKey"`
	CategoryID *string    `json:"categoryId"`
	EventID    *string    `json:"eventId"`
	ClearEvent bool       `json:"clearEvent"`
}

// ItemRequest is the body of add and update item requests.
type ItemRequest struct {
	Name            string        `json:"name" binding:"required"`
	Value           *money.Amount `json:"value" binding:"required"`
	QuantityEnabled bool          `json:"quantityEnabled"`
}

// ItemResponse returns the item together with the recomputed payment total.
type ItemResponse struct {
	Item         *PaymentItem `json:"item"`
	PaymentValue money.Amount `json:"paymentValue"`
}

// ProcessPaymentRequest is the body of POST /payment/process.
type ProcessPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// ProcessWithItemsRequest is the body of POST /payment/process-with-items.
// SelectedItems maps payment item IDs to quantities.
type ProcessWithItemsRequest struct {
	PaymentID     string         `json:"paymentId" binding:"required"`
	SelectedItems map[string]int `json:"selectedItems"`
}

// MyPayment is a payment as seen by one of its athletes.
type MyPayment struct {
	Payment
	PaidAt *time.Time `json:"paidAt"`
	Paid   bool       `json:"paid"`
}
