// Package model provides data transfer objects for statistics module.
package model

import (
	"time"

	"github.com/squadboard/squadboard-api/pkg/money"
)

// PaymentStatistics summarizes how many athletes settled a payment.
type PaymentStatistics struct {
	PaymentID   string       `json:"paymentId"`
	Name        string       `json:"name"`
	Value       money.Amount `json:"value"`
	DueDate     time.Time    `json:"dueDate"`
	IsFinalized bool         `json:"isFinalized"`
	Charged     int          `json:"charged"`
	Paid        int          `json:"paid"`
	Pending     int          `json:"pending"`
}

// PaymentStatisticsResponse lists payment statistics with team-wide totals.
type PaymentStatisticsResponse struct {
	Payments     []PaymentStatistics `json:"payments"`
	TotalCharged int                 `json:"totalCharged"`
	TotalPaid    int                 `json:"totalPaid"`
}

// EventStatistics summarizes roll-call answers for an event.
type EventStatistics struct {
	EventID        string    `json:"eventId"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	IsFinalized    bool      `json:"isFinalized"`
	Invited        int       `json:"invited"`
	Confirmed      int       `json:"confirmed"`
	AttendanceRate float64   `json:"attendanceRate"`
}

// EventStatisticsResponse lists event statistics.
type EventStatisticsResponse struct {
	Events []EventStatistics `json:"events"`
	Total  int               `json:"total"`
}
