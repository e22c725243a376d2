// Package model provides domain models and DTOs for event module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event types. Other values are accepted and stored upper-cased.
const (
	TypeGame     = "GAME"
	TypeTraining = "TRAINING"
	TypeOther    = "OTHER"
)

// Event is a scheduled team activity for one category.
type Event struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	Description   string         `gorm:"column:description" json:"description"`
	Date          time.Time      `gorm:"column:date;not null" json:"date"`
	Location      string         `gorm:"column:location" json:"location"`
	Type          string         `gorm:"column:type;not null" json:"type"`
	TeamID        string         `gorm:"column:team_id;not null;index" json:"teamId"`
	CategoryID    string         `gorm:"column:category_id;not null;index" json:"categoryId"`
	IsFinalized   bool           `gorm:"column:is_finalized;not null;default:false" json:"isFinalized"`
	Confirmations []Confirmation `gorm:"foreignKey:EventID" json:"confirmations,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// BeforeCreate assigns a UUID when none is set.
func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Confirmation is one roll-call for an event. The first is created with the
// event; each payment processed with items opens another.
type Confirmation struct {
	ID        string             `gorm:"primaryKey;column:id" json:"id"`
	EventID   string             `gorm:"column:event_id;not null;index" json:"eventId"`
	Users     []ConfirmationUser `gorm:"foreignKey:ConfirmationID" json:"users"`
	Items     []ConfirmationItem `gorm:"foreignKey:ConfirmationID" json:"items,omitempty"`
	CreatedAt time.Time          `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time          `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Confirmation) TableName() string {
	return "confirmations"
}

// BeforeCreate assigns a UUID when none is set.
func (c *Confirmation) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ConfirmationUser is one user's slot in a roll-call. PENDING is
// Status=false with a nil ConfirmedAt; CONFIRMED is Status=true with a timestamp.
type ConfirmationUser struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	ConfirmationID string     `gorm:"column:confirmation_id;not null;uniqueIndex:idx_confirmation_users_pair" json:"confirmationId"`
	UserID         string     `gorm:"column:user_id;not null;uniqueIndex:idx_confirmation_users_pair" json:"userId"`
	Status         bool       `gorm:"column:status;not null;default:false" json:"status"`
	ConfirmedAt    *time.Time `gorm:"column:confirmed_at" json:"confirmedAt"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (ConfirmationUser) TableName() string {
	return "confirmation_users"
}

// BeforeCreate assigns a UUID when none is set.
func (c *ConfirmationUser) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ConfirmationItem records an item and quantity a user paid for in a roll-call.
type ConfirmationItem struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	PaymentItemID  string    `gorm:"column:payment_item_id;not null;index" json:"paymentItemId"`
	ConfirmationID string    `gorm:"column:confirmation_id;not null;index" json:"confirmationId"`
	UserID         string    `gorm:"column:user_id;not null" json:"userId"`
	Quantity       int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (ConfirmationItem) TableName() string {
	return "confirmation_items"
}

// BeforeCreate assigns a UUID when none is set.
func (c *ConfirmationItem) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SetConfirmation moves row to the target state, stamping at when confirming.
// It is the single state transition behind toggle and confirm-presence.
func SetConfirmation(row *ConfirmationUser, target bool, at time.Time) {
	row.Status = target
	if target {
		row.ConfirmedAt = &at
		return
	}
	row.ConfirmedAt = nil
}
