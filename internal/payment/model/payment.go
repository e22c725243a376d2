// Package model provides domain models and DTOs for payment module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/pkg/money"
)

// Payment is a charge to the athletes of a category. Value always equals the
// sum of its items' values.
type Payment struct {
	ID          string        `gorm:"primaryKey;column:id" json:"id"`
	Name        string        `gorm:"column:name;not null" json:"name"`
	Value       money.Amount  `gorm:"column:value;not null;default:0" json:"value"`
	DueDate     time.Time     `gorm:"column:due_date;not null" json:"dueDate"`
	PixKey      string        `gorm:"column:pix_key" json:"pixKey"`
	TeamID      string        `gorm:"column:team_id;not null;index" json:"teamId"`
	CategoryID  string        `gorm:"column:category_id;not null;index" json:"categoryId"`
	EventID     *string       `gorm:"column:event_id;index" json:"eventId"`
	IsFinalized bool          `gorm:"column:is_finalized;not null;default:false" json:"isFinalized"`
	Items       []PaymentItem `gorm:"foreignKey:PaymentID" json:"items,omitempty"`
	Users       []PaymentUser `gorm:"foreignKey:PaymentID" json:"users,omitempty"`
	CreatedAt   time.Time     `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate assigns a UUID when none is set.
func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PaymentItem is one line of a payment.
type PaymentItem struct {
	ID              string       `gorm:"primaryKey;column:id" json:"id"`
	Name            string       `gorm:"column:name;not null" json:"name"`
	Value           money.Amount `gorm:"column:value;not null" json:"value"`
	QuantityEnabled bool         `gorm:"column:quantity_enabled;not null;default:false" json:"quantityEnabled"`
	PaymentID       string       `gorm:"column:payment_id;not null;index" json:"paymentId"`
	CreatedAt       time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time    `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (PaymentItem) TableName() string {
	return "payment_items"
}

// BeforeCreate assigns a UUID when none is set.
func (i *PaymentItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// PaymentUser is an athlete's settlement record for a payment.
type PaymentUser struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	PaymentID string     `gorm:"column:payment_id;not null;uniqueIndex:idx_payment_users_pair" json:"paymentId"`
	UserID    string     `gorm:"column:user_id;not null;uniqueIndex:idx_payment_users_pair" json:"userId"`
	PaidAt    *time.Time `gorm:"column:paid_at" json:"paidAt"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (PaymentUser) TableName() string {
	return "payment_users"
}

// BeforeCreate assigns a UUID when none is set.
func (u *PaymentUser) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
