// Package model provides domain models and DTOs for category module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups athletes, managers, events and payments inside a team.
type Category struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_categories_team_name" json:"name"`
	TeamID    string    `gorm:"column:team_id;not null;uniqueIndex:idx_categories_team_name" json:"teamId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUID when none is set.
func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
