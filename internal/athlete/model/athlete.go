// Package model provides domain models and DTOs for athlete module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Athlete is the player profile of an ATHLETE user.
type Athlete struct {
	ID          string     `gorm:"primaryKey;column:id" json:"id"`
	UserID      string     `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	TeamID      string     `gorm:"column:team_id;not null;index" json:"teamId"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Email       string     `gorm:"column:email" json:"email"`
	Phone       string     `gorm:"column:phone" json:"phone"`
	BirthDate   *time.Time `gorm:"column:birth_date" json:"birthDate"`
	ShirtNumber *int       `gorm:"column:shirt_number" json:"shirtNumber"`
	Position    string     `gorm:"column:position" json:"position"`
	ImageURL    string     `gorm:"column:image_url" json:"image"`
	CategoryIDs []string   `gorm:"-" json:"categoryIds"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Athlete) TableName() string {
	return "athletes"
}

// BeforeCreate assigns a UUID when none is set.
func (a *Athlete) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// CategoryAthlete links an athlete to a category.
type CategoryAthlete struct {
	CategoryID string `gorm:"primaryKey;column:category_id"`
	AthleteID  string `gorm:"primaryKey;column:athlete_id"`
}

// TableName specifies the table name for GORM.
func (CategoryAthlete) TableName() string {
	return "category_athletes"
}
