// Package model provides domain models and DTOs for user module.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
)

// User is a login account. Every account belongs to exactly one team.
type User struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	Username     string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         auth.Role `gorm:"column:role;not null" json:"role"`
	TeamID       string    `gorm:"column:team_id;not null;index" json:"teamId"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when none is set.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Manager is the staff profile of a MANAGER user.
type Manager struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	UserID      string    `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	TeamID      string    `gorm:"column:team_id;not null;index" json:"teamId"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Email       string    `gorm:"column:email" json:"email"`
	Phone       string    `gorm:"column:phone" json:"phone"`
	CategoryIDs []string  `gorm:"-" json:"categoryIds"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Manager) TableName() string {
	return "managers"
}

// BeforeCreate assigns a UUID when none is set.
func (m *Manager) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ManagerCategory links a manager to a category.
type ManagerCategory struct {
	ManagerID  string `gorm:"primaryKey;column:manager_id"`
	CategoryID string `gorm:"primaryKey;column:category_id"`
}

// TableName specifies the table name for GORM.
func (ManagerCategory) TableName() string {
	return "manager_categories"
}

// UsernameFor derives a login name: the phone digits when a phone is
// given, otherwise the local part of the email.
func UsernameFor(phone, email string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return strings.ToLower(local)
}
