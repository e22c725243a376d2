// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/apperror"
	teamModel "github.com/squadboard/squadboard-api/internal/team/model"
	userModel "github.com/squadboard/squadboard-api/internal/user/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a team.
	Create(ctx context.Context, team *teamModel.Team) error

	// CreateOwner inserts the TEAM user of a team.
	CreateOwner(ctx context.Context, user *userModel.User) error

	// GetByID finds a team by id.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// Update writes the given columns of a team.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if apperror.IsDuplicateKey(err) {
			return teamModel.ErrTeamExists
		}
		return err
	}
	return nil
}

func (r *repository) CreateOwner(ctx context.Context, user *userModel.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if apperror.IsDuplicateKey(err) {
			return userModel.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&teamModel.Team{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if apperror.IsDuplicateKey(result.Error) {
			return teamModel.ErrTeamExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}
