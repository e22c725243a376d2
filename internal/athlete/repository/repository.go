// Package repository provides data access layer for athlete module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/athlete/model"
)

// Repository defines the interface for athlete data access operations.
type Repository interface {
	// Create inserts an athlete profile and its category links.
	Create(ctx context.Context, athlete *model.Athlete) error

	// GetByID finds an athlete of the team with its category ids.
	GetByID(ctx context.Context, teamID, id string) (*model.Athlete, error)

	// GetByUserID finds the athlete profile of an account.
	GetByUserID(ctx context.Context, userID string) (*model.Athlete, error)

	// List returns the team's athletes ordered by name, optionally only
	// those linked to categoryID.
	List(ctx context.Context, teamID, categoryID string) ([]model.Athlete, error)

	// Update writes the given columns.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// SetCategories replaces the athlete's category links.
	SetCategories(ctx context.Context, athleteID string, categoryIDs []string) error

	// UserIDsInCategory returns the account ids of every athlete linked to the category.
	UserIDsInCategory(ctx context.Context, categoryID string) ([]string, error)

	// Delete removes the profile, its account and every row referencing the account.
	Delete(ctx context.Context, athlete *model.Athlete) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new athlete repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, athlete *model.Athlete) error {
	if err := r.db.WithContext(ctx).Create(athlete).Error; err != nil {
		return err
	}
	return r.insertLinks(ctx, athlete.ID, athlete.CategoryIDs)
}

func (r *repository) GetByID(ctx context.Context, teamID, id string) (*model.Athlete, error) {
	return r.find(ctx, r.db.Where("id = ? AND team_id = ?", id, teamID))
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*model.Athlete, error) {
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

func (r *repository) find(ctx context.Context, query *gorm.DB) (*model.Athlete, error) {
	var athlete model.Athlete
	if err := query.WithContext(ctx).First(&athlete).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAthleteNotFound
		}
		return nil, err
	}
	if err := r.loadCategories(ctx, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

func (r *repository) List(ctx context.Context, teamID, categoryID string) ([]model.Athlete, error) {
	athletes := []model.Athlete{}
	query := r.db.WithContext(ctx).Where("athletes.team_id = ?", teamID)
	if categoryID != "" {
		query = query.
			Joins("JOIN category_athletes ON category_athletes.athlete_id = athletes.id").
			Where("category_athletes.category_id = ?", categoryID)
	}
	if err := query.Order("athletes.name ASC").Find(&athletes).Error; err != nil {
		return nil, err
	}
	for i := range athletes {
		if err := r.loadCategories(ctx, &athletes[i]); err != nil {
			return nil, err
		}
	}
	return athletes, nil
}

func (r *repository) loadCategories(ctx context.Context, athlete *model.Athlete) error {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&model.CategoryAthlete{}).
		Where("athlete_id = ?", athlete.ID).
		Order("category_id").
		Pluck("category_id", &ids).Error
	if err != nil {
		return err
	}
	athlete.CategoryIDs = ids
	return nil
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&model.Athlete{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrAthleteNotFound
	}
	return nil
}

func (r *repository) SetCategories(ctx context.Context, athleteID string, categoryIDs []string) error {
	err := r.db.WithContext(ctx).
		Where("athlete_id = ?", athleteID).
		Delete(&model.CategoryAthlete{}).Error
	if err != nil {
		return err
	}
	return r.insertLinks(ctx, athleteID, categoryIDs)
}

func (r *repository) insertLinks(ctx context.Context, athleteID string, categoryIDs []string) error {
	for _, categoryID := range categoryIDs {
		link := model.CategoryAthlete{CategoryID: categoryID, AthleteID: athleteID}
		if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) UserIDsInCategory(ctx context.Context, categoryID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&model.Athlete{}).
		Joins("JOIN category_athletes ON category_athletes.athlete_id = athletes.id").
		Where("category_athletes.category_id = ?", categoryID).
		Order("athletes.user_id").
		Pluck("athletes.user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) Delete(ctx context.Context, athlete *model.Athlete) error {
	db := r.db.WithContext(ctx)
	steps := []struct {
		query string
		arg   string
	}{
		{"DELETE FROM confirmation_items WHERE user_id = ?", athlete.UserID},
		{"DELETE FROM confirmation_users WHERE user_id = ?", athlete.UserID},
		{"DELETE FROM payment_users WHERE user_id = ?", athlete.UserID},
		{"DELETE FROM category_athletes WHERE athlete_id = ?", athlete.ID},
		{"DELETE FROM athletes WHERE id = ?", athlete.ID},
		{"DELETE FROM users WHERE id = ?", athlete.UserID},
	}
	for _, step := range steps {
		if err := db.Exec(step.query, step.arg).Error; err != nil {
			return err
		}
	}
	return nil
}
