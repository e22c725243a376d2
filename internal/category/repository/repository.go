// Package repository provides data access layer for category module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/category/model"
)

// Repository defines the interface for category data access operations.
type Repository interface {
	// Create inserts a category.
	Create(ctx context.Context, category *model.Category) error

	// GetByID finds a category of the given team.
	GetByID(ctx context.Context, teamID, id string) (*model.Category, error)

	// EnsureAll fails with ErrCategoryNotFound unless every id is a category of the team.
	EnsureAll(ctx context.Context, teamID string, ids []string) error

	// List returns the team's categories ordered by name.
	List(ctx context.Context, teamID string) ([]model.Category, error)

	// Rename changes the category name.
	Rename(ctx context.Context, category *model.Category, name string) error

	// CountReferences counts events and payments pointing at the category.
	CountReferences(ctx context.Context, id string) (int64, error)

	// Delete removes the category and its athlete and manager links.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new category repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if apperror.IsDuplicateKey(err) {
			return model.ErrCategoryExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, teamID, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", id, teamID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) EnsureAll(ctx context.Context, teamID string, ids []string) error {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("team_id = ? AND id IN ?", teamID, ids).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(unique)) {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, teamID string) ([]model.Category, error) {
	categories := []model.Category{}
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) Rename(ctx context.Context, category *model.Category, name string) error {
	err := r.db.WithContext(ctx).Model(category).Update("name", name).Error
	if err != nil {
		if apperror.IsDuplicateKey(err) {
			return model.ErrCategoryExists
		}
		return err
	}
	return nil
}

func (r *repository) CountReferences(ctx context.Context, id string) (int64, error) {
	var events, payments int64
	if err := r.db.WithContext(ctx).Table("events").Where("category_id = ?", id).Count(&events).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Table("payments").Where("category_id = ?", id).Count(&payments).Error; err != nil {
		return 0, err
	}
	return events + payments, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM category_athletes WHERE category_id = ?", id).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM manager_categories WHERE category_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&model.Category{}, "id = ?", id).Error
}
