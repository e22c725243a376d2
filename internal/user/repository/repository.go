// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/user/model"
)

// Repository defines the interface for user and manager data access operations.
type Repository interface {
	// CreateUser inserts an account.
	CreateUser(ctx context.Context, user *model.User) error

	// GetByID finds an account by id.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByUsername finds an account by login name.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, hash string) error

	// CreateManager inserts a manager profile and its category links.
	CreateManager(ctx context.Context, manager *model.Manager) error

	// GetManager finds a manager of the team with its category ids.
	GetManager(ctx context.Context, teamID, id string) (*model.Manager, error)

	// GetManagerByUserID finds the manager profile of an account.
	GetManagerByUserID(ctx context.Context, userID string) (*model.Manager, error)

	// ListManagers returns the team's managers ordered by name.
	ListManagers(ctx context.Context, teamID string) ([]model.Manager, error)

	// DeleteManager removes the profile, its links, its roll-call slots and its account.
	DeleteManager(ctx context.Context, manager *model.Manager) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new user repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if apperror.IsDuplicateKey(err) {
			return model.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findUser(ctx, "id = ?", id)
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findUser(ctx, "username = ?", username)
}

func (r *repository) findUser(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, hash string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *repository) CreateManager(ctx context.Context, manager *model.Manager) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(manager).Error; err != nil {
		return err
	}
	for _, categoryID := range manager.CategoryIDs {
		link := model.ManagerCategory{ManagerID: manager.ID, CategoryID: categoryID}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) GetManager(ctx context.Context, teamID, id string) (*model.Manager, error) {
	var manager model.Manager
	err := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrManagerNotFound
		}
		return nil, err
	}
	if err := r.loadCategories(ctx, &manager); err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *repository) GetManagerByUserID(ctx context.Context, userID string) (*model.Manager, error) {
	var manager model.Manager
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrManagerNotFound
		}
		return nil, err
	}
	if err := r.loadCategories(ctx, &manager); err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *repository) ListManagers(ctx context.Context, teamID string) ([]model.Manager, error) {
	managers := []model.Manager{}
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("name ASC").Find(&managers).Error
	if err != nil {
		return nil, err
	}
	for i := range managers {
		if err := r.loadCategories(ctx, &managers[i]); err != nil {
			return nil, err
		}
	}
	return managers, nil
}

func (r *repository) loadCategories(ctx context.Context, manager *model.Manager) error {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&model.ManagerCategory{}).
		Where("manager_id = ?", manager.ID).
		Order("category_id").
		Pluck("category_id", &ids).Error
	if err != nil {
		return err
	}
	manager.CategoryIDs = ids
	return nil
}

func (r *repository) DeleteManager(ctx context.Context, manager *model.Manager) error {
	db := r.db.WithContext(ctx)
	steps := []struct {
		query string
		arg   string
	}{
		{"DELETE FROM manager_categories WHERE manager_id = ?", manager.ID},
		{"DELETE FROM confirmation_items WHERE user_id = ?", manager.UserID},
		{"DELETE FROM confirmation_users WHERE user_id = ?", manager.UserID},
		{"DELETE FROM managers WHERE id = ?", manager.ID},
		{"DELETE FROM users WHERE id = ?", manager.UserID},
	}
	for _, step := range steps {
		if err := db.Exec(step.query, step.arg).Error; err != nil {
			return err
		}
	}
	return nil
}
