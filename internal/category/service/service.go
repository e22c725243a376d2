// Package service provides business logic layer for category module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/category/model"
	"github.com/squadboard/squadboard-api/internal/category/repository"
)

// Service defines the interface for category business logic operations.
type Service interface {
	Create(ctx context.Context, teamID string, req *model.CategoryRequest) (*model.Category, error)
	Get(ctx context.Context, teamID, id string) (*model.Category, error)
	List(ctx context.Context, teamID string) ([]model.Category, error)
	Update(ctx context.Context, teamID, id string, req *model.CategoryRequest) (*model.Category, error)
	// Delete removes a category that no event or payment references.
	Delete(ctx context.Context, teamID, id string) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new category service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, teamID string, req *model.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidCategoryName
	}

	category := &model.Category{Name: name, TeamID: teamID}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Infow("category created", "category_id", category.ID, "team_id", teamID)
	return category, nil
}

func (s *service) Get(ctx context.Context, teamID, id string) (*model.Category, error) {
	return s.repo.GetByID(ctx, teamID, id)
}

func (s *service) List(ctx context.Context, teamID string) ([]model.Category, error) {
	return s.repo.List(ctx, teamID)
}

func (s *service) Update(ctx context.Context, teamID, id string, req *model.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidCategoryName
	}

	category, err := s.repo.GetByID(ctx, teamID, id)
	if err != nil {
		return nil, err
	}
	if category.Name == name {
		return category, nil
	}

	if err := s.repo.Rename(ctx, category, name); err != nil {
		return nil, err
	}
	category.Name = name
	return category, nil
}

func (s *service) Delete(ctx context.Context, teamID, id string) error {
	s.logger.Debugw("deleting category", "category_id", id, "team_id", teamID)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		if _, err := txRepo.GetByID(ctx, teamID, id); err != nil {
			return err
		}

		refs, err := txRepo.CountReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return model.ErrCategoryInUse
		}

		if err := txRepo.Delete(ctx, id); err != nil {
			s.logger.Errorw("failed to delete category", "category_id", id, "error", err)
			return err
		}
		return nil
	})
}
