// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/user/model"
	"github.com/squadboard/squadboard-api/internal/user/repository"
)

// Service defines the interface for account and manager operations.
type Service interface {
	// Login checks credentials and signs a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Me returns the caller's account and, for managers, their profile.
	Me(ctx context.Context, userID string) (*model.MeResponse, error)

	// ChangePassword replaces the caller's password after checking the current one.
	ChangePassword(ctx context.Context, userID string, req *model.ChangePasswordRequest) error

	// CreateManager creates a MANAGER account, its profile and category links.
	CreateManager(ctx context.Context, teamID string, req *model.CreateManagerRequest) (*model.Manager, error)

	GetManager(ctx context.Context, teamID, id string) (*model.Manager, error)
	ListManagers(ctx context.Context, teamID string) ([]model.Manager, error)

	// DeleteManager removes a manager and everything that references its account.
	DeleteManager(ctx context.Context, teamID, id string) error
}

type service struct {
	repo       repository.Repository
	categories categoryRepository.Repository
	db         *gorm.DB
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.SugaredLogger
}

// New creates a new user service instance.
func New(
	repo repository.Repository,
	categories categoryRepository.Repository,
	db *gorm.DB,
	tokens *auth.TokenManager,
	bcryptCost int,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		db:         db,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Infow("login rejected", "username", username)
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role, user.TeamID)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *service) Me(ctx context.Context, userID string) (*model.MeResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &model.MeResponse{User: user}
	if user.Role == auth.RoleManager {
		manager, err := s.repo.GetManagerByUserID(ctx, userID)
		if err != nil && !errors.Is(err, model.ErrManagerNotFound) {
			return nil, err
		}
		resp.Manager = manager
	}
	return resp, nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req *model.ChangePasswordRequest) error {
	if len(req.NewPassword) < model.MinPasswordLength {
		return model.ErrWeakPassword
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Infow("password changed", "user_id", userID)
	return nil
}

func (s *service) CreateManager(ctx context.Context, teamID string, req *model.CreateManagerRequest) (*model.Manager, error) {
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrWeakPassword
	}
	username := model.UsernameFor(req.Phone, req.Email)
	if username == "" {
		return nil, model.ErrMissingContact
	}
	if err := s.categories.EnsureAll(ctx, teamID, req.CategoryIDs); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	manager := &model.Manager{
		TeamID:      teamID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		CategoryIDs: dedupe(req.CategoryIDs),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		user := &model.User{
			Username:     username,
			PasswordHash: hash,
			Role:         auth.RoleManager,
			TeamID:       teamID,
		}
		if err := txRepo.CreateUser(ctx, user); err != nil {
			return err
		}
		manager.UserID = user.ID
		return txRepo.CreateManager(ctx, manager)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("manager created", "manager_id", manager.ID, "team_id", teamID, "username", username)
	return manager, nil
}

func (s *service) GetManager(ctx context.Context, teamID, id string) (*model.Manager, error) {
	return s.repo.GetManager(ctx, teamID, id)
}

func (s *service) ListManagers(ctx context.Context, teamID string) ([]model.Manager, error) {
	return s.repo.ListManagers(ctx, teamID)
}

func (s *service) DeleteManager(ctx context.Context, teamID, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		manager, err := txRepo.GetManager(ctx, teamID, id)
		if err != nil {
			return err
		}
		return txRepo.DeleteManager(ctx, manager)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("manager deleted", "manager_id", id, "team_id", teamID)
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
