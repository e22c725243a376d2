// Package service provides business logic layer for team module.
package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/storage"
	teamModel "github.com/squadboard/squadboard-api/internal/team/model"
	"github.com/squadboard/squadboard-api/internal/team/repository"
	userModel "github.com/squadboard/squadboard-api/internal/user/model"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// Register creates a team and its TEAM account and signs a token for it.
	Register(ctx context.Context, req *teamModel.RegisterRequest) (*teamModel.RegisterResponse, error)

	// Get returns the caller's team.
	Get(ctx context.Context, teamID string) (*teamModel.Team, error)

	// Update changes name, email or phone.
	Update(ctx context.Context, teamID string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error)

	// UpdateImage stores a new team image and records its public URL.
	UpdateImage(ctx context.Context, teamID, contentType string, size int64, body io.Reader) (*teamModel.Team, error)
}

// Deps holds the collaborators the service needs besides its repository.
type Deps struct {
	Tokens     *auth.TokenManager
	Uploader   storage.Uploader
	BcryptCost int
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	deps   Deps
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, deps Deps, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		deps:   deps,
		logger: logger,
	}
}

// Register creates the team and its owner account in a transaction.
func (s *service) Register(ctx context.Context, req *teamModel.RegisterRequest) (*teamModel.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	if len(req.Password) < userModel.MinPasswordLength {
		return nil, userModel.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password, s.deps.BcryptCost)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	team := &teamModel.Team{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
	}
	owner := &userModel.User{
		Username:     userModel.UsernameFor("", email),
		PasswordHash: hash,
		Role:         auth.RoleTeam,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if err := txRepo.Create(ctx, team); err != nil {
			return err
		}
		owner.TeamID = team.ID
		return txRepo.CreateOwner(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	token, err := s.deps.Tokens.Issue(owner.ID, owner.Role, team.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team registered", "team_id", team.ID, "username", owner.Username)
	return &teamModel.RegisterResponse{Token: token, Team: team, User: owner}, nil
}

func (s *service) Get(ctx context.Context, teamID string) (*teamModel.Team, error) {
	return s.repo.GetByID(ctx, teamID)
}

func (s *service) Update(ctx context.Context, teamID string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, teamModel.ErrInvalidTeamName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, teamID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, teamID)
}

func (s *service) UpdateImage(ctx context.Context, teamID, contentType string, size int64, body io.Reader) (*teamModel.Team, error) {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	res, err := storage.UploadImage(ctx, s.deps.Uploader, "teams/"+teamID, contentType, size, body)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, teamID, map[string]interface{}{"image_url": res.Location}); err != nil {
		if delErr := s.deps.Uploader.Delete(ctx, res.Key); delErr != nil {
			s.logger.Warnw("failed to remove orphaned image", "key", res.Key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Infow("team image updated", "team_id", teamID, "key", res.Key)
	return s.repo.GetByID(ctx, teamID)
}
