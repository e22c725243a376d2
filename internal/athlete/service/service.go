// Package service provides business logic layer for athlete module.
package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/athlete/model"
	"github.com/squadboard/squadboard-api/internal/athlete/repository"
	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/storage"
	userModel "github.com/squadboard/squadboard-api/internal/user/model"
	userRepository "github.com/squadboard/squadboard-api/internal/user/repository"
)

// Service defines the interface for athlete business logic operations.
type Service interface {
	// Create makes an ATHLETE account with its profile and category links.
	Create(ctx context.Context, teamID string, req *model.CreateAthleteRequest) (*model.Athlete, error)

	Get(ctx context.Context, teamID, id string) (*model.Athlete, error)

	// List returns the team's athletes, filtered by category when categoryID is set.
	List(ctx context.Context, teamID, categoryID string) ([]model.Athlete, error)

	// Update changes profile fields and, when given, replaces the category set.
	Update(ctx context.Context, teamID, id string, req *model.UpdateAthleteRequest) (*model.Athlete, error)

	// Delete removes the athlete, its account and its roll-call and payment rows.
	Delete(ctx context.Context, teamID, id string) error

	// UpdateImage stores a new profile image and records its public URL.
	UpdateImage(ctx context.Context, teamID, id, contentType string, size int64, body io.Reader) (*model.Athlete, error)
}

// Deps holds the collaborators the service needs besides its repositories.
type Deps struct {
	Uploader   storage.Uploader
	BcryptCost int
}

type service struct {
	repo       repository.Repository
	categories categoryRepository.Repository
	db         *gorm.DB
	deps       Deps
	logger     *zap.SugaredLogger
}

// New creates a new athlete service instance.
func New(
	repo repository.Repository,
	categories categoryRepository.Repository,
	db *gorm.DB,
	deps Deps,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		db:         db,
		deps:       deps,
		logger:     logger,
	}
}

func (s *service) Create(ctx context.Context, teamID string, req *model.CreateAthleteRequest) (*model.Athlete, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidAthleteName
	}
	if len(req.Password) < userModel.MinPasswordLength {
		return nil, userModel.ErrWeakPassword
	}
	username := userModel.UsernameFor(req.Phone, req.Email)
	if username == "" {
		return nil, userModel.ErrMissingContact
	}
	categoryIDs := dedupe(req.CategoryIDs)
	if err := s.categories.EnsureAll(ctx, teamID, categoryIDs); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.deps.BcryptCost)
	if err != nil {
		return nil, err
	}

	athlete := &model.Athlete{
		TeamID:      teamID,
		Name:        name,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		BirthDate:   req.BirthDate,
		ShirtNumber: req.ShirtNumber,
		Position:    strings.TrimSpace(req.Position),
		CategoryIDs: categoryIDs,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &userModel.User{
			Username:     username,
			PasswordHash: hash,
			Role:         auth.RoleAthlete,
			TeamID:       teamID,
		}
		if err := userRepository.New(tx).CreateUser(ctx, user); err != nil {
			return err
		}
		athlete.UserID = user.ID
		return repository.New(tx).Create(ctx, athlete)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("athlete created",
		"athlete_id", athlete.ID,
		"team_id", teamID,
		"username", username,
		"categories", len(categoryIDs),
	)
	return athlete, nil
}

func (s *service) Get(ctx context.Context, teamID, id string) (*model.Athlete, error) {
	return s.repo.GetByID(ctx, teamID, id)
}

func (s *service) List(ctx context.Context, teamID, categoryID string) ([]model.Athlete, error) {
	return s.repo.List(ctx, teamID, categoryID)
}

func (s *service) Update(ctx context.Context, teamID, id string, req *model.UpdateAthleteRequest) (*model.Athlete, error) {
	if _, err := s.repo.GetByID(ctx, teamID, id); err != nil {
		return nil, err
	}

	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}
	var categoryIDs []string
	if req.CategoryIDs != nil {
		categoryIDs = dedupe(*req.CategoryIDs)
		if err := s.categories.EnsureAll(ctx, teamID, categoryIDs); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if err := txRepo.Update(ctx, id, fields); err != nil {
			return err
		}
		if req.CategoryIDs != nil {
			return txRepo.SetCategories(ctx, id, categoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("athlete updated", "athlete_id", id, "team_id", teamID)
	return s.repo.GetByID(ctx, teamID, id)
}

func updateFields(req *model.UpdateAthleteRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.ErrInvalidAthleteName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.BirthDate != nil {
		fields["birth_date"] = *req.BirthDate
	}
	if req.ShirtNumber != nil {
		fields["shirt_number"] = *req.ShirtNumber
	}
	if req.Position != nil {
		fields["position"] = strings.TrimSpace(*req.Position)
	}
	return fields, nil
}

func (s *service) Delete(ctx context.Context, teamID, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		athlete, err := txRepo.GetByID(ctx, teamID, id)
		if err != nil {
			return err
		}
		return txRepo.Delete(ctx, athlete)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("athlete deleted", "athlete_id", id, "team_id", teamID)
	return nil
}

func (s *service) UpdateImage(ctx context.Context, teamID, id, contentType string, size int64, body io.Reader) (*model.Athlete, error) {
	if _, err := s.repo.GetByID(ctx, teamID, id); err != nil {
		return nil, err
	}

	res, err := storage.UploadImage(ctx, s.deps.Uploader, "athletes/"+id, contentType, size, body)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{"image_url": res.Location}); err != nil {
		if delErr := s.deps.Uploader.Delete(ctx, res.Key); delErr != nil {
			s.logger.Warnw("failed to remove orphaned image", "key", res.Key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Infow("athlete image updated", "athlete_id", id, "key", res.Key)
	return s.repo.GetByID(ctx, teamID, id)
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
