// Package service provides business logic layer for event module.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	athleteRepository "github.com/squadboard/squadboard-api/internal/athlete/repository"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/event/model"
	"github.com/squadboard/squadboard-api/internal/event/repository"
)

// Service defines the interface for event business logic operations.
type Service interface {
	// Create stores the event and opens its roll-call with one PENDING slot
	// per athlete currently in the category.
	Create(ctx context.Context, teamID string, req *model.CreateEventRequest) (*model.Event, error)

	// Get returns the event with every roll-call.
	Get(ctx context.Context, teamID, id string) (*model.Event, error)

	List(ctx context.Context, teamID, categoryID string) ([]model.Event, error)

	// Update changes event details. Finalized events are rejected.
	Update(ctx context.Context, teamID, id string, req *model.UpdateEventRequest) (*model.Event, error)

	// Finalize closes the event for edits.
	Finalize(ctx context.Context, teamID, id string) (*model.Event, error)

	// Delete removes the event, its roll-calls and detaches its payments.
	Delete(ctx context.Context, teamID, id string) error

	// ToggleConfirmation flips the caller's slot in a roll-call.
	ToggleConfirmation(ctx context.Context, teamID, userID, confirmationID string) (*model.ConfirmationUser, error)

	// ConfirmPresence confirms the caller's slot in the event's first roll-call.
	ConfirmPresence(ctx context.Context, teamID, userID, eventID string) (*model.ConfirmationUser, error)
}

type service struct {
	repo       repository.Repository
	categories categoryRepository.Repository
	db         *gorm.DB
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// New creates a new event service instance.
func New(
	repo repository.Repository,
	categories categoryRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		db:         db,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, teamID string, req *model.CreateEventRequest) (*model.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidEventName
	}
	if _, err := s.categories.GetByID(ctx, teamID, req.CategoryID); err != nil {
		return nil, err
	}

	event := &model.Event{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
		Location:    strings.TrimSpace(req.Location),
		Type:        normalizeType(req.Type),
		TeamID:      teamID,
		CategoryID:  req.CategoryID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if err := txRepo.Create(ctx, event); err != nil {
			return err
		}

		userIDs, err := athleteRepository.New(tx).UserIDsInCategory(ctx, event.CategoryID)
		if err != nil {
			return err
		}
		confirmation := model.Confirmation{EventID: event.ID}
		for _, userID := range userIDs {
			confirmation.Users = append(confirmation.Users, model.ConfirmationUser{UserID: userID})
		}
		if err := txRepo.CreateConfirmation(ctx, &confirmation); err != nil {
			return err
		}
		event.Confirmations = []model.Confirmation{confirmation}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("event created",
		"event_id", event.ID,
		"team_id", teamID,
		"category_id", event.CategoryID,
		"slots", len(event.Confirmations[0].Users),
	)
	return event, nil
}

func normalizeType(t string) string {
	t = strings.ToUpper(strings.TrimSpace(t))
	if t == "" {
		return model.TypeOther
	}
	return t
}

func (s *service) Get(ctx context.Context, teamID, id string) (*model.Event, error) {
	return s.repo.GetByID(ctx, teamID, id)
}

func (s *service) List(ctx context.Context, teamID, categoryID string) ([]model.Event, error) {
	return s.repo.List(ctx, teamID, categoryID)
}

func (s *service) Update(ctx context.Context, teamID, id string, req *model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, teamID, id)
	if err != nil {
		return nil, err
	}
	if event.IsFinalized {
		return nil, model.ErrEventFinalized
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.ErrInvalidEventName
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Type != nil {
		fields["type"] = normalizeType(*req.Type)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.logger.Infow("event updated", "event_id", id, "team_id", teamID)
	return s.repo.GetByID(ctx, teamID, id)
}

func (s *service) Finalize(ctx context.Context, teamID, id string) (*model.Event, error) {
	if _, err := s.repo.GetByID(ctx, teamID, id); err != nil {
		return nil, err
	}
	if err := s.repo.Finalize(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Infow("event finalized", "event_id", id, "team_id", teamID)
	return s.repo.GetByID(ctx, teamID, id)
}

func (s *service) Delete(ctx context.Context, teamID, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := txRepo.GetByID(ctx, teamID, id); err != nil {
			return err
		}
		return txRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("event deleted", "event_id", id, "team_id", teamID)
	return nil
}

func (s *service) ToggleConfirmation(ctx context.Context, teamID, userID, confirmationID string) (*model.ConfirmationUser, error) {
	var row *model.ConfirmationUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := txRepo.GetConfirmation(ctx, teamID, confirmationID); err != nil {
			return err
		}
		var err error
		row, err = s.setConfirmation(ctx, txRepo, confirmationID, userID, func(current bool) bool {
			return !current
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("confirmation toggled",
		"confirmation_id", confirmationID,
		"user_id", userID,
		"status", row.Status,
	)
	return row, nil
}

func (s *service) ConfirmPresence(ctx context.Context, teamID, userID, eventID string) (*model.ConfirmationUser, error) {
	var row *model.ConfirmationUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := txRepo.GetByID(ctx, teamID, eventID); err != nil {
			return err
		}
		confirmation, err := txRepo.FirstConfirmation(ctx, eventID)
		if err != nil {
			return err
		}
		row, err = s.setConfirmation(ctx, txRepo, confirmation.ID, userID, func(bool) bool {
			return true
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("presence confirmed", "event_id", eventID, "user_id", userID)
	return row, nil
}

// setConfirmation loads the user's slot, moves it to target(current status)
// and persists it.
func (s *service) setConfirmation(
	ctx context.Context,
	repo repository.Repository,
	confirmationID, userID string,
	target func(current bool) bool,
) (*model.ConfirmationUser, error) {
	row, err := repo.GetConfirmationUser(ctx, confirmationID, userID)
	if err != nil {
		return nil, err
	}
	model.SetConfirmation(row, target(row.Status), s.now())
	if err := repo.SaveConfirmationUser(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}
