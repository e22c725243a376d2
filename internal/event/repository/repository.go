// Package repository provides data access layer for event module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/event/model"
)

// Repository defines the interface for event and roll-call data access operations.
type Repository interface {
	// Create inserts an event.
	Create(ctx context.Context, event *model.Event) error

	// GetByID finds an event of the team with its confirmations, their users and items.
	GetByID(ctx context.Context, teamID, id string) (*model.Event, error)

	// List returns the team's events ordered by date, optionally for one category.
	List(ctx context.Context, teamID, categoryID string) ([]model.Event, error)

	// Update writes the given columns.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// Finalize sets is_finalized. It fails with ErrEventAlreadyFinalized when
	// the flag is already set.
	Finalize(ctx context.Context, id string) error

	// Delete removes the event and its roll-calls and detaches its payments.
	Delete(ctx context.Context, id string) error

	// CreateConfirmation inserts a roll-call together with its users.
	CreateConfirmation(ctx context.Context, confirmation *model.Confirmation) error

	// GetConfirmation finds a roll-call whose event belongs to the team.
	GetConfirmation(ctx context.Context, teamID, id string) (*model.Confirmation, error)

	// FirstConfirmation returns the event's earliest roll-call.
	FirstConfirmation(ctx context.Context, eventID string) (*model.Confirmation, error)

	// GetConfirmationUser finds a user's slot in a roll-call.
	GetConfirmationUser(ctx context.Context, confirmationID, userID string) (*model.ConfirmationUser, error)

	// SaveConfirmationUser writes the slot's status and confirmed_at.
	SaveConfirmationUser(ctx context.Context, row *model.ConfirmationUser) error

	// CreateConfirmationItems inserts the items recorded for a roll-call.
	CreateConfirmationItems(ctx context.Context, items []model.ConfirmationItem) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new event repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Omit("Confirmations").Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, teamID, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Confirmations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Confirmations.Users", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Confirmations.Items").
		Where("id = ? AND team_id = ?", id, teamID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, teamID, categoryID string) ([]model.Event, error) {
	events := []model.Event{}
	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *repository) Finalize(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND is_finalized = ?", id, false).
		Update("is_finalized", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrEventAlreadyFinalized
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	const byEvent = "SELECT id FROM confirmations WHERE event_id = ?"
	steps := []string{
		"DELETE FROM confirmation_items WHERE confirmation_id IN (" + byEvent + ")",
		"DELETE FROM confirmation_users WHERE confirmation_id IN (" + byEvent + ")",
		"DELETE FROM confirmations WHERE event_id = ?",
		"UPDATE payments SET event_id = NULL WHERE event_id = ?",
		"DELETE FROM events WHERE id = ?",
	}
	for _, step := range steps {
		if err := db.Exec(step, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) CreateConfirmation(ctx context.Context, confirmation *model.Confirmation) error {
	return r.db.WithContext(ctx).Omit("Items").Create(confirmation).Error
}

func (r *repository) GetConfirmation(ctx context.Context, teamID, id string) (*model.Confirmation, error) {
	var confirmation model.Confirmation
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = confirmations.event_id").
		Where("confirmations.id = ? AND events.team_id = ?", id, teamID).
		First(&confirmation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrConfirmationNotFound
		}
		return nil, err
	}
	return &confirmation, nil
}

func (r *repository) FirstConfirmation(ctx context.Context, eventID string) (*model.Confirmation, error) {
	var confirmation model.Confirmation
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		First(&confirmation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrConfirmationNotFound
		}
		return nil, err
	}
	return &confirmation, nil
}

func (r *repository) GetConfirmationUser(ctx context.Context, confirmationID, userID string) (*model.ConfirmationUser, error) {
	var row model.ConfirmationUser
	err := r.db.WithContext(ctx).
		Where("confirmation_id = ? AND user_id = ?", confirmationID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrConfirmationUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) SaveConfirmationUser(ctx context.Context, row *model.ConfirmationUser) error {
	return r.db.WithContext(ctx).Model(&model.ConfirmationUser{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"status":       row.Status,
			"confirmed_at": row.ConfirmedAt,
		}).Error
}

func (r *repository) CreateConfirmationItems(ctx context.Context, items []model.ConfirmationItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
