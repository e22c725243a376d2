// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// PaymentStatistics aggregates charged and paid rows per payment of a team,
	// optionally restricted to one category.
	PaymentStatistics(ctx context.Context, teamID, categoryID string) ([]model.PaymentStatistics, error)

	// EventStatistics aggregates invited and confirmed athletes per event of a team,
	// optionally restricted to one category.
	EventStatistics(ctx context.Context, teamID, categoryID string) ([]model.EventStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// PaymentStatistics aggregates charged and paid rows per payment.
func (r *repository) PaymentStatistics(ctx context.Context, teamID, categoryID string) ([]model.PaymentStatistics, error) {
	r.logger.Debugw("PaymentStatistics called", "team_id", teamID, "category_id", categoryID)

	var stats []model.PaymentStatistics

	query := r.db.WithContext(ctx).
		Table("payments").
		Select(`
			payments.id AS payment_id,
			payments.name,
			payments.value,
			payments.due_date,
			payments.is_finalized,
			COUNT(payment_users.id) AS charged,
			COALESCE(SUM(CASE WHEN payment_users.paid_at IS NOT NULL THEN 1 ELSE 0 END), 0) AS paid
		`).
		Joins("LEFT JOIN payment_users ON payment_users.payment_id = payments.id").
		Where("payments.team_id = ?", teamID)
	if categoryID != "" {
		query = query.Where("payments.category_id = ?", categoryID)
	}

	err := query.
		Group("payments.id, payments.name, payments.value, payments.due_date, payments.is_finalized").
		Order("payments.due_date ASC, payments.id ASC").
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("PaymentStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.PaymentStatistics{}
	}

	r.logger.Debugw("PaymentStatistics completed", "count", len(stats))
	return stats, nil
}

// EventStatistics aggregates invited and confirmed athletes per event.
// An athlete answering several roll-calls of one event is counted once.
func (r *repository) EventStatistics(ctx context.Context, teamID, categoryID string) ([]model.EventStatistics, error) {
	r.logger.Debugw("EventStatistics called", "team_id", teamID, "category_id", categoryID)

	var stats []model.EventStatistics

	query := r.db.WithContext(ctx).
		Table("events").
		Select(`
			events.id AS event_id,
			events.name,
			events.date,
			events.type,
			events.is_finalized,
			COUNT(DISTINCT confirmation_users.user_id) AS invited,
			COUNT(DISTINCT CASE WHEN confirmation_users.status = ? THEN confirmation_users.user_id END) AS confirmed
		`, true).
		Joins("LEFT JOIN confirmations ON confirmations.event_id = events.id").
		Joins("LEFT JOIN confirmation_users ON confirmation_users.confirmation_id = confirmations.id").
		Where("events.team_id = ?", teamID)
	if categoryID != "" {
		query = query.Where("events.category_id = ?", categoryID)
	}

	err := query.
		Group("events.id, events.name, events.date, events.type, events.is_finalized").
		Order("events.date ASC, events.id ASC").
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("EventStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.EventStatistics{}
	}

	r.logger.Debugw("EventStatistics completed", "count", len(stats))
	return stats, nil
}
