// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/statistics/model"
	"github.com/squadboard/squadboard-api/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// Payments returns settlement progress of every payment of the team.
	Payments(ctx context.Context, teamID, categoryID string) (*model.PaymentStatisticsResponse, error)

	// Events returns roll-call answers of every event of the team.
	Events(ctx context.Context, teamID, categoryID string) (*model.EventStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// Payments returns settlement progress of every payment of the team.
func (s *service) Payments(ctx context.Context, teamID, categoryID string) (*model.PaymentStatisticsResponse, error) {
	payments, err := s.repo.PaymentStatistics(ctx, teamID, categoryID)
	if err != nil {
		s.logger.Errorw("payment statistics failed", "team_id", teamID, "error", err)
		return nil, err
	}
	if payments == nil {
		payments = []model.PaymentStatistics{}
	}

	resp := &model.PaymentStatisticsResponse{Payments: payments}
	for i := range payments {
		payments[i].Pending = payments[i].Charged - payments[i].Paid
		resp.TotalCharged += payments[i].Charged
		resp.TotalPaid += payments[i].Paid
	}

	s.logger.Debugw("payment statistics computed", "team_id", teamID, "count", len(payments))
	return resp, nil
}

// Events returns roll-call answers of every event of the team.
func (s *service) Events(ctx context.Context, teamID, categoryID string) (*model.EventStatisticsResponse, error) {
	events, err := s.repo.EventStatistics(ctx, teamID, categoryID)
	if err != nil {
		s.logger.Errorw("event statistics failed", "team_id", teamID, "error", err)
		return nil, err
	}
	if events == nil {
		events = []model.EventStatistics{}
	}

	for i := range events {
		events[i].AttendanceRate = attendanceRate(events[i].Confirmed, events[i].Invited)
	}

	s.logger.Debugw("event statistics computed", "team_id", teamID, "count", len(events))
	return &model.EventStatisticsResponse{
		Events: events,
		Total:  len(events),
	}, nil
}

// attendanceRate is confirmed/invited rounded to two decimals, 0 for nobody invited.
func attendanceRate(confirmed, invited int) float64 {
	if invited == 0 {
		return 0
	}
	return math.Round(float64(confirmed)/float64(invited)*100) / 100
}
