// Package service provides business logic layer for payment module.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	athleteRepository "github.com/squadboard/squadboard-api/internal/athlete/repository"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	eventModel "github.com/squadboard/squadboard-api/internal/event/model"
	eventRepository "github.com/squadboard/squadboard-api/internal/event/repository"
	"github.com/squadboard/squadboard-api/internal/payment/model"
	"github.com/squadboard/squadboard-api/internal/payment/repository"
	"github.com/squadboard/squadboard-api/pkg/money"
)

// Service defines the interface for payment business logic operations.
type Service interface {
	// Create stores a payment with value 0 and one unpaid row per athlete
	// currently in the category.
	Create(ctx context.Context, teamID string, req *model.CreatePaymentRequest) (*model.Payment, error)

	// Get returns the payment with its items and users.
	Get(ctx context.Context, teamID, id string) (*model.Payment, error)

	List(ctx context.Context, teamID, categoryID string) ([]model.Payment, error)

	// Mine returns the payments charged to the caller with their paid status.
	Mine(ctx context.Context, teamID, userID string) ([]model.MyPayment, error)

	Update(ctx context.Context, teamID, id string, req *model.UpdatePaymentRequest) (*model.Payment, error)
	Delete(ctx context.Context, teamID, id string) error

	// AddItem, UpdateItem and DeleteItem change the item set and rewrite the
	// payment total in the same transaction.
	AddItem(ctx context.Context, teamID, paymentID string, req *model.ItemRequest) (*model.ItemResponse, error)
	UpdateItem(ctx context.Context, teamID, itemID string, req *model.ItemRequest) (*model.ItemResponse, error)
	DeleteItem(ctx context.Context, teamID, itemID string) (money.Amount, error)

	// Finalize makes the payment and its items read-only.
	Finalize(ctx context.Context, teamID, id string) (*model.Payment, error)

	// Process marks the caller's share of the payment as paid.
	Process(ctx context.Context, teamID, userID string, req *model.ProcessPaymentRequest) (*model.PaymentUser, error)

	// ProcessWithItems pays the caller's share and records the selected item
	// quantities under a new roll-call of the payment's event.
	ProcessWithItems(ctx context.Context, teamID, userID string, req *model.ProcessWithItemsRequest) (*eventModel.Confirmation, error)
}

type service struct {
	repo       repository.Repository
	categories categoryRepository.Repository
	events     eventRepository.Repository
	db         *gorm.DB
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// New creates a new payment service instance.
func New(
	repo repository.Repository,
	categories categoryRepository.Repository,
	events eventRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		events:     events,
		db:         db,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, teamID string, req *model.CreatePaymentRequest) (*model.Payment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidPaymentName
	}
	if _, err := s.categories.GetByID(ctx, teamID, req.CategoryID); err != nil {
		return nil, err
	}
	eventID, err := s.checkEvent(ctx, teamID, req.EventID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		Name:       name,
		DueDate:    req.DueDate,
		PixKey:     strings.TrimSpace(req.PixKey),
		TeamID:     teamID,
		CategoryID: req.CategoryID,
		EventID:    eventID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs, err := athleteRepository.New(tx).UserIDsInCategory(ctx, payment.CategoryID)
		if err != nil {
			return err
		}
		return repository.New(tx).Create(ctx, payment, userIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("payment created",
		"payment_id", payment.ID,
		"team_id", teamID,
		"category_id", payment.CategoryID,
		"users", len(payment.Users),
	)
	return payment, nil
}

// checkEvent returns nil for an absent or empty id and fails unless the
// event belongs to the team.
func (s *service) checkEvent(ctx context.Context, teamID string, eventID *string) (*string, error) {
	if eventID == nil || *eventID == "" {
		return nil, nil
	}
	if _, err := s.events.GetByID(ctx, teamID, *eventID); err != nil {
		return nil, err
	}
	return eventID, nil
}

func (s *service) Get(ctx context.Context, teamID, id string) (*model.Payment, error) {
	return s.repo.GetDetailed(ctx, teamID, id)
}

func (s *service) List(ctx context.Context, teamID, categoryID string) ([]model.Payment, error) {
	return s.repo.List(ctx, teamID, categoryID)
}

func (s *service) Mine(ctx context.Context, teamID, userID string) ([]model.MyPayment, error) {
	return s.repo.ListForUser(ctx, teamID, userID)
}

// ensureEditable loads the payment and rejects it once finalized. Every
// mutation of a payment or its items goes through it first.
func ensureEditable(ctx context.Context, repo repository.Repository, teamID, paymentID string) (*model.Payment, error) {
	payment, err := repo.GetByID(ctx, teamID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.IsFinalized {
		return nil, model.ErrPaymentFinalized
	}
	return payment, nil
}

func (s *service) Update(ctx context.Context, teamID, id string, req *model.UpdatePaymentRequest) (*model.Payment, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.ErrInvalidPaymentName
		}
		fields["name"] = name
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.PixKey != nil {
		fields["pix_key"] = strings.TrimSpace(*req.PixKey)
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, teamID, *req.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *req.CategoryID
	}
	switch {
	case req.ClearEvent:
		fields["event_id"] = nil
	case req.EventID != nil:
		eventID, err := s.checkEvent(ctx, teamID, req.EventID)
		if err != nil {
			return nil, err
		}
		fields["event_id"] = eventID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := ensureEditable(ctx, txRepo, teamID, id); err != nil {
			return err
		}
		return txRepo.Update(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("payment updated", "payment_id", id, "team_id", teamID)
	return s.repo.GetDetailed(ctx, teamID, id)
}

func (s *service) Delete(ctx context.Context, teamID, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := ensureEditable(ctx, txRepo, teamID, id); err != nil {
			return err
		}
		return txRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("payment deleted", "payment_id", id, "team_id", teamID)
	return nil
}

func itemName(req *model.ItemRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", model.ErrInvalidPaymentName
	}
	return name, nil
}

func (s *service) AddItem(ctx context.Context, teamID, paymentID string, req *model.ItemRequest) (*model.ItemResponse, error) {
	name, err := itemName(req)
	if err != nil {
		return nil, err
	}

	resp := &model.ItemResponse{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := ensureEditable(ctx, txRepo, teamID, paymentID); err != nil {
			return err
		}

		item := &model.PaymentItem{
			Name:            name,
			Value:           *req.Value,
			QuantityEnabled: req.QuantityEnabled,
			PaymentID:       paymentID,
		}
		if err := txRepo.CreateItem(ctx, item); err != nil {
			return err
		}
		total, err := txRepo.RecalculateTotal(ctx, paymentID)
		if err != nil {
			return err
		}
		resp.Item, resp.PaymentValue = item, total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("payment item added",
		"payment_id", paymentID,
		"item_id", resp.Item.ID,
		"value", resp.Item.Value.String(),
		"total", resp.PaymentValue.String(),
	)
	return resp, nil
}

func (s *service) UpdateItem(ctx context.Context, teamID, itemID string, req *model.ItemRequest) (*model.ItemResponse, error) {
	name, err := itemName(req)
	if err != nil {
		return nil, err
	}

	resp := &model.ItemResponse{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		item, err := txRepo.GetItem(ctx, teamID, itemID)
		if err != nil {
			return err
		}
		if _, err := ensureEditable(ctx, txRepo, teamID, item.PaymentID); err != nil {
			return err
		}

		item.Name = name
		item.Value = *req.Value
		item.QuantityEnabled = req.QuantityEnabled
		if err := txRepo.UpdateItem(ctx, item); err != nil {
			return err
		}
		total, err := txRepo.RecalculateTotal(ctx, item.PaymentID)
		if err != nil {
			return err
		}
		resp.Item, resp.PaymentValue = item, total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("payment item updated",
		"payment_id", resp.Item.PaymentID,
		"item_id", itemID,
		"total", resp.PaymentValue.String(),
	)
	return resp, nil
}

func (s *service) DeleteItem(ctx context.Context, teamID, itemID string) (money.Amount, error) {
	var total money.Amount
	var paymentID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		item, err := txRepo.GetItem(ctx, teamID, itemID)
		if err != nil {
			return err
		}
		paymentID = item.PaymentID
		if _, err := ensureEditable(ctx, txRepo, teamID, paymentID); err != nil {
			return err
		}
		if err := txRepo.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		total, err = txRepo.RecalculateTotal(ctx, paymentID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Infow("payment item deleted",
		"payment_id", paymentID,
		"item_id", itemID,
		"total", total.String(),
	)
	return total, nil
}

func (s *service) Finalize(ctx context.Context, teamID, id string) (*model.Payment, error) {
	if _, err := s.repo.GetByID(ctx, teamID, id); err != nil {
		return nil, err
	}
	if err := s.repo.Finalize(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Infow("payment finalized", "payment_id", id, "team_id", teamID)
	return s.repo.GetDetailed(ctx, teamID, id)
}

func (s *service) Process(ctx context.Context, teamID, userID string, req *model.ProcessPaymentRequest) (*model.PaymentUser, error) {
	var row *model.PaymentUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		if _, err := txRepo.GetByID(ctx, teamID, req.PaymentID); err != nil {
			return err
		}
		var err error
		row, err = txRepo.GetPaymentUser(ctx, req.PaymentID, userID)
		if err != nil {
			return err
		}
		if row.PaidAt != nil {
			return model.ErrAlreadyPaid
		}
		return txRepo.MarkPaid(ctx, row, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("payment settled", "payment_id", req.PaymentID, "user_id", userID)
	return row, nil
}

func (s *service) ProcessWithItems(ctx context.Context, teamID, userID string, req *model.ProcessWithItemsRequest) (*eventModel.Confirmation, error) {
	for _, quantity := range req.SelectedItems {
		if quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
	}

	var confirmation *eventModel.Confirmation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txEvents := eventRepository.New(tx)

		payment, err := txRepo.GetByID(ctx, teamID, req.PaymentID)
		if err != nil {
			return err
		}
		if payment.EventID == nil {
			return model.ErrPaymentWithoutEvent
		}
		row, err := txRepo.GetPaymentUser(ctx, payment.ID, userID)
		if err != nil {
			return err
		}
		if err := checkSelection(ctx, txRepo, payment.ID, req.SelectedItems); err != nil {
			return err
		}

		now := s.now()
		confirmation = &eventModel.Confirmation{EventID: *payment.EventID}
		slot := eventModel.ConfirmationUser{UserID: userID}
		eventModel.SetConfirmation(&slot, true, now)
		confirmation.Users = []eventModel.ConfirmationUser{slot}
		if err := txEvents.CreateConfirmation(ctx, confirmation); err != nil {
			return err
		}

		if err := txRepo.MarkPaid(ctx, row, now); err != nil {
			return err
		}

		confirmation.Items = selectionItems(confirmation.ID, userID, req.SelectedItems)
		return txEvents.CreateConfirmationItems(ctx, confirmation.Items)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("payment processed with items",
		"payment_id", req.PaymentID,
		"user_id", userID,
		"confirmation_id", confirmation.ID,
		"items", len(confirmation.Items),
	)
	return confirmation, nil
}

// checkSelection fails unless every selected id is an item of the payment.
func checkSelection(ctx context.Context, repo repository.Repository, paymentID string, selected map[string]int) error {
	if len(selected) == 0 {
		return nil
	}
	items, err := repo.ListItems(ctx, paymentID)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(items))
	for _, item := range items {
		known[item.ID] = struct{}{}
	}
	for id := range selected {
		if _, ok := known[id]; !ok {
			return model.ErrPaymentItemNotFound
		}
	}
	return nil
}

// selectionItems builds one confirmation item per selected id, ordered by id.
func selectionItems(confirmationID, userID string, selected map[string]int) []eventModel.ConfirmationItem {
	ids := make([]string, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]eventModel.ConfirmationItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, eventModel.ConfirmationItem{
			PaymentItemID:  id,
			ConfirmationID: confirmationID,
			UserID:         userID,
			Quantity:       selected[id],
		})
	}
	return items
}
