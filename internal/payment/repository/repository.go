// Package repository provides data access layer for payment module.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/payment/model"
	"github.com/squadboard/squadboard-api/pkg/money"
)

// Repository defines the interface for payment data access operations.
type Repository interface {
	// Create inserts a payment with one unpaid PaymentUser per user id.
	Create(ctx context.Context, payment *model.Payment, userIDs []string) error

	// GetByID finds a payment of the team without its children.
	GetByID(ctx context.Context, teamID, id string) (*model.Payment, error)

	// GetDetailed finds a payment of the team with its items and users.
	GetDetailed(ctx context.Context, teamID, id string) (*model.Payment, error)

	// List returns the team's payments ordered by due date, optionally for one category.
	List(ctx context.Context, teamID, categoryID string) ([]model.Payment, error)

	// ListForUser returns the team's payments charged to userID with their items.
	ListForUser(ctx context.Context, teamID, userID string) ([]model.MyPayment, error)

	// Update writes the given columns.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// Finalize sets is_finalized. It fails with ErrPaymentAlreadyFinalized
	// when the flag is already set.
	Finalize(ctx context.Context, id string) error

	// Delete removes the payment, its items, users and the confirmation items
	// recorded against its items.
	Delete(ctx context.Context, id string) error

	CreateItem(ctx context.Context, item *model.PaymentItem) error

	// GetItem finds an item whose payment belongs to the team.
	GetItem(ctx context.Context, teamID, id string) (*model.PaymentItem, error)

	// ListItems returns the payment's items ordered by creation.
	ListItems(ctx context.Context, paymentID string) ([]model.PaymentItem, error)

	UpdateItem(ctx context.Context, item *model.PaymentItem) error

	// DeleteItem removes the item and the confirmation items referencing it.
	DeleteItem(ctx context.Context, id string) error

	// RecalculateTotal writes the sum of the payment's item values to
	// payments.value and returns it.
	RecalculateTotal(ctx context.Context, paymentID string) (money.Amount, error)

	// GetPaymentUser finds a user's settlement row.
	GetPaymentUser(ctx context.Context, paymentID, userID string) (*model.PaymentUser, error)

	// MarkPaid stamps paid_at on a settlement row.
	MarkPaid(ctx context.Context, row *model.PaymentUser, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new payment repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *model.Payment, userIDs []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Items", "Users").Create(payment).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	users := make([]model.PaymentUser, 0, len(userIDs))
	for _, userID := range userIDs {
		users = append(users, model.PaymentUser{PaymentID: payment.ID, UserID: userID})
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	payment.Users = users
	return nil
}

func (r *repository) GetByID(ctx context.Context, teamID, id string) (*model.Payment, error) {
	return r.find(r.db.WithContext(ctx), teamID, id)
}

func (r *repository) GetDetailed(ctx context.Context, teamID, id string) (*model.Payment, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Users", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	return r.find(query, teamID, id)
}

func (r *repository) find(query *gorm.DB, teamID, id string) (*model.Payment, error) {
	var payment model.Payment
	if err := query.Where("id = ? AND team_id = ?", id, teamID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) List(ctx context.Context, teamID, categoryID string) ([]model.Payment, error) {
	payments := []model.Payment{}
	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Order("due_date ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListForUser(ctx context.Context, teamID, userID string) ([]model.MyPayment, error) {
	var rows []model.PaymentUser
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := []model.MyPayment{}
	if len(rows) == 0 {
		return result, nil
	}

	paidAt := make(map[string]*time.Time, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		paidAt[row.PaymentID] = row.PaidAt
		ids = append(ids, row.PaymentID)
	}

	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id IN ? AND team_id = ?", ids, teamID).
		Order("due_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	for _, payment := range payments {
		at := paidAt[payment.ID]
		result = append(result, model.MyPayment{Payment: payment, PaidAt: at, Paid: at != nil})
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&model.Payment{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrPaymentNotFound
	}
	return nil
}

func (r *repository) Finalize(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND is_finalized = ?", id, false).
		Update("is_finalized", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrPaymentAlreadyFinalized
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	steps := []string{
		"DELETE FROM confirmation_items WHERE payment_item_id IN (SELECT id FROM payment_items WHERE payment_id = ?)",
		"DELETE FROM payment_users WHERE payment_id = ?",
		"DELETE FROM payment_items WHERE payment_id = ?",
		"DELETE FROM payments WHERE id = ?",
	}
	for _, step := range steps {
		if err := db.Exec(step, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) CreateItem(ctx context.Context, item *model.PaymentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetItem(ctx context.Context, teamID, id string) (*model.PaymentItem, error) {
	var item model.PaymentItem
	err := r.db.WithContext(ctx).
		Joins("JOIN payments ON payments.id = payment_items.payment_id").
		Where("payment_items.id = ? AND payments.team_id = ?", id, teamID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPaymentItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, paymentID string) ([]model.PaymentItem, error) {
	items := []model.PaymentItem{}
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *model.PaymentItem) error {
	return r.db.WithContext(ctx).Model(&model.PaymentItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":             item.Name,
			"value":            item.Value,
			"quantity_enabled": item.QuantityEnabled,
		}).Error
}

func (r *repository) DeleteItem(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM confirmation_items WHERE payment_item_id = ?", id).Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM payment_items WHERE id = ?", id).Error
}

func (r *repository) RecalculateTotal(ctx context.Context, paymentID string) (money.Amount, error) {
	db := r.db.WithContext(ctx)
	var total int64
	err := db.Model(&model.PaymentItem{}).
		Select("CAST(COALESCE(SUM(value), 0) AS BIGINT)").
		Where("payment_id = ?", paymentID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	amount := money.FromCents(total)
	err = db.Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("value", amount).Error
	if err != nil {
		return 0, err
	}
	return amount, nil
}

func (r *repository) GetPaymentUser(ctx context.Context, paymentID, userID string) (*model.PaymentUser, error) {
	var row model.PaymentUser
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND user_id = ?", paymentID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPaymentUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) MarkPaid(ctx context.Context, row *model.PaymentUser, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.PaymentUser{}).
		Where("id = ?", row.ID).
		Update("paid_at", at).Error
	if err != nil {
		return err
	}
	row.PaidAt = &at
	return nil
}
