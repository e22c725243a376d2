package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventModel "github.com/squadboard/squadboard-api/internal/event/model"
	"github.com/squadboard/squadboard-api/internal/payment/model"
	"github.com/squadboard/squadboard-api/internal/testutil"
	"github.com/squadboard/squadboard-api/pkg/money"
)

func TestRepository_RecalculateTotal(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := New(db)
	team, _ := testutil.SeedTeam(t, db, "lions")
	u17 := testutil.SeedCategory(t, db, team.ID, "U17")
	payment := testutil.SeedPayment(t, db, team.ID, u17.ID, nil)

	total, err := repo.RecalculateTotal(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), total)

	for _, v := range []money.Amount{1000, 1550, -50} {
		require.NoError(t, repo.CreateItem(ctx, &model.PaymentItem{Name: "x", Value: v, PaymentID: payment.ID}))
	}
	total, err = repo.RecalculateTotal(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(2500), total)

	stored, err := repo.GetByID(ctx, team.ID, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(2500), stored.Value)
}

func TestRepository_CreateAndDetails(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := New(db)
	team, _ := testutil.SeedTeam(t, db, "lions")
	u17 := testutil.SeedCategory(t, db, team.ID, "U17")
	ana := testutil.SeedAthlete(t, db, team.ID, "Ana", u17.ID)
	bia := testutil.SeedAthlete(t, db, team.ID, "Bia", u17.ID)

	payment := &model.Payment{Name: "Trip", DueDate: time.Now(), TeamID: team.ID, CategoryID: u17.ID}
	require.NoError(t, repo.Create(ctx, payment, []string{ana.UserID, bia.UserID}))
	require.NoError(t, repo.CreateItem(ctx, &model.PaymentItem{Name: "bus", Value: 3000, PaymentID: payment.ID}))

	got, err := repo.GetDetailed(ctx, team.ID, payment.ID)
	require.NoError(t, err)
	assert.Len(t, got.Users, 2)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, money.Amount(0), got.Value)

	_, err = repo.GetByID(ctx, "other-team", payment.ID)
	assert.ErrorIs(t, err, model.ErrPaymentNotFound)

	item, err := repo.GetItem(ctx, team.ID, got.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, item.PaymentID)
	_, err = repo.GetItem(ctx, "other-team", got.Items[0].ID)
	assert.ErrorIs(t, err, model.ErrPaymentItemNotFound)

	row, err := repo.GetPaymentUser(ctx, payment.ID, ana.UserID)
	require.NoError(t, err)
	assert.Nil(t, row.PaidAt)

	paidAt := time.Now().UTC()
	require.NoError(t, repo.MarkPaid(ctx, row, paidAt))
	assert.NotNil(t, row.PaidAt)

	mine, err := repo.ListForUser(ctx, team.ID, ana.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Paid)
	assert.Len(t, mine[0].Items, 1)

	theirs, err := repo.ListForUser(ctx, team.ID, bia.UserID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.False(t, theirs[0].Paid)

	none, err := repo.ListForUser(ctx, team.ID, "stranger")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_Finalize(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := New(db)
	team, _ := testutil.SeedTeam(t, db, "lions")
	u17 := testutil.SeedCategory(t, db, team.ID, "U17")
	payment := testutil.SeedPayment(t, db, team.ID, u17.ID, nil)

	require.NoError(t, repo.Finalize(ctx, payment.ID))
	assert.ErrorIs(t, repo.Finalize(ctx, payment.ID), model.ErrPaymentAlreadyFinalized)
}

func TestRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := New(db)
	team, _ := testutil.SeedTeam(t, db, "lions")
	u17 := testutil.SeedCategory(t, db, team.ID, "U17")
	ana := testutil.SeedAthlete(t, db, team.ID, "Ana", u17.ID)
	event := testutil.SeedEvent(t, db, team.ID, u17.ID, "match")
	payment := testutil.SeedPayment(t, db, team.ID, u17.ID, &event.ID, 1000, 2000)
	require.NoError(t, db.Create(&model.PaymentUser{PaymentID: payment.ID, UserID: ana.UserID}).Error)

	confirmation := eventModel.Confirmation{EventID: event.ID}
	require.NoError(t, db.Create(&confirmation).Error)
	for _, item := range payment.Items {
		require.NoError(t, db.Create(&eventModel.ConfirmationItem{
			PaymentItemID:  item.ID,
			ConfirmationID: confirmation.ID,
			UserID:         ana.UserID,
			Quantity:       1,
		}).Error)
	}

	t.Run("item", func(t *testing.T) {
		require.NoError(t, repo.DeleteItem(ctx, payment.Items[0].ID))
		var refs int64
		require.NoError(t, db.Model(&eventModel.ConfirmationItem{}).Count(&refs).Error)
		assert.Equal(t, int64(1), refs)
	})

	t.Run("payment", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, payment.ID))

		var items, users, refs int64
		require.NoError(t, db.Model(&model.PaymentItem{}).Count(&items).Error)
		require.NoError(t, db.Model(&model.PaymentUser{}).Count(&users).Error)
		require.NoError(t, db.Model(&eventModel.ConfirmationItem{}).Count(&refs).Error)
		assert.Zero(t, items)
		assert.Zero(t, users)
		assert.Zero(t, refs)

		var confirmations int64
		require.NoError(t, db.Model(&eventModel.Confirmation{}).Count(&confirmations).Error)
		assert.Equal(t, int64(1), confirmations)
	})
}
