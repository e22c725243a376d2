package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	categoryModel "github.com/squadboard/squadboard-api/internal/category/model"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/testutil"
	"github.com/squadboard/squadboard-api/internal/user/model"
	"github.com/squadboard/squadboard-api/internal/user/repository"
)

type fixture struct {
	db     *gorm.DB
	svc    Service
	tokens *auth.TokenManager
	teamID string
	owner  *model.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret-0123456789", time.Hour)
	svc := New(repository.New(db), categoryRepository.New(db), db, tokens, bcrypt.MinCost, zap.NewNop().Sugar())
	team, owner := testutil.SeedTeam(t, db, "lions")
	return fixture{db: db, svc: svc, tokens: tokens, teamID: team.ID, owner: owner}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Login(ctx, &model.LoginRequest{Username: " LIONS ", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, resp.User.ID)

	claims, err := f.tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTeam, claims.Role)
	assert.Equal(t, f.teamID, claims.TeamID)

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, &model.LoginRequest{Username: "lions", Password: "nope"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown user looks the same", func(t *testing.T) {
		_, err := f.svc.Login(ctx, &model.LoginRequest{Username: "ghost", Password: "nope"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	err := f.svc.ChangePassword(ctx, f.owner.ID, &model.ChangePasswordRequest{
		CurrentPassword: testutil.Password,
		NewPassword:     "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &model.LoginRequest{Username: "lions", Password: "brand-new-pass"})
	assert.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := f.svc.ChangePassword(ctx, f.owner.ID, &model.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "another-pass",
		})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := f.svc.ChangePassword(ctx, f.owner.ID, &model.ChangePasswordRequest{
			CurrentPassword: "brand-new-pass",
			NewPassword:     "123",
		})
		assert.ErrorIs(t, err, model.ErrWeakPassword)
	})
}

func TestService_Managers(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u17 := testutil.SeedCategory(t, f.db, f.teamID, "U17")

	manager, err := f.svc.CreateManager(ctx, f.teamID, &model.CreateManagerRequest{
		Name:        "Coach Carter",
		Email:       "carter@example.com",
		Password:    "secret123",
		CategoryIDs: []string{u17.ID, u17.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{u17.ID}, manager.CategoryIDs)

	resp, err := f.svc.Login(ctx, &model.LoginRequest{Username: "carter", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleManager, resp.User.Role)

	me, err := f.svc.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, me.Manager)
	assert.Equal(t, manager.ID, me.Manager.ID)

	list, err := f.svc.ListManagers(ctx, f.teamID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.svc.CreateManager(ctx, f.teamID, &model.CreateManagerRequest{
			Name: "X", Phone: "999", Password: "secret123", CategoryIDs: []string{"missing"},
		})
		assert.ErrorIs(t, err, categoryModel.ErrCategoryNotFound)
	})

	t.Run("no contact", func(t *testing.T) {
		_, err := f.svc.CreateManager(ctx, f.teamID, &model.CreateManagerRequest{Name: "X", Password: "secret123"})
		assert.ErrorIs(t, err, model.ErrMissingContact)
	})

	t.Run("username taken rolls back", func(t *testing.T) {
		_, err := f.svc.CreateManager(ctx, f.teamID, &model.CreateManagerRequest{
			Name: "Other", Email: "carter@other.com", Password: "secret123",
		})
		assert.ErrorIs(t, err, model.ErrUsernameTaken)

		list, err := f.svc.ListManagers(ctx, f.teamID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteManager(ctx, f.teamID, manager.ID))
		_, err := f.svc.GetManager(ctx, f.teamID, manager.ID)
		assert.ErrorIs(t, err, model.ErrManagerNotFound)

		_, err = f.svc.Login(ctx, &model.LoginRequest{Username: "carter", Password: "secret123"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("delete from another team", func(t *testing.T) {
		other := testutil.SeedManager(t, f.db, f.teamID, "kept")
		err := f.svc.DeleteManager(ctx, "other-team", other.ID)
		assert.ErrorIs(t, err, model.ErrManagerNotFound)
	})
}

func TestService_MeForTeamAccount(t *testing.T) {
	f := setup(t)
	me, err := f.svc.Me(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Nil(t, me.Manager)
	assert.Equal(t, "lions", me.User.Username)
}
