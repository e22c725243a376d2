package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/athlete/model"
	"github.com/squadboard/squadboard-api/internal/athlete/repository"
	"github.com/squadboard/squadboard-api/internal/auth"
	categoryModel "github.com/squadboard/squadboard-api/internal/category/model"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/storage"
	"github.com/squadboard/squadboard-api/internal/testutil"
	userModel "github.com/squadboard/squadboard-api/internal/user/model"
)

type fixture struct {
	db       *gorm.DB
	svc      Service
	uploader *testutil.MemoryUploader
	teamID   string
	u17      string
	u20      string
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	uploader := testutil.NewMemoryUploader()
	svc := New(
		repository.New(db),
		categoryRepository.New(db),
		db,
		Deps{Uploader: uploader, BcryptCost: bcrypt.MinCost},
		zap.NewNop().Sugar(),
	)
	team, _ := testutil.SeedTeam(t, db, "lions")
	return fixture{
		db:       db,
		svc:      svc,
		uploader: uploader,
		teamID:   team.ID,
		u17:      testutil.SeedCategory(t, db, team.ID, "U17").ID,
		u20:      testutil.SeedCategory(t, db, team.ID, "U20").ID,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	shirt := 10

	athlete, err := f.svc.Create(ctx, f.teamID, &model.CreateAthleteRequest{
		Name:        "  Ana  ",
		Phone:       "(11) 91234-5678",
		Password:    "secret123",
		ShirtNumber: &shirt,
		CategoryIDs: []string{f.u17, f.u17},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", athlete.Name)
	assert.Equal(t, []string{f.u17}, athlete.CategoryIDs)

	var user userModel.User
	require.NoError(t, f.db.First(&user, "id = ?", athlete.UserID).Error)
	assert.Equal(t, "11912345678", user.Username)
	assert.Equal(t, auth.RoleAthlete, user.Role)
	assert.Equal(t, f.teamID, user.TeamID)

	tests := []struct {
		name    string
		req     *model.CreateAthleteRequest
		wantErr error
	}{
		{
			name:    "blank name",
			req:     &model.CreateAthleteRequest{Name: " ", Email: "x@example.com", Password: "secret123"},
			wantErr: model.ErrInvalidAthleteName,
		},
		{
			name:    "short password",
			req:     &model.CreateAthleteRequest{Name: "Bia", Email: "bia@example.com", Password: "123"},
			wantErr: userModel.ErrWeakPassword,
		},
		{
			name:    "no contact",
			req:     &model.CreateAthleteRequest{Name: "Bia", Password: "secret123"},
			wantErr: userModel.ErrMissingContact,
		},
		{
			name: "category of another team",
			req: &model.CreateAthleteRequest{
				Name: "Bia", Email: "bia@example.com", Password: "secret123", CategoryIDs: []string{"missing"},
			},
			wantErr: categoryModel.ErrCategoryNotFound,
		},
		{
			name:    "phone already used",
			req:     &model.CreateAthleteRequest{Name: "Clone", Phone: "11912345678", Password: "secret123"},
			wantErr: userModel.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.teamID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := f.svc.List(ctx, f.teamID, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	ana := testutil.SeedAthlete(t, f.db, f.teamID, "Ana", f.u17)

	position := "striker"
	categories := []string{f.u20}
	got, err := f.svc.Update(ctx, f.teamID, ana.ID, &model.UpdateAthleteRequest{
		Position:    &position,
		CategoryIDs: &categories,
	})
	require.NoError(t, err)
	assert.Equal(t, "striker", got.Position)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, []string{f.u20}, got.CategoryIDs)

	t.Run("nil categories keep the set", func(t *testing.T) {
		name := "Ana Maria"
		got, err := f.svc.Update(ctx, f.teamID, ana.ID, &model.UpdateAthleteRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, []string{f.u20}, got.CategoryIDs)
	})

	t.Run("empty categories clear the set", func(t *testing.T) {
		none := []string{}
		got, err := f.svc.Update(ctx, f.teamID, ana.ID, &model.UpdateAthleteRequest{CategoryIDs: &none})
		require.NoError(t, err)
		assert.Empty(t, got.CategoryIDs)
	})

	t.Run("blank name", func(t *testing.T) {
		blank := ""
		_, err := f.svc.Update(ctx, f.teamID, ana.ID, &model.UpdateAthleteRequest{Name: &blank})
		assert.ErrorIs(t, err, model.ErrInvalidAthleteName)
	})

	t.Run("unknown category leaves profile untouched", func(t *testing.T) {
		bad := []string{"missing"}
		pos := "defender"
		_, err := f.svc.Update(ctx, f.teamID, ana.ID, &model.UpdateAthleteRequest{Position: &pos, CategoryIDs: &bad})
		assert.ErrorIs(t, err, categoryModel.ErrCategoryNotFound)

		got, err := f.svc.Get(ctx, f.teamID, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "striker", got.Position)
	})

	t.Run("other team", func(t *testing.T) {
		_, err := f.svc.Update(ctx, "other", ana.ID, &model.UpdateAthleteRequest{})
		assert.ErrorIs(t, err, model.ErrAthleteNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	ana := testutil.SeedAthlete(t, f.db, f.teamID, "Ana", f.u17)

	assert.ErrorIs(t, f.svc.Delete(ctx, "other", ana.ID), model.ErrAthleteNotFound)
	require.NoError(t, f.svc.Delete(ctx, f.teamID, ana.ID))

	_, err := f.svc.Get(ctx, f.teamID, ana.ID)
	assert.ErrorIs(t, err, model.ErrAthleteNotFound)

	var users int64
	require.NoError(t, f.db.Model(&userModel.User{}).Where("id = ?", ana.UserID).Count(&users).Error)
	assert.Zero(t, users)
}

func TestService_UpdateImage(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	ana := testutil.SeedAthlete(t, f.db, f.teamID, "Ana")

	got, err := f.svc.UpdateImage(ctx, f.teamID, ana.ID, "image/jpeg", 3, strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.ImageURL, "https://cdn.test/athletes/"+ana.ID+"/"))
	assert.Len(t, f.uploader.Objects, 1)

	t.Run("too large", func(t *testing.T) {
		_, err := f.svc.UpdateImage(ctx, f.teamID, ana.ID, "image/png", storage.MaxImageSize+1, strings.NewReader("x"))
		assert.ErrorIs(t, err, storage.ErrTooLarge)
	})

	t.Run("unknown athlete uploads nothing", func(t *testing.T) {
		_, err := f.svc.UpdateImage(ctx, f.teamID, "missing", "image/png", 1, strings.NewReader("x"))
		assert.ErrorIs(t, err, model.ErrAthleteNotFound)
		assert.Len(t, f.uploader.Objects, 1)
	})
}
