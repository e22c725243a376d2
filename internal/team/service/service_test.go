package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/storage"
	teamModel "github.com/squadboard/squadboard-api/internal/team/model"
	"github.com/squadboard/squadboard-api/internal/team/repository"
	"github.com/squadboard/squadboard-api/internal/testutil"
	userModel "github.com/squadboard/squadboard-api/internal/user/model"
)

type fixture struct {
	db       *gorm.DB
	svc      Service
	tokens   *auth.TokenManager
	uploader *testutil.MemoryUploader
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret-0123456789", time.Hour)
	uploader := testutil.NewMemoryUploader()
	svc := New(repository.New(db), db, Deps{
		Tokens:     tokens,
		Uploader:   uploader,
		BcryptCost: bcrypt.MinCost,
	}, zap.NewNop().Sugar())
	return fixture{db: db, svc: svc, tokens: tokens, uploader: uploader}
}

func register(t *testing.T, svc Service, email string) *teamModel.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &teamModel.RegisterRequest{
		Name:     "Lions",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp := register(t, f.svc, "Coach@Lions.com")
	assert.Equal(t, "coach@lions.com", resp.Team.Email)
	assert.Equal(t, "coach", resp.User.Username)
	assert.Equal(t, auth.RoleTeam, resp.User.Role)
	assert.Equal(t, resp.Team.ID, resp.User.TeamID)

	claims, err := f.tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.ID)
	assert.Equal(t, resp.Team.ID, claims.TeamID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.svc.Register(ctx, &teamModel.RegisterRequest{Name: "X", Email: "coach@lions.com", Password: "secret123"})
		assert.ErrorIs(t, err, teamModel.ErrTeamExists)
	})

	t.Run("username collision rolls back the team", func(t *testing.T) {
		_, err := f.svc.Register(ctx, &teamModel.RegisterRequest{Name: "X", Email: "coach@tigers.com", Password: "secret123"})
		assert.ErrorIs(t, err, userModel.ErrUsernameTaken)

		var count int64
		require.NoError(t, f.db.Model(&teamModel.Team{}).Where("email = ?", "coach@tigers.com").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := f.svc.Register(ctx, &teamModel.RegisterRequest{Name: "X", Email: "a@b.com", Password: "123"})
		assert.ErrorIs(t, err, userModel.ErrWeakPassword)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := f.svc.Register(ctx, &teamModel.RegisterRequest{Name: " ", Email: "a@b.com", Password: "secret123"})
		assert.ErrorIs(t, err, teamModel.ErrInvalidTeamName)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	resp := register(t, f.svc, "coach@lions.com")

	name := "Lions FC"
	phone := " 123 "
	team, err := f.svc.Update(ctx, resp.Team.ID, &teamModel.UpdateTeamRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Lions FC", team.Name)
	assert.Equal(t, "123", team.Phone)
	assert.Equal(t, "coach@lions.com", team.Email)

	t.Run("empty patch returns team", func(t *testing.T) {
		team, err := f.svc.Update(ctx, resp.Team.ID, &teamModel.UpdateTeamRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Lions FC", team.Name)
	})

	t.Run("blank name", func(t *testing.T) {
		blank := ""
		_, err := f.svc.Update(ctx, resp.Team.ID, &teamModel.UpdateTeamRequest{Name: &blank})
		assert.ErrorIs(t, err, teamModel.ErrInvalidTeamName)
	})
}

func TestService_UpdateImage(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	resp := register(t, f.svc, "coach@lions.com")

	team, err := f.svc.UpdateImage(ctx, resp.Team.ID, "image/png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(team.ImageURL, "https://cdn.test/teams/"+resp.Team.ID+"/"))
	assert.Len(t, f.uploader.Objects, 1)

	t.Run("unsupported type", func(t *testing.T) {
		_, err := f.svc.UpdateImage(ctx, resp.Team.ID, "application/pdf", 4, strings.NewReader("%PDF"))
		assert.ErrorIs(t, err, storage.ErrUnsupportedType)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := f.svc.UpdateImage(ctx, "missing", "image/png", 4, strings.NewReader("x"))
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}
