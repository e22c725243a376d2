package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/storage"
	teamModel "github.com/squadboard/squadboard-api/internal/team/model"
	"github.com/squadboard/squadboard-api/internal/team/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req *teamModel.RegisterRequest) (*teamModel.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.RegisterResponse), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, teamID string) (*teamModel.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, teamID string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	args := m.Called(ctx, teamID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockService) UpdateImage(ctx context.Context, teamID, contentType string, size int64, body io.Reader) (*teamModel.Team, error) {
	args := m.Called(ctx, teamID, contentType, size, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(svc, zap.NewNop().Sugar())

	r.POST("/team/register", h.Register)
	authed := r.Group("/team", func(c *gin.Context) {
		auth.SetClaims(c, &auth.Claims{ID: "u1", Role: auth.RoleTeam, TeamID: "t1"})
	})
	authed.GET("", h.Get)
	authed.PATCH("", h.Update)
	authed.PUT("/image", h.UpdateImage)
	return r
}

func TestHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)
		req := &teamModel.RegisterRequest{Name: "Lions", Email: "coach@lions.com", Password: "secret123"}
		mockSvc.On("Register", mock.Anything, req).Return(&teamModel.RegisterResponse{
			Token: "tok",
			Team:  &teamModel.Team{ID: "t1", Name: "Lions"},
		}, nil)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest(http.MethodPost, "/team/register", bytes.NewReader(body))
		httpReq.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "tok", resp["token"])
		assert.NotContains(t, w.Body.String(), "password")
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)

		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest(http.MethodPost, "/team/register",
			bytes.NewBufferString(`{"name":"Lions","email":"not-an-email","password":"secret123"}`))
		httpReq.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "Register")
	})

	t.Run("conflict", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, teamModel.ErrTeamExists)

		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest(http.MethodPost, "/team/register",
			bytes.NewBufferString(`{"name":"Lions","email":"coach@lions.com","password":"secret123"}`))
		httpReq.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"message":"team with this email already exists"}`, w.Body.String())
	})
}

func TestHandler_GetAndUpdate(t *testing.T) {
	mockSvc := new(mockService)
	r := setupRouter(mockSvc)
	name := "Lions FC"
	mockSvc.On("Get", mock.Anything, "t1").Return(&teamModel.Team{ID: "t1", Name: "Lions"}, nil)
	mockSvc.On("Update", mock.Anything, "t1", &teamModel.UpdateTeamRequest{Name: &name}).
		Return(&teamModel.Team{ID: "t1", Name: name}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/team", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/team", bytes.NewBufferString(`{"name":"Lions FC"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Lions FC"`)

	mockSvc.AssertExpectations(t)
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="logo.png"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandler_UpdateImage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)
		mockSvc.On("UpdateImage", mock.Anything, "t1", "image/png", int64(4), mock.Anything).
			Return(&teamModel.Team{ID: "t1", ImageURL: "https://cdn.test/teams/t1/a.png"}, nil)

		body, ct := multipartImage(t, "image/png", []byte("\x89PNG"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/team/image", body)
		req.Header.Set("Content-Type", ct)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"image":"https://cdn.test/teams/t1/a.png"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/team/image", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage disabled", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)
		mockSvc.On("UpdateImage", mock.Anything, "t1", "image/png", int64(1), mock.Anything).
			Return(nil, storage.ErrDisabled)

		body, ct := multipartImage(t, "image/png", []byte("x"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/team/image", body)
		req.Header.Set("Content-Type", ct)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
