package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/category/model"
	"github.com/squadboard/squadboard-api/internal/category/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, teamID string, req *model.CategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, teamID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, teamID, id string) (*model.Category, error) {
	args := m.Called(ctx, teamID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockService) List(ctx context.Context, teamID string) ([]model.Category, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, teamID, id string, req *model.CategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, teamID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, teamID, id string) error {
	args := m.Called(ctx, teamID, id)
	return args.Error(0)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetClaims(c, &auth.Claims{ID: "u1", Role: auth.RoleTeam, TeamID: "t1"})
	})

	h := New(svc, zap.NewNop().Sugar())
	r.POST("/category", h.Create)
	r.GET("/category", h.List)
	r.GET("/category/:id", h.Get)
	r.PATCH("/category/:id", h.Update)
	r.DELETE("/category/:id", h.Delete)
	return r
}

func perform(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)
		req := &model.CategoryRequest{Name: "U17"}
		mockSvc.On("Create", mock.Anything, "t1", req).
			Return(&model.Category{ID: "c1", Name: "U17", TeamID: "t1"}, nil)

		w := perform(r, http.MethodPost, "/category", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got model.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "c1", got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)

		w := perform(r, http.MethodPost, "/category", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"name is required"}`, w.Body.String())
		mockSvc.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate", func(t *testing.T) {
		mockSvc := new(mockService)
		r := setupRouter(mockSvc)
		mockSvc.On("Create", mock.Anything, "t1", mock.Anything).Return(nil, model.ErrCategoryExists)

		w := perform(r, http.MethodPost, "/category", &model.CategoryRequest{Name: "U17"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"message":"category with this name already exists"}`, w.Body.String())
	})
}

func TestHandler_GetAndList(t *testing.T) {
	mockSvc := new(mockService)
	r := setupRouter(mockSvc)
	mockSvc.On("List", mock.Anything, "t1").Return([]model.Category{{ID: "c1"}, {ID: "c2"}}, nil)
	mockSvc.On("Get", mock.Anything, "t1", "c1").Return(&model.Category{ID: "c1"}, nil)
	mockSvc.On("Get", mock.Anything, "t1", "nope").Return(nil, model.ErrCategoryNotFound)

	w := perform(r, http.MethodGet, "/category", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = perform(r, http.MethodGet, "/category/c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/category/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	mockSvc := new(mockService)
	r := setupRouter(mockSvc)
	req := &model.CategoryRequest{Name: "U18"}
	mockSvc.On("Update", mock.Anything, "t1", "c1", req).Return(&model.Category{ID: "c1", Name: "U18"}, nil)
	mockSvc.On("Delete", mock.Anything, "t1", "c1").Return(model.ErrCategoryInUse)
	mockSvc.On("Delete", mock.Anything, "t1", "c2").Return(nil)
	mockSvc.On("Delete", mock.Anything, "t1", "c3").Return(errors.New("db down"))

	w := perform(r, http.MethodPatch, "/category/c1", req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodDelete, "/category/c1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(r, http.MethodDelete, "/category/c2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodDelete, "/category/c3", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, w.Body.String())

	mockSvc.AssertExpectations(t)
}
