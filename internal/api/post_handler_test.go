package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/services"
	"github.com/becketto/xscheduler/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostService is a mock implementation of services.PostService
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) SchedulePosts(ctx context.Context, accountID int64, lines []string, intervalMinutes int) ([]domain.Post, error) {
	args := m.Called(ctx, accountID, lines, intervalMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, accountID int64) ([]domain.Post, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostService) GetCompletedPosts(ctx context.Context, accountID int64, page, pageSize int) ([]domain.Post, int64, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostService) DeletePost(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostService) ClearCompleted(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostService) GetQuotaStatus(ctx context.Context) (*services.QuotaStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuotaStatus), args.Error(1)
}

// MockCredentialService is a mock implementation of services.CredentialService
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) GetValidToken(ctx context.Context, accountID int64) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialService) Connect(ctx context.Context, accountID int64, code, codeVerifier, redirectURI string) (*domain.Credential, error) {
	args := m.Called(ctx, accountID, code, codeVerifier, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func newTestRouter(postService services.PostService, credentialService services.CredentialService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(postService, credentialService, nil, context.Background())

	router := gin.New()
	router.POST("/api/posts", handler.schedulePostsHandler)
	router.GET("/api/posts", handler.listPostsHandler)
	router.DELETE("/api/posts/:id", handler.deletePostHandler)
	router.POST("/api/posts/clear-completed", handler.clearCompletedHandler)
	router.GET("/api/quota", handler.getQuotaHandler)
	router.POST("/api/accounts/:id/credentials", handler.connectAccountHandler)
	return router
}

func TestSchedulePostsHandler_SplitsLines(t *testing.T) {
	mockService := new(MockPostService)
	mockService.On("SchedulePosts", mock.Anything, int64(1), []string{"first", "second"}, 30).Return([]domain.Post{
		{ID: 1, AccountID: 1, Content: "first", ScheduledFor: time.Now().Add(30 * time.Minute), Status: domain.StatusPending},
		{ID: 2, AccountID: 1, Content: "second", ScheduledFor: time.Now().Add(time.Hour), Status: domain.StatusPending},
	}, nil)

	router := newTestRouter(mockService, new(MockCredentialService))

	body, _ := json.Marshal(map[string]any{
		"accountId":       1,
		"posts":           "first\nsecond",
		"intervalMinutes": 30,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully scheduled 2 posts")
	mockService.AssertExpectations(t)
}

func TestSchedulePostsHandler_ValidationErrorIs400(t *testing.T) {
	mockService := new(MockPostService)
	mockService.On("SchedulePosts", mock.Anything, int64(1), mock.Anything, -5).
		Return(nil, types.NewDispatchError(types.Validation, "interval must be a positive number of minutes", nil))

	router := newTestRouter(mockService, new(MockCredentialService))

	body, _ := json.Marshal(map[string]any{
		"accountId":       1,
		"posts":           "hello",
		"intervalMinutes": -5,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "interval must be a positive number")
}

func TestDeletePostHandler_ProcessingIs409(t *testing.T) {
	mockService := new(MockPostService)
	mockService.On("DeletePost", mock.Anything, int64(3)).
		Return(types.NewDispatchError(types.Validation, "post is being published and cannot be deleted right now", nil))

	router := newTestRouter(mockService, new(MockCredentialService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeletePostHandler_NotFoundIs404(t *testing.T) {
	mockService := new(MockPostService)
	mockService.On("DeletePost", mock.Anything, int64(99)).Return(types.ErrNotFound)

	router := newTestRouter(mockService, new(MockCredentialService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuotaHandler(t *testing.T) {
	mockService := new(MockPostService)
	mockService.On("GetQuotaStatus", mock.Anything).Return(&services.QuotaStatus{
		MonthYear: "2026-08",
		Used:      42,
		Remaining: 458,
	}, nil)

	router := newTestRouter(mockService, new(MockCredentialService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quota", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(42), resp["used"])
	assert.Equal(t, float64(458), resp["remaining"])
}

func TestConnectAccountHandler(t *testing.T) {
	mockCreds := new(MockCredentialService)
	mockCreds.On("Connect", mock.Anything, int64(7), "the-code", "the-verifier", "http://localhost/callback").
		Return(&domain.Credential{AccountID: 7, ExpiresAt: time.Now().Add(2 * time.Hour)}, nil)

	router := newTestRouter(new(MockPostService), mockCreds)

	body, _ := json.Marshal(map[string]any{
		"code":         "the-code",
		"codeVerifier": "the-verifier",
		"redirectUri":  "http://localhost/callback",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/accounts/7/credentials", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCreds.AssertExpectations(t)
}

func TestClearCompletedHandler(t *testing.T) {
	mockService := new(MockPostService)
	mockService.On("ClearCompleted", mock.Anything, int64(1)).Return(int64(3), nil)

	router := newTestRouter(mockService, new(MockCredentialService))

	body, _ := json.Marshal(map[string]any{"accountId": 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/clear-completed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cleared":3`)
}
