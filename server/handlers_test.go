package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"debatearena/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPlatformService struct {
	mock.Mock
}

func (m *mockPlatformService) Initialize(ctx context.Context, authorityID, treasuryID, feeBps int64) (*models.Platform, error) {
	args := m.Called(ctx, authorityID, treasuryID, feeBps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Platform), args.Error(1)
}

func (m *mockPlatformService) Get(ctx context.Context) (*models.Platform, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Platform), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) RegisterUser(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) RegisterAgent(ctx context.Context, ownerID int64, name string, endpointHash []byte) (*models.Agent, error) {
	args := m.Called(ctx, ownerID, name, endpointHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *mockUserService) UpdateAgentRating(ctx context.Context, callerID, agentID int64, newRating int32, won bool) error {
	args := m.Called(ctx, callerID, agentID, newRating, won)
	return args.Error(0)
}

func (m *mockUserService) GetLedger(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestInitializePlatform_DefaultFee(t *testing.T) {
	platforms := new(mockPlatformService)
	handler := NewHandler(platforms, nil, nil, nil, nil)
	router := setupTestRouter(handler)

	// fee_bps omitted, the configured default applies
	platforms.On("Initialize", mock.Anything, int64(1), int64(2), int64(250)).
		Return(&models.Platform{ID: 1, AuthorityID: 1, TreasuryID: 2, FeeBps: 250}, nil)

	body := `{"authority_id": 1, "treasury_id": 2}`
	req := httptest.NewRequest(http.MethodPost, "/api/platform/initialize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	platforms.AssertExpectations(t)
}

func TestInitializePlatform_ExplicitFee(t *testing.T) {
	platforms := new(mockPlatformService)
	handler := NewHandler(platforms, nil, nil, nil, nil)
	router := setupTestRouter(handler)

	platforms.On("Initialize", mock.Anything, int64(1), int64(2), int64(500)).
		Return(&models.Platform{ID: 1, AuthorityID: 1, TreasuryID: 2, FeeBps: 500}, nil)

	body := `{"authority_id": 1, "treasury_id": 2, "fee_bps": 500}`
	req := httptest.NewRequest(http.MethodPost, "/api/platform/initialize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	platforms.AssertExpectations(t)
}

func TestInitializePlatform_ZeroFee(t *testing.T) {
	platforms := new(mockPlatformService)
	handler := NewHandler(platforms, nil, nil, nil, nil)
	router := setupTestRouter(handler)

	// An explicit zero must not fall back to the default
	platforms.On("Initialize", mock.Anything, int64(1), int64(2), int64(0)).
		Return(&models.Platform{ID: 1, AuthorityID: 1, TreasuryID: 2, FeeBps: 0}, nil)

	body := `{"authority_id": 1, "treasury_id": 2, "fee_bps": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/platform/initialize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	platforms.AssertExpectations(t)
}

func TestGetUserLedger_InvalidLimit(t *testing.T) {
	users := new(mockUserService)
	handler := NewHandler(nil, users, nil, nil, nil)
	router := setupTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/users/7/ledger?limit=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "GetLedger")
}

func TestGetUserLedger_DefaultLimit(t *testing.T) {
	users := new(mockUserService)
	handler := NewHandler(nil, users, nil, nil, nil)
	router := setupTestRouter(handler)

	users.On("GetLedger", mock.Anything, int64(7), 50).
		Return([]*models.LedgerEntry{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/7/ledger", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	users.AssertExpectations(t)
}
