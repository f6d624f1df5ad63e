package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tmendes/go-smartcity-services/internal/api"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, presented string) (*AuthResponse, error) {
	args := m.Called(ctx, presented)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, presented string) error {
	args := m.Called(ctx, presented)
	return args.Error(0)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		resp := &AuthResponse{AccessToken: "a", RefreshToken: "r", Username: "ada", Role: "TOURIST"}
		mockSvc.On("Register", mock.Anything, mock.AnythingOfType("auth.RegisterRequest")).Return(resp, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", jsonBody(t, RegisterRequest{
			FirstName: "Ada", LastName: "Lovelace", Username: "ada", Email: "ada@example.com", Password: "pw",
		}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var body AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ada", body.Username)
		assert.Equal(t, "a", body.AccessToken)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, api.ErrConflict).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", jsonBody(t, RegisterRequest{Username: "ada"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Validation error exposes field map", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		vErr := &api.ValidationError{Fields: map[string]string{"password": "Password is required"}}
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, vErr).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", jsonBody(t, RegisterRequest{Username: "ada"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "fields")
		mockSvc.AssertExpectations(t)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		resp := &AuthResponse{AccessToken: "a", RefreshToken: "r", Username: "ada", Role: "TOURIST"}
		mockSvc.On("Login", mock.Anything, LoginRequest{Username: "ada", Password: "pw"}).Return(resp, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, LoginRequest{Username: "ada", Password: "pw"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Bad credentials", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		mockSvc.On("Login", mock.Anything, mock.Anything).Return(nil, api.ErrUnauthenticated).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, LoginRequest{Username: "ada", Password: "nope"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		resp := &AuthResponse{AccessToken: "a2", RefreshToken: "r2", Username: "ada", Role: "TOURIST"}
		mockSvc.On("RefreshToken", mock.Anything, "old-token").Return(resp, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", jsonBody(t, RefreshTokenRequest{RefreshToken: "old-token"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "r2", body.RefreshToken)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Empty token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", jsonBody(t, RefreshTokenRequest{}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "RefreshToken", mock.Anything, mock.Anything)
	})

	t.Run("Rejected token collapses to 401", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		mockSvc.On("RefreshToken", mock.Anything, "stale").Return(nil, api.ErrInvalidToken).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", jsonBody(t, RefreshTokenRequest{RefreshToken: "stale"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Vanished subject is also 401", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		mockSvc.On("RefreshToken", mock.Anything, "stale").Return(nil, api.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", jsonBody(t, RefreshTokenRequest{RefreshToken: "stale"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		mockSvc.On("Logout", mock.Anything, "the-token").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer the-token")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Logged out successfully", body.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing header", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("Wrong scheme", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("Invalid token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc, discardLogger())

		mockSvc.On("Logout", mock.Anything, "stale").Return(api.ErrInvalidToken).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}
