package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withAuthResult(ctx context.Context, result AuthResult) context.Context {
	return context.WithValue(ctx, authResultKey, result)
}

// captureHandler records the gate outcome the inner handler observed.
func captureHandler(result *AuthResult, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*result = ResultFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	issuer := testTokenIssuer()
	publicPrefixes := []string{"/api/v1/auth/", "/ping"}

	t.Run("No header passes through anonymous", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, StateAnonymous, result.State)
		mockRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Public prefix skips the gate", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		gate.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Equal(t, StateAnonymous, result.State)
		mockRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Valid token resolves identity", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		user := testUser(t, "pw")
		signed, err := issuer.IssueAccessToken(user)
		require.NoError(t, err)
		mockRepo.On("GetUserByUsername", mock.Anything, "ada").Return(user, nil).Once()

		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		gate.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Equal(t, StateAuthenticated, result.State)
		require.NotNil(t, result.User)
		assert.Equal(t, "ada", result.User.Username)
		assert.Equal(t, types.RoleTourist, result.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Malformed token fails open", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		// The gate never writes a response; the handler still ran.
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, StateMalformed, result.State)
	})

	t.Run("Non-bearer scheme reads as anonymous", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		gate.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Equal(t, StateAnonymous, result.State)
	})

	t.Run("Deactivated subject is ignored", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		user := testUser(t, "pw")
		signed, err := issuer.IssueAccessToken(user)
		require.NoError(t, err)
		user.Active = false
		mockRepo.On("GetUserByUsername", mock.Anything, "ada").Return(user, nil).Once()

		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		gate.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Equal(t, StateMalformed, result.State)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown subject is ignored", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		user := testUser(t, "pw")
		signed, err := issuer.IssueAccessToken(user)
		require.NoError(t, err)
		mockRepo.On("GetUserByUsername", mock.Anything, "ada").Return(nil, api.ErrNotFound).Once()

		var result AuthResult
		var called bool
		gate := Authenticate(mockRepo, issuer, publicPrefixes, discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		gate.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Equal(t, StateMalformed, result.State)
		mockRepo.AssertExpectations(t)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("Authenticated passes", func(t *testing.T) {
		var result AuthResult
		var called bool
		handler := RequireAuth(discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req = req.WithContext(withAuthResult(req.Context(), AuthResult{
			State: StateAuthenticated, User: &types.User{Username: "ada"}, Role: types.RoleTourist,
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Anonymous gets 401", func(t *testing.T) {
		var result AuthResult
		var called bool
		handler := RequireAuth(discardLogger())(captureHandler(&result, &called))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Malformed gets 401", func(t *testing.T) {
		var result AuthResult
		var called bool
		handler := RequireAuth(discardLogger())(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil)
		req = req.WithContext(withAuthResult(req.Context(), AuthResult{State: StateMalformed}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("Allowed role passes", func(t *testing.T) {
		var result AuthResult
		var called bool
		handler := RequireRole(discardLogger(), types.RoleTourist, types.RoleAdmin)(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/hotel-bookings", nil)
		req = req.WithContext(withAuthResult(req.Context(), AuthResult{
			State: StateAuthenticated, User: &types.User{Username: "ada"}, Role: types.RoleTourist,
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Wrong role gets 403", func(t *testing.T) {
		var result AuthResult
		var called bool
		handler := RequireRole(discardLogger(), types.RoleTourist)(captureHandler(&result, &called))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/hotel-bookings", nil)
		req = req.WithContext(withAuthResult(req.Context(), AuthResult{
			State: StateAuthenticated, User: &types.User{Username: "bob"}, Role: types.RoleStudent,
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Anonymous gets 401 not 403", func(t *testing.T) {
		var result AuthResult
		var called bool
		handler := RequireRole(discardLogger(), types.RoleTourist)(captureHandler(&result, &called))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/hotel-bookings", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
