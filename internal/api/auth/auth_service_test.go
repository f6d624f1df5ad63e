package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmendes/go-smartcity-services/config"
	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

// MockAuthRepo is a mock implementation of AuthRepo.
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockAuthRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthRepo) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, user *types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAuthRepo) SetRefreshToken(ctx context.Context, userID uuid.UUID, token string, lastLogin time.Time) error {
	args := m.Called(ctx, userID, token, lastLogin)
	return args.Error(0)
}

func (m *MockAuthRepo) RotateRefreshToken(ctx context.Context, userID uuid.UUID, presented, next string) error {
	args := m.Called(ctx, userID, presented, next)
	return args.Error(0)
}

func (m *MockAuthRepo) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testTokenIssuer() *TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{
		SecretKey:        "test-access-secret",
		RefreshSecretKey: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		Issuer:           "go-smartcity-services",
		Audience:         "smartcity-api",
	})
}

func testUser(t *testing.T, password string) *types.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &types.User{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  string(hashed),
		Role:      types.RoleTourist,
		Active:    true,
	}
}

func newTestService(repo AuthRepo) *AuthServiceImpl {
	return NewAuthService(repo, testTokenIssuer(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "Ada",
		Email:     "Ada@Example.com",
		Password:  "correct horse",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - default role", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UsernameExists", ctx, "ada").Return(false, nil).Once()
		mockRepo.On("EmailExists", ctx, "ada@example.com").Return(false, nil).Once()
		mockRepo.On("CountUsers", ctx).Return(int64(3), nil).Once()
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*types.User")).Return(nil).Once()

		resp, err := svc.Register(ctx, validRegisterRequest())

		require.NoError(t, err)
		assert.Equal(t, "ada", resp.Username)
		assert.Equal(t, types.RoleTourist.String(), resp.Role)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("First user becomes ADMIN", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UsernameExists", ctx, "ada").Return(false, nil).Once()
		mockRepo.On("EmailExists", ctx, "ada@example.com").Return(false, nil).Once()
		mockRepo.On("CountUsers", ctx).Return(int64(0), nil).Once()

		var created *types.User
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*types.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*types.User)
			}).
			Return(nil).Once()

		req := validRegisterRequest()
		req.Role = types.RoleStudent.String() // requested role is overridden
		resp, err := svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, types.RoleAdmin.String(), resp.Role)
		require.NotNil(t, created)
		assert.Equal(t, types.RoleAdmin, created.Role)
		require.NotNil(t, created.RefreshToken)
		assert.Equal(t, resp.RefreshToken, *created.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ADMIN request rejected after bootstrap", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UsernameExists", ctx, "ada").Return(false, nil).Once()
		mockRepo.On("EmailExists", ctx, "ada@example.com").Return(false, nil).Once()
		mockRepo.On("CountUsers", ctx).Return(int64(1), nil).Once()

		req := validRegisterRequest()
		req.Role = types.RoleAdmin.String()
		resp, err := svc.Register(ctx, req)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, api.ErrForbidden)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown role rejected", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UsernameExists", ctx, "ada").Return(false, nil).Once()
		mockRepo.On("EmailExists", ctx, "ada@example.com").Return(false, nil).Once()
		mockRepo.On("CountUsers", ctx).Return(int64(1), nil).Once()

		req := validRegisterRequest()
		req.Role = "WIZARD"
		_, err := svc.Register(ctx, req)

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "role")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Username taken", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UsernameExists", ctx, "ada").Return(true, nil).Once()

		resp, err := svc.Register(ctx, validRegisterRequest())

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, api.ErrConflict)
		mockRepo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Email registered", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UsernameExists", ctx, "ada").Return(false, nil).Once()
		mockRepo.On("EmailExists", ctx, "ada@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, validRegisterRequest())

		assert.ErrorIs(t, err, api.ErrConflict)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing fields collected into one validation error", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		_, err := svc.Register(ctx, RegisterRequest{FirstName: "Ada"})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Fields, 4)
		assert.Contains(t, vErr.Fields, "lastName")
		assert.Contains(t, vErr.Fields, "username")
		assert.Contains(t, vErr.Fields, "email")
		assert.Contains(t, vErr.Fields, "password")
		mockRepo.AssertNotCalled(t, "UsernameExists", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()
		mockRepo.On("SetRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		resp, err := svc.Login(ctx, LoginRequest{Username: " Ada ", Password: "correct horse"})

		require.NoError(t, err)
		assert.Equal(t, "ada", resp.Username)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("GetUserByUsername", ctx, "ghost").Return(nil, api.ErrNotFound).Once()

		resp, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, api.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong password yields same error as unknown user", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()

		_, err := svc.Login(ctx, LoginRequest{Username: "ada", Password: "wrong"})

		assert.ErrorIs(t, err, api.ErrUnauthenticated)
		mockRepo.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Deactivated account", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")
		user.Active = false

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()

		_, err := svc.Login(ctx, LoginRequest{Username: "ada", Password: "correct horse"})

		assert.ErrorIs(t, err, api.ErrAccountDeactivated)
		mockRepo.AssertExpectations(t)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success rotates via compare-and-swap", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)
		user.RefreshToken = &presented

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()
		mockRepo.On("RotateRefreshToken", ctx, user.ID, presented, mock.AnythingOfType("string")).
			Return(nil).Once()

		resp, err := svc.RefreshToken(ctx, presented)

		require.NoError(t, err)
		assert.Equal(t, "ada", resp.Username)
		assert.NotEqual(t, presented, resp.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rotated-out token is rejected", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)
		stored := "some-other-token"
		user.RefreshToken = &stored

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()

		_, err = svc.RefreshToken(ctx, presented)

		assert.ErrorIs(t, err, api.ErrInvalidToken)
		mockRepo.AssertNotCalled(t, "RotateRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No stored token is rejected", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)
		user.RefreshToken = nil

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()

		_, err = svc.RefreshToken(ctx, presented)

		assert.ErrorIs(t, err, api.ErrInvalidToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Garbage token", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		_, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, api.ErrInvalidToken)
		mockRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Subject no longer exists", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(nil, api.ErrNotFound).Once()

		_, err = svc.RefreshToken(ctx, presented)

		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)

		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()
		mockRepo.On("ClearRefreshToken", ctx, user.ID).Return(nil).Once()

		assert.NoError(t, svc.Logout(ctx, presented))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Idempotent - already cleared", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")
		user.RefreshToken = nil

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)

		// The stored token is not consulted: clearing twice succeeds.
		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Twice()
		mockRepo.On("ClearRefreshToken", ctx, user.ID).Return(nil).Twice()

		assert.NoError(t, svc.Logout(ctx, presented))
		assert.NoError(t, svc.Logout(ctx, presented))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Garbage token", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)

		err := svc.Logout(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, api.ErrInvalidToken)
		mockRepo.AssertNotCalled(t, "ClearRefreshToken", mock.Anything, mock.Anything)
	})

	t.Run("Repository failure surfaces", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		svc := newTestService(mockRepo)
		user := testUser(t, "correct horse")

		presented, err := svc.tokens.IssueRefreshToken(user)
		require.NoError(t, err)

		dbErr := errors.New("connection reset")
		mockRepo.On("GetUserByUsername", ctx, "ada").Return(user, nil).Once()
		mockRepo.On("ClearRefreshToken", ctx, user.ID).Return(dbErr).Once()

		assert.ErrorIs(t, svc.Logout(ctx, presented), dbErr)
		mockRepo.AssertExpectations(t)
	})
}
