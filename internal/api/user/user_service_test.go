package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

// MockUserRepo is a mock implementation of Repository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) ListUsers(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserRepo) ListUsersByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserRepo) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) CreateUser(ctx context.Context, u *types.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateUser(ctx context.Context, u *types.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepo) ListTouristProfiles(ctx context.Context) ([]types.TouristProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TouristProfile), args.Error(1)
}

func (m *MockUserRepo) GetTouristProfile(ctx context.Context, userID uuid.UUID) (*types.TouristProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TouristProfile), args.Error(1)
}

func (m *MockUserRepo) UpsertTouristProfile(ctx context.Context, p *types.TouristProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewServiceImpl(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		FirstName: "Ana",
		LastName:  "Costa",
		Username:  "AnaCosta",
		Email:     "Ana@Example.com",
		Password:  "s3cret-pass",
	}
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("All users", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("ListUsers", ctx).Return([]types.User{
			{ID: uuid.New(), Username: "ana", Role: types.RoleAdmin},
			{ID: uuid.New(), Username: "bruno", Role: types.RoleTourist},
		}, nil).Once()

		users, err := svc.ListUsers(ctx, "")

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "ana", users[0].Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Filtered by role", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("ListUsersByRole", ctx, types.RoleStudent).Return([]types.User{
			{ID: uuid.New(), Username: "carla", Role: types.RoleStudent},
		}, nil).Once()

		users, err := svc.ListUsers(ctx, "STUDENT")

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, types.RoleStudent, users[0].Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown role filter", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		_, err := svc.ListUsers(ctx, "WIZARD")

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "role")
		mockRepo.AssertNotCalled(t, "ListUsersByRole", mock.Anything, mock.Anything)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to tourist", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		var stored *types.User
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*types.User")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*types.User) }).
			Return(nil).Once()

		p, err := svc.CreateUser(ctx, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, types.RoleTourist, p.Role)
		assert.Equal(t, "anacosta", p.Username)
		assert.Equal(t, "ana@example.com", p.Email)
		assert.NotEqual(t, uuid.Nil, p.ID)
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Can provision another admin", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*types.User")).Return(nil).Once()

		req := validCreateRequest()
		req.Role = "ADMIN"
		p, err := svc.CreateUser(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, types.RoleAdmin, p.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing fields", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		_, err := svc.CreateUser(ctx, CreateUserRequest{})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "firstName")
		assert.Contains(t, vErr.Fields, "lastName")
		assert.Contains(t, vErr.Fields, "username")
		assert.Contains(t, vErr.Fields, "email")
		assert.Contains(t, vErr.Fields, "password")
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Unknown role", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		req := validCreateRequest()
		req.Role = "SUPERUSER"
		_, err := svc.CreateUser(ctx, req)

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "role")
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate username or email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*types.User")).Return(api.ErrConflict).Once()

		_, err := svc.CreateUser(ctx, validCreateRequest())

		assert.ErrorIs(t, err, api.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	validUpdate := func() UpdateUserRequest {
		return UpdateUserRequest{
			FirstName: "Ana",
			LastName:  "Costa",
			Email:     "ana@example.com",
			Role:      "BUSINESS_USER",
		}
	}

	t.Run("Promotes role and deactivates", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		existing := &types.User{ID: id, Username: "ana", Role: types.RoleTourist, Active: true}
		mockRepo.On("GetUser", ctx, id).Return(existing, nil).Once()
		mockRepo.On("UpdateUser", ctx, existing).Return(nil).Once()

		inactive := false
		req := validUpdate()
		req.Active = &inactive
		p, err := svc.UpdateUser(ctx, id, req)

		require.NoError(t, err)
		assert.Equal(t, types.RoleBusinessUser, p.Role)
		assert.False(t, p.Active)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown role", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		req := validUpdate()
		req.Role = "SUPERUSER"
		_, err := svc.UpdateUser(ctx, id, req)

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "role")
		mockRepo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("GetUser", ctx, id).Return(nil, api.ErrNotFound).Once()

		_, err := svc.UpdateUser(ctx, id, validUpdate())

		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockRepo := new(MockUserRepo)
	svc := newTestService(mockRepo)

	mockRepo.On("DeleteUser", ctx, id).Return(api.ErrNotFound).Once()

	assert.ErrorIs(t, svc.DeleteUser(ctx, id), api.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestSaveTouristProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Deduplicates interests preserving order", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("UpsertTouristProfile", ctx, mock.AnythingOfType("*types.TouristProfile")).Return(nil).Once()

		p, err := svc.SaveTouristProfile(ctx, userID, UpsertTouristProfileRequest{
			Nationality: " Portuguese ",
			Preferences: "quiet places",
			Interests:   []string{"museums", " hiking ", "museums", "", "hiking"},
		})

		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, "Portuguese", p.Nationality)
		assert.Equal(t, []string{"museums", "hiking"}, p.Interests)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newTestService(mockRepo)

		// The profile row references users; an upsert for a missing
		// account surfaces as not found.
		mockRepo.On("UpsertTouristProfile", ctx, mock.AnythingOfType("*types.TouristProfile")).
			Return(api.ErrNotFound).Once()

		_, err := svc.SaveTouristProfile(ctx, userID, UpsertTouristProfileRequest{})

		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}
