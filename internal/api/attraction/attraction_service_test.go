package attraction

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

// MockAttractionRepo is a mock implementation of Repository.
type MockAttractionRepo struct {
	mock.Mock
}

func (m *MockAttractionRepo) ListAttractions(ctx context.Context) ([]types.Attraction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

func (m *MockAttractionRepo) GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Attraction), args.Error(1)
}

func (m *MockAttractionRepo) ListAttractionsByCategory(ctx context.Context, category string) ([]types.Attraction, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

func (m *MockAttractionRepo) CreateAttraction(ctx context.Context, a *types.Attraction) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttractionRepo) UpdateAttraction(ctx context.Context, a *types.Attraction) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttractionRepo) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewServiceImpl(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListAttractionsCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("Second list is served from cache", func(t *testing.T) {
		mockRepo := new(MockAttractionRepo)
		svc := newTestService(mockRepo)

		attractions := []types.Attraction{{ID: uuid.New(), Name: "City Museum"}}
		mockRepo.On("ListAttractions", ctx).Return(attractions, nil).Once()

		first, err := svc.ListAttractions(ctx)
		require.NoError(t, err)
		second, err := svc.ListAttractions(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		mockRepo.AssertNumberOfCalls(t, "ListAttractions", 1)
	})

	t.Run("Write invalidates the cached list", func(t *testing.T) {
		mockRepo := new(MockAttractionRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("ListAttractions", ctx).Return([]types.Attraction{}, nil).Twice()
		mockRepo.On("CreateAttraction", ctx, mock.AnythingOfType("*types.Attraction")).Return(nil).Once()

		_, err := svc.ListAttractions(ctx)
		require.NoError(t, err)

		_, err = svc.CreateAttraction(ctx, UpsertAttractionRequest{Name: "Aquarium", Address: "2 Dock Rd"})
		require.NoError(t, err)

		_, err = svc.ListAttractions(ctx)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository failure is not cached", func(t *testing.T) {
		mockRepo := new(MockAttractionRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("ListAttractions", ctx).Return(nil, assert.AnError).Once()
		mockRepo.On("ListAttractions", ctx).Return([]types.Attraction{}, nil).Once()

		_, err := svc.ListAttractions(ctx)
		assert.Error(t, err)

		_, err = svc.ListAttractions(ctx)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateAttraction(t *testing.T) {
	ctx := context.Background()

	t.Run("Validation", func(t *testing.T) {
		mockRepo := new(MockAttractionRepo)
		svc := newTestService(mockRepo)

		_, err := svc.CreateAttraction(ctx, UpsertAttractionRequest{TicketPrice: -1})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "address")
		assert.Contains(t, vErr.Fields, "ticket_price")
		mockRepo.AssertNotCalled(t, "CreateAttraction", mock.Anything, mock.Anything)
	})

	t.Run("Success trims fields", func(t *testing.T) {
		mockRepo := new(MockAttractionRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateAttraction", ctx, mock.AnythingOfType("*types.Attraction")).Return(nil).Once()

		a, err := svc.CreateAttraction(ctx, UpsertAttractionRequest{
			Name:     "  Botanical Garden ",
			Address:  " 3 Park Ave ",
			Category: "park",
		})

		require.NoError(t, err)
		assert.Equal(t, "Botanical Garden", a.Name)
		assert.Equal(t, "3 Park Ave", a.Address)
		mockRepo.AssertExpectations(t)
	})
}
