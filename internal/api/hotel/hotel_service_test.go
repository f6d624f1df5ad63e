package hotel

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

// MockHotelRepo is a mock implementation of Repository.
type MockHotelRepo struct {
	mock.Mock
}

func (m *MockHotelRepo) ListHotels(ctx context.Context) ([]types.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Hotel), args.Error(1)
}

func (m *MockHotelRepo) GetHotel(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Hotel), args.Error(1)
}

func (m *MockHotelRepo) SearchHotelsByName(ctx context.Context, name string) ([]types.Hotel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Hotel), args.Error(1)
}

func (m *MockHotelRepo) CreateHotel(ctx context.Context, h *types.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepo) UpdateHotel(ctx context.Context, h *types.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepo) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewServiceImpl(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validUpsertRequest() UpsertHotelRequest {
	return UpsertHotelRequest{
		Name:          "Grand Plaza",
		Address:       "1 Main St",
		StarRating:    4,
		MinPrice:      80,
		MaxPrice:      250,
		StartingPrice: 95,
	}
}

func TestCreateHotel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateHotel", ctx, mock.AnythingOfType("*types.Hotel")).Return(nil).Once()

		h, err := svc.CreateHotel(ctx, validUpsertRequest())

		require.NoError(t, err)
		assert.Equal(t, "Grand Plaza", h.Name)
		assert.True(t, h.Active)
		assert.NotEqual(t, uuid.Nil, h.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing name and address", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		_, err := svc.CreateHotel(ctx, UpsertHotelRequest{StarRating: 3})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "address")
		mockRepo.AssertNotCalled(t, "CreateHotel", mock.Anything, mock.Anything)
	})

	t.Run("Star rating out of range", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		req := validUpsertRequest()
		req.StarRating = 6
		_, err := svc.CreateHotel(ctx, req)

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "star_rating")
	})

	t.Run("Inverted price range", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		req := validUpsertRequest()
		req.MinPrice = 300
		req.MaxPrice = 100
		_, err := svc.CreateHotel(ctx, req)

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "max_price")
	})
}

func TestUpdateHotel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		existing := &types.Hotel{ID: id, Name: "Old Name", Active: true}
		mockRepo.On("GetHotel", ctx, id).Return(existing, nil).Once()
		mockRepo.On("UpdateHotel", ctx, existing).Return(nil).Once()

		h, err := svc.UpdateHotel(ctx, id, validUpsertRequest())

		require.NoError(t, err)
		assert.Equal(t, "Grand Plaza", h.Name)
		assert.True(t, h.Active)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Deactivate via pointer flag", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		existing := &types.Hotel{ID: id, Name: "Old Name", Active: true}
		mockRepo.On("GetHotel", ctx, id).Return(existing, nil).Once()
		mockRepo.On("UpdateHotel", ctx, existing).Return(nil).Once()

		inactive := false
		req := validUpsertRequest()
		req.Active = &inactive
		h, err := svc.UpdateHotel(ctx, id, req)

		require.NoError(t, err)
		assert.False(t, h.Active)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown hotel", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("GetHotel", ctx, id).Return(nil, api.ErrNotFound).Once()

		_, err := svc.UpdateHotel(ctx, id, validUpsertRequest())

		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertNotCalled(t, "UpdateHotel", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestSearchHotels(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockHotelRepo)
	svc := newTestService(mockRepo)

	// Search input is trimmed before hitting the repository.
	mockRepo.On("SearchHotelsByName", ctx, "plaza").Return([]types.Hotel{{Name: "Grand Plaza"}}, nil).Once()

	hotels, err := svc.SearchHotels(ctx, "  plaza ")

	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Grand Plaza", hotels[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestDeleteHotel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("DeleteHotel", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.DeleteHotel(ctx, id))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown hotel", func(t *testing.T) {
		mockRepo := new(MockHotelRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("DeleteHotel", ctx, id).Return(api.ErrNotFound).Once()

		assert.ErrorIs(t, svc.DeleteHotel(ctx, id), api.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}
