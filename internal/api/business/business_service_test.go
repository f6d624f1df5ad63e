package business

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

// MockBusinessRepo is a mock implementation of Repository.
type MockBusinessRepo struct {
	mock.Mock
}

func (m *MockBusinessRepo) ListBusinesses(ctx context.Context) ([]types.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Business), args.Error(1)
}

func (m *MockBusinessRepo) GetBusiness(ctx context.Context, id uuid.UUID) (*types.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Business), args.Error(1)
}

func (m *MockBusinessRepo) ListBusinessesBySector(ctx context.Context, sector string) ([]types.Business, error) {
	args := m.Called(ctx, sector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Business), args.Error(1)
}

func (m *MockBusinessRepo) CreateBusiness(ctx context.Context, b *types.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepo) UpdateBusiness(ctx context.Context, b *types.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepo) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBusinessRepo) ListNews(ctx context.Context) ([]types.BusinessNews, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.BusinessNews), args.Error(1)
}

func (m *MockBusinessRepo) GetNews(ctx context.Context, id uuid.UUID) (*types.BusinessNews, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BusinessNews), args.Error(1)
}

func (m *MockBusinessRepo) CreateNews(ctx context.Context, n *types.BusinessNews) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockBusinessRepo) UpdateNews(ctx context.Context, n *types.BusinessNews) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockBusinessRepo) DeleteNews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBusinessRepo) ListCenters(ctx context.Context) ([]types.BusinessCenter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.BusinessCenter), args.Error(1)
}

func (m *MockBusinessRepo) GetCenter(ctx context.Context, id uuid.UUID) (*types.BusinessCenter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BusinessCenter), args.Error(1)
}

func (m *MockBusinessRepo) SearchCenters(ctx context.Context, query string) ([]types.BusinessCenter, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.BusinessCenter), args.Error(1)
}

func (m *MockBusinessRepo) CreateCenter(ctx context.Context, c *types.BusinessCenter) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockBusinessRepo) UpdateCenter(ctx context.Context, c *types.BusinessCenter) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockBusinessRepo) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewServiceImpl(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateNews(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	industryID := uuid.New()

	t.Run("Attributes the author", func(t *testing.T) {
		mockRepo := new(MockBusinessRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateNews", ctx, mock.AnythingOfType("*types.BusinessNews")).Return(nil).Once()

		n, err := svc.CreateNews(ctx, authorID, UpsertNewsRequest{
			Title:      " Quarterly outlook ",
			Content:    "Sector growth continues.",
			IndustryID: industryID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Quarterly outlook", n.Title)
		assert.Equal(t, authorID, n.CreatedBy)
		assert.Equal(t, industryID, n.IndustryID)
		assert.NotEqual(t, uuid.Nil, n.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing fields", func(t *testing.T) {
		mockRepo := new(MockBusinessRepo)
		svc := newTestService(mockRepo)

		_, err := svc.CreateNews(ctx, authorID, UpsertNewsRequest{})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "title")
		assert.Contains(t, vErr.Fields, "content")
		assert.Contains(t, vErr.Fields, "industry_id")
		mockRepo.AssertNotCalled(t, "CreateNews", mock.Anything, mock.Anything)
	})

	t.Run("Unknown industry", func(t *testing.T) {
		mockRepo := new(MockBusinessRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateNews", ctx, mock.AnythingOfType("*types.BusinessNews")).Return(api.ErrNotFound).Once()

		_, err := svc.CreateNews(ctx, authorID, UpsertNewsRequest{
			Title:      "Quarterly outlook",
			Content:    "Sector growth continues.",
			IndustryID: industryID,
		})

		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestSearchCenters(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockBusinessRepo)
	svc := newTestService(mockRepo)

	// Search input is trimmed before hitting the repository.
	mockRepo.On("SearchCenters", ctx, "tech").Return([]types.BusinessCenter{{Name: "Tech Hub"}}, nil).Once()

	centers, err := svc.SearchCenters(ctx, "  tech ")

	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.Equal(t, "Tech Hub", centers[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestCreateCenter(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockBusinessRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateCenter", ctx, mock.AnythingOfType("*types.BusinessCenter")).Return(nil).Once()

		c, err := svc.CreateCenter(ctx, UpsertCenterRequest{
			Name:    "Tech Hub",
			Sector:  "Technology",
			Address: "12 Innovation Way",
		})

		require.NoError(t, err)
		assert.Equal(t, "Tech Hub", c.Name)
		assert.NotEqual(t, uuid.Nil, c.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing fields", func(t *testing.T) {
		mockRepo := new(MockBusinessRepo)
		svc := newTestService(mockRepo)

		_, err := svc.CreateCenter(ctx, UpsertCenterRequest{Description: "no name"})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "sector")
		assert.Contains(t, vErr.Fields, "address")
		mockRepo.AssertNotCalled(t, "CreateCenter", mock.Anything, mock.Anything)
	})
}
