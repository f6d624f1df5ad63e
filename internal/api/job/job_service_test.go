package job

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

// MockJobRepo is a mock implementation of Repository.
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) ListCompanies(ctx context.Context) ([]types.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Company), args.Error(1)
}

func (m *MockJobRepo) GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Company), args.Error(1)
}

func (m *MockJobRepo) CreateCompany(ctx context.Context, c *types.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockJobRepo) UpdateCompany(ctx context.Context, c *types.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockJobRepo) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepo) ListIndustries(ctx context.Context) ([]types.Industry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Industry), args.Error(1)
}

func (m *MockJobRepo) GetIndustry(ctx context.Context, id uuid.UUID) (*types.Industry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Industry), args.Error(1)
}

func (m *MockJobRepo) CreateIndustry(ctx context.Context, i *types.Industry) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockJobRepo) UpdateIndustry(ctx context.Context, i *types.Industry) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockJobRepo) DeleteIndustry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepo) ListJobListings(ctx context.Context) ([]types.JobListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.JobListing), args.Error(1)
}

func (m *MockJobRepo) GetJobListing(ctx context.Context, id uuid.UUID) (*types.JobListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.JobListing), args.Error(1)
}

func (m *MockJobRepo) ListJobListingsByCompany(ctx context.Context, companyID uuid.UUID) ([]types.JobListing, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.JobListing), args.Error(1)
}

func (m *MockJobRepo) CreateJobListing(ctx context.Context, j *types.JobListing) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepo) UpdateJobListing(ctx context.Context, j *types.JobListing) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepo) DeleteJobListing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewServiceImpl(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateIndustry(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateIndustry", ctx, mock.AnythingOfType("*types.Industry")).Return(nil).Once()

		i, err := svc.CreateIndustry(ctx, UpsertIndustryRequest{Name: " Manufacturing ", Description: "Heavy industry"})

		require.NoError(t, err)
		assert.Equal(t, "Manufacturing", i.Name)
		assert.True(t, i.Active)
		assert.NotEqual(t, uuid.Nil, i.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing name", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		svc := newTestService(mockRepo)

		_, err := svc.CreateIndustry(ctx, UpsertIndustryRequest{Description: "no name"})

		var vErr *api.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		mockRepo.AssertNotCalled(t, "CreateIndustry", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("CreateIndustry", ctx, mock.AnythingOfType("*types.Industry")).Return(api.ErrConflict).Once()

		_, err := svc.CreateIndustry(ctx, UpsertIndustryRequest{Name: "Manufacturing"})

		assert.ErrorIs(t, err, api.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateIndustry(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Deactivate via pointer flag", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		svc := newTestService(mockRepo)

		existing := &types.Industry{ID: id, Name: "Manufacturing", Active: true}
		mockRepo.On("GetIndustry", ctx, id).Return(existing, nil).Once()
		mockRepo.On("UpdateIndustry", ctx, existing).Return(nil).Once()

		inactive := false
		i, err := svc.UpdateIndustry(ctx, id, UpsertIndustryRequest{Name: "Manufacturing", Active: &inactive})

		require.NoError(t, err)
		assert.False(t, i.Active)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown industry", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		svc := newTestService(mockRepo)

		mockRepo.On("GetIndustry", ctx, id).Return(nil, api.ErrNotFound).Once()

		_, err := svc.UpdateIndustry(ctx, id, UpsertIndustryRequest{Name: "Manufacturing"})

		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertNotCalled(t, "UpdateIndustry", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteIndustry(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockRepo := new(MockJobRepo)
	svc := newTestService(mockRepo)

	mockRepo.On("DeleteIndustry", ctx, id).Return(api.ErrNotFound).Once()

	assert.ErrorIs(t, svc.DeleteIndustry(ctx, id), api.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
