package restaurant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListRestaurants(ctx context.Context) ([]types.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*types.Restaurant, error)
	ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]types.Restaurant, error)
	CreateRestaurant(ctx context.Context, req UpsertRestaurantRequest) (*types.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id uuid.UUID, req UpsertRestaurantRequest) (*types.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateRestaurant(req UpsertRestaurantRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if req.StarRating < 0 || req.StarRating > 5 {
		fields["star_rating"] = "star_rating must be between 0 and 5"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyRestaurant(rest *types.Restaurant, req UpsertRestaurantRequest) {
	rest.Name = strings.TrimSpace(req.Name)
	rest.Address = strings.TrimSpace(req.Address)
	rest.StarRating = req.StarRating
	rest.Rating = req.Rating
	rest.PriceRange = strings.TrimSpace(req.PriceRange)
	rest.Description = req.Description
	rest.CuisineType = strings.TrimSpace(req.CuisineType)
	rest.ContactNumber = strings.TrimSpace(req.ContactNumber)
	rest.ImageURL = req.ImageURL
}

func (s *ServiceImpl) ListRestaurants(ctx context.Context) ([]types.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *ServiceImpl) GetRestaurant(ctx context.Context, id uuid.UUID) (*types.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

func (s *ServiceImpl) ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]types.Restaurant, error) {
	return s.repo.ListRestaurantsByCuisine(ctx, strings.TrimSpace(cuisine))
}

func (s *ServiceImpl) CreateRestaurant(ctx context.Context, req UpsertRestaurantRequest) (*types.Restaurant, error) {
	if err := validateRestaurant(req); err != nil {
		return nil, err
	}
	rest := &types.Restaurant{ID: uuid.New()}
	applyRestaurant(rest, req)
	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Restaurant created", slog.String("restaurant_id", rest.ID.String()))
	return rest, nil
}

func (s *ServiceImpl) UpdateRestaurant(ctx context.Context, id uuid.UUID, req UpsertRestaurantRequest) (*types.Restaurant, error) {
	if err := validateRestaurant(req); err != nil {
		return nil, err
	}
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRestaurant(rest, req)
	if err := s.repo.UpdateRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *ServiceImpl) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Restaurant deleted", slog.String("restaurant_id", id.String()))
	return nil
}
