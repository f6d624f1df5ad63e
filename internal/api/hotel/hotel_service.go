package hotel

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
	ListHotels(ctx context.Context) ([]types.Hotel, error)
	GetHotel(ctx context.Context, id uuid.UUID) (*types.Hotel, error)
	SearchHotels(ctx context.Context, name string) ([]types.Hotel, error)
	CreateHotel(ctx context.Context, req UpsertHotelRequest) (*types.Hotel, error)
	UpdateHotel(ctx context.Context, id uuid.UUID, req UpsertHotelRequest) (*types.Hotel, error)
	DeleteHotel(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateHotel(req UpsertHotelRequest) error {
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
	if req.MinPrice < 0 || req.MaxPrice < 0 || req.StartingPrice < 0 {
		fields["min_price"] = "prices must not be negative"
	}
	if req.MaxPrice > 0 && req.MinPrice > req.MaxPrice {
		fields["max_price"] = "max_price must not be below min_price"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyHotel(h *types.Hotel, req UpsertHotelRequest) {
	h.Name = strings.TrimSpace(req.Name)
	h.Address = strings.TrimSpace(req.Address)
	h.Email = strings.TrimSpace(req.Email)
	h.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	h.Description = req.Description
	h.MinPrice = req.MinPrice
	h.MaxPrice = req.MaxPrice
	h.StarRating = req.StarRating
	h.Rating = req.Rating
	h.StartingPrice = req.StartingPrice
	h.ImageURL = req.ImageURL
	if req.Active != nil {
		h.Active = *req.Active
	}
}

func (s *ServiceImpl) ListHotels(ctx context.Context) ([]types.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

func (s *ServiceImpl) GetHotel(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	return s.repo.GetHotel(ctx, id)
}

func (s *ServiceImpl) SearchHotels(ctx context.Context, name string) ([]types.Hotel, error) {
	return s.repo.SearchHotelsByName(ctx, strings.TrimSpace(name))
}

func (s *ServiceImpl) CreateHotel(ctx context.Context, req UpsertHotelRequest) (*types.Hotel, error) {
	if err := validateHotel(req); err != nil {
		return nil, err
	}
	h := &types.Hotel{ID: uuid.New(), Active: true}
	applyHotel(h, req)
	if err := s.repo.CreateHotel(ctx, h); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Hotel created", slog.String("hotel_id", h.ID.String()))
	return h, nil
}

func (s *ServiceImpl) UpdateHotel(ctx context.Context, id uuid.UUID, req UpsertHotelRequest) (*types.Hotel, error) {
	if err := validateHotel(req); err != nil {
		return nil, err
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	applyHotel(h, req)
	if err := s.repo.UpdateHotel(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *ServiceImpl) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Hotel deleted", slog.String("hotel_id", id.String()))
	return nil
}
