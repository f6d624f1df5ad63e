package attraction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

const listCacheKey = "attractions:all"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListAttractions(ctx context.Context) ([]types.Attraction, error)
	GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error)
	ListAttractionsByCategory(ctx context.Context, category string) ([]types.Attraction, error)
	CreateAttraction(ctx context.Context, req UpsertAttractionRequest) (*types.Attraction, error)
	UpdateAttraction(ctx context.Context, id uuid.UUID, req UpsertAttractionRequest) (*types.Attraction, error)
	DeleteAttraction(ctx context.Context, id uuid.UUID) error
}

// ServiceImpl caches the full attraction list, the hottest read on the
// tourism surface. Any write invalidates the cached list.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func validateAttraction(req UpsertAttractionRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if req.TicketPrice < 0 {
		fields["ticket_price"] = "ticket_price must not be negative"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyAttraction(a *types.Attraction, req UpsertAttractionRequest) {
	a.Name = strings.TrimSpace(req.Name)
	a.Category = strings.TrimSpace(req.Category)
	a.TicketPrice = req.TicketPrice
	a.Description = req.Description
	a.Address = strings.TrimSpace(req.Address)
	a.ContactNumber = strings.TrimSpace(req.ContactNumber)
	a.ImageURL = req.ImageURL
}

func (s *ServiceImpl) ListAttractions(ctx context.Context) ([]types.Attraction, error) {
	if cached, found := s.cache.Get(listCacheKey); found {
		if attractions, ok := cached.([]types.Attraction); ok {
			return attractions, nil
		}
	}
	attractions, err := s.repo.ListAttractions(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, attractions, cache.DefaultExpiration)
	return attractions, nil
}

func (s *ServiceImpl) GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error) {
	return s.repo.GetAttraction(ctx, id)
}

func (s *ServiceImpl) ListAttractionsByCategory(ctx context.Context, category string) ([]types.Attraction, error) {
	return s.repo.ListAttractionsByCategory(ctx, strings.TrimSpace(category))
}

func (s *ServiceImpl) CreateAttraction(ctx context.Context, req UpsertAttractionRequest) (*types.Attraction, error) {
	if err := validateAttraction(req); err != nil {
		return nil, err
	}
	a := &types.Attraction{ID: uuid.New()}
	applyAttraction(a, req)
	if err := s.repo.CreateAttraction(ctx, a); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)
	s.logger.InfoContext(ctx, "Attraction created", slog.String("attraction_id", a.ID.String()))
	return a, nil
}

func (s *ServiceImpl) UpdateAttraction(ctx context.Context, id uuid.UUID, req UpsertAttractionRequest) (*types.Attraction, error) {
	if err := validateAttraction(req); err != nil {
		return nil, err
	}
	a, err := s.repo.GetAttraction(ctx, id)
	if err != nil {
		return nil, err
	}
	applyAttraction(a, req)
	if err := s.repo.UpdateAttraction(ctx, a); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)
	return a, nil
}

func (s *ServiceImpl) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAttraction(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(listCacheKey)
	s.logger.InfoContext(ctx, "Attraction deleted", slog.String("attraction_id", id.String()))
	return nil
}
