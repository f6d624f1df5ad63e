package theatre

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
	ListTheatres(ctx context.Context) ([]types.Theatre, error)
	GetTheatre(ctx context.Context, id uuid.UUID) (*types.Theatre, error)
	CreateTheatre(ctx context.Context, req UpsertTheatreRequest) (*types.Theatre, error)
	UpdateTheatre(ctx context.Context, id uuid.UUID, req UpsertTheatreRequest) (*types.Theatre, error)
	DeleteTheatre(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateTheatre(req UpsertTheatreRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyTheatre(t *types.Theatre, req UpsertTheatreRequest) {
	t.Name = strings.TrimSpace(req.Name)
	t.Address = strings.TrimSpace(req.Address)
	t.Rating = req.Rating
	t.Description = req.Description
	t.ContactNumber = strings.TrimSpace(req.ContactNumber)
	t.ImageURL = req.ImageURL
}

func (s *ServiceImpl) ListTheatres(ctx context.Context) ([]types.Theatre, error) {
	return s.repo.ListTheatres(ctx)
}

func (s *ServiceImpl) GetTheatre(ctx context.Context, id uuid.UUID) (*types.Theatre, error) {
	return s.repo.GetTheatre(ctx, id)
}

func (s *ServiceImpl) CreateTheatre(ctx context.Context, req UpsertTheatreRequest) (*types.Theatre, error) {
	if err := validateTheatre(req); err != nil {
		return nil, err
	}
	t := &types.Theatre{ID: uuid.New()}
	applyTheatre(t, req)
	if err := s.repo.CreateTheatre(ctx, t); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Theatre created", slog.String("theatre_id", t.ID.String()))
	return t, nil
}

func (s *ServiceImpl) UpdateTheatre(ctx context.Context, id uuid.UUID, req UpsertTheatreRequest) (*types.Theatre, error) {
	if err := validateTheatre(req); err != nil {
		return nil, err
	}
	t, err := s.repo.GetTheatre(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTheatre(t, req)
	if err := s.repo.UpdateTheatre(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ServiceImpl) DeleteTheatre(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTheatre(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Theatre deleted", slog.String("theatre_id", id.String()))
	return nil
}
