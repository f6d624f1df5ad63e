package business

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
	ListBusinesses(ctx context.Context) ([]types.Business, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*types.Business, error)
	ListBusinessesBySector(ctx context.Context, sector string) ([]types.Business, error)
	CreateBusiness(ctx context.Context, req UpsertBusinessRequest) (*types.Business, error)
	UpdateBusiness(ctx context.Context, id uuid.UUID, req UpsertBusinessRequest) (*types.Business, error)
	DeleteBusiness(ctx context.Context, id uuid.UUID) error

	ListNews(ctx context.Context) ([]types.BusinessNews, error)
	GetNews(ctx context.Context, id uuid.UUID) (*types.BusinessNews, error)
	CreateNews(ctx context.Context, authorID uuid.UUID, req UpsertNewsRequest) (*types.BusinessNews, error)
	UpdateNews(ctx context.Context, id uuid.UUID, req UpsertNewsRequest) (*types.BusinessNews, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error

	ListCenters(ctx context.Context) ([]types.BusinessCenter, error)
	GetCenter(ctx context.Context, id uuid.UUID) (*types.BusinessCenter, error)
	SearchCenters(ctx context.Context, query string) ([]types.BusinessCenter, error)
	CreateCenter(ctx context.Context, req UpsertCenterRequest) (*types.BusinessCenter, error)
	UpdateCenter(ctx context.Context, id uuid.UUID, req UpsertCenterRequest) (*types.BusinessCenter, error)
	DeleteCenter(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateBusiness(req UpsertBusinessRequest) error {
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

func applyBusiness(b *types.Business, req UpsertBusinessRequest) {
	b.Name = strings.TrimSpace(req.Name)
	b.Sector = strings.TrimSpace(req.Sector)
	b.Address = strings.TrimSpace(req.Address)
	b.Description = req.Description
	b.Contact = strings.TrimSpace(req.Contact)
	b.Email = strings.TrimSpace(req.Email)
	b.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	b.Website = strings.TrimSpace(req.Website)
	if req.Active != nil {
		b.Active = *req.Active
	}
}

func (s *ServiceImpl) ListBusinesses(ctx context.Context) ([]types.Business, error) {
	return s.repo.ListBusinesses(ctx)
}

func (s *ServiceImpl) GetBusiness(ctx context.Context, id uuid.UUID) (*types.Business, error) {
	return s.repo.GetBusiness(ctx, id)
}

func (s *ServiceImpl) ListBusinessesBySector(ctx context.Context, sector string) ([]types.Business, error) {
	return s.repo.ListBusinessesBySector(ctx, strings.TrimSpace(sector))
}

func (s *ServiceImpl) CreateBusiness(ctx context.Context, req UpsertBusinessRequest) (*types.Business, error) {
	if err := validateBusiness(req); err != nil {
		return nil, err
	}
	b := &types.Business{ID: uuid.New(), Active: true}
	applyBusiness(b, req)
	if err := s.repo.CreateBusiness(ctx, b); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Business created", slog.String("business_id", b.ID.String()))
	return b, nil
}

func (s *ServiceImpl) UpdateBusiness(ctx context.Context, id uuid.UUID, req UpsertBusinessRequest) (*types.Business, error) {
	if err := validateBusiness(req); err != nil {
		return nil, err
	}
	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBusiness(b, req)
	if err := s.repo.UpdateBusiness(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *ServiceImpl) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Business deleted", slog.String("business_id", id.String()))
	return nil
}

func validateNews(req UpsertNewsRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		fields["content"] = "content is required"
	}
	if req.IndustryID == uuid.Nil {
		fields["industry_id"] = "industry_id is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func (s *ServiceImpl) ListNews(ctx context.Context) ([]types.BusinessNews, error) {
	return s.repo.ListNews(ctx)
}

func (s *ServiceImpl) GetNews(ctx context.Context, id uuid.UUID) (*types.BusinessNews, error) {
	return s.repo.GetNews(ctx, id)
}

func (s *ServiceImpl) CreateNews(ctx context.Context, authorID uuid.UUID, req UpsertNewsRequest) (*types.BusinessNews, error) {
	if err := validateNews(req); err != nil {
		return nil, err
	}
	n := &types.BusinessNews{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		IndustryID: req.IndustryID,
		CreatedBy:  authorID,
	}
	if err := s.repo.CreateNews(ctx, n); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Business news published",
		slog.String("news_id", n.ID.String()),
		slog.String("industry_id", n.IndustryID.String()),
	)
	return n, nil
}

func (s *ServiceImpl) UpdateNews(ctx context.Context, id uuid.UUID, req UpsertNewsRequest) (*types.BusinessNews, error) {
	if err := validateNews(req); err != nil {
		return nil, err
	}
	n, err := s.repo.GetNews(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Title = strings.TrimSpace(req.Title)
	n.Content = req.Content
	n.IndustryID = req.IndustryID
	if err := s.repo.UpdateNews(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ServiceImpl) DeleteNews(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNews(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Business news deleted", slog.String("news_id", id.String()))
	return nil
}

func validateCenter(req UpsertCenterRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.Sector) == "" {
		fields["sector"] = "sector is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyCenter(c *types.BusinessCenter, req UpsertCenterRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Sector = strings.TrimSpace(req.Sector)
	c.Address = strings.TrimSpace(req.Address)
	c.Description = req.Description
}

func (s *ServiceImpl) ListCenters(ctx context.Context) ([]types.BusinessCenter, error) {
	return s.repo.ListCenters(ctx)
}

func (s *ServiceImpl) GetCenter(ctx context.Context, id uuid.UUID) (*types.BusinessCenter, error) {
	return s.repo.GetCenter(ctx, id)
}

func (s *ServiceImpl) SearchCenters(ctx context.Context, query string) ([]types.BusinessCenter, error) {
	return s.repo.SearchCenters(ctx, strings.TrimSpace(query))
}

func (s *ServiceImpl) CreateCenter(ctx context.Context, req UpsertCenterRequest) (*types.BusinessCenter, error) {
	if err := validateCenter(req); err != nil {
		return nil, err
	}
	c := &types.BusinessCenter{ID: uuid.New()}
	applyCenter(c, req)
	if err := s.repo.CreateCenter(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Business center created", slog.String("center_id", c.ID.String()))
	return c, nil
}

func (s *ServiceImpl) UpdateCenter(ctx context.Context, id uuid.UUID, req UpsertCenterRequest) (*types.BusinessCenter, error) {
	if err := validateCenter(req); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCenter(c, req)
	if err := s.repo.UpdateCenter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ServiceImpl) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCenter(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Business center deleted", slog.String("center_id", id.String()))
	return nil
}
