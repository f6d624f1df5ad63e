package job

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
	ListCompanies(ctx context.Context) ([]types.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error)
	CreateCompany(ctx context.Context, req UpsertCompanyRequest) (*types.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, req UpsertCompanyRequest) (*types.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error

	ListIndustries(ctx context.Context) ([]types.Industry, error)
	GetIndustry(ctx context.Context, id uuid.UUID) (*types.Industry, error)
	CreateIndustry(ctx context.Context, req UpsertIndustryRequest) (*types.Industry, error)
	UpdateIndustry(ctx context.Context, id uuid.UUID, req UpsertIndustryRequest) (*types.Industry, error)
	DeleteIndustry(ctx context.Context, id uuid.UUID) error

	ListJobListings(ctx context.Context) ([]types.JobListing, error)
	GetJobListing(ctx context.Context, id uuid.UUID) (*types.JobListing, error)
	ListJobListingsByCompany(ctx context.Context, companyID uuid.UUID) ([]types.JobListing, error)
	CreateJobListing(ctx context.Context, req UpsertJobListingRequest) (*types.JobListing, error)
	UpdateJobListing(ctx context.Context, id uuid.UUID, req UpsertJobListingRequest) (*types.JobListing, error)
	DeleteJobListing(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateCompany(req UpsertCompanyRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyCompany(c *types.Company, req UpsertCompanyRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.ContactNumber = strings.TrimSpace(req.ContactNumber)
	c.Email = strings.TrimSpace(req.Email)
	c.Sector = strings.TrimSpace(req.Sector)
	c.Address = strings.TrimSpace(req.Address)
	c.Location = strings.TrimSpace(req.Location)
	c.Description = req.Description
	c.Website = strings.TrimSpace(req.Website)
	c.LogoURL = req.LogoURL
	if req.Active != nil {
		c.Active = *req.Active
	}
}

func validateIndustry(req UpsertIndustryRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyIndustry(i *types.Industry, req UpsertIndustryRequest) {
	i.Name = strings.TrimSpace(req.Name)
	i.Description = req.Description
	if req.Active != nil {
		i.Active = *req.Active
	}
}

func validateJobListing(req UpsertJobListingRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if req.Salary < 0 {
		fields["salary"] = "salary must not be negative"
	}
	if req.CompanyID == uuid.Nil {
		fields["company_id"] = "company_id is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyJobListing(j *types.JobListing, req UpsertJobListingRequest) {
	j.Title = strings.TrimSpace(req.Title)
	j.Description = req.Description
	j.Salary = req.Salary
	j.ContactNumber = strings.TrimSpace(req.ContactNumber)
	j.Email = strings.TrimSpace(req.Email)
	j.CompanyID = req.CompanyID
}

func (s *ServiceImpl) ListCompanies(ctx context.Context) ([]types.Company, error) {
	return s.repo.ListCompanies(ctx)
}

func (s *ServiceImpl) GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error) {
	return s.repo.GetCompany(ctx, id)
}

func (s *ServiceImpl) CreateCompany(ctx context.Context, req UpsertCompanyRequest) (*types.Company, error) {
	if err := validateCompany(req); err != nil {
		return nil, err
	}
	c := &types.Company{ID: uuid.New(), Active: true}
	applyCompany(c, req)
	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Company created", slog.String("company_id", c.ID.String()))
	return c, nil
}

func (s *ServiceImpl) UpdateCompany(ctx context.Context, id uuid.UUID, req UpsertCompanyRequest) (*types.Company, error) {
	if err := validateCompany(req); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCompany(c, req)
	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ServiceImpl) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Company deleted", slog.String("company_id", id.String()))
	return nil
}

func (s *ServiceImpl) ListIndustries(ctx context.Context) ([]types.Industry, error) {
	return s.repo.ListIndustries(ctx)
}

func (s *ServiceImpl) GetIndustry(ctx context.Context, id uuid.UUID) (*types.Industry, error) {
	return s.repo.GetIndustry(ctx, id)
}

func (s *ServiceImpl) CreateIndustry(ctx context.Context, req UpsertIndustryRequest) (*types.Industry, error) {
	if err := validateIndustry(req); err != nil {
		return nil, err
	}
	i := &types.Industry{ID: uuid.New(), Active: true}
	applyIndustry(i, req)
	if err := s.repo.CreateIndustry(ctx, i); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Industry created", slog.String("industry_id", i.ID.String()))
	return i, nil
}

func (s *ServiceImpl) UpdateIndustry(ctx context.Context, id uuid.UUID, req UpsertIndustryRequest) (*types.Industry, error) {
	if err := validateIndustry(req); err != nil {
		return nil, err
	}
	i, err := s.repo.GetIndustry(ctx, id)
	if err != nil {
		return nil, err
	}
	applyIndustry(i, req)
	if err := s.repo.UpdateIndustry(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *ServiceImpl) DeleteIndustry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteIndustry(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Industry deleted", slog.String("industry_id", id.String()))
	return nil
}

func (s *ServiceImpl) ListJobListings(ctx context.Context) ([]types.JobListing, error) {
	return s.repo.ListJobListings(ctx)
}

func (s *ServiceImpl) GetJobListing(ctx context.Context, id uuid.UUID) (*types.JobListing, error) {
	return s.repo.GetJobListing(ctx, id)
}

func (s *ServiceImpl) ListJobListingsByCompany(ctx context.Context, companyID uuid.UUID) ([]types.JobListing, error) {
	return s.repo.ListJobListingsByCompany(ctx, companyID)
}

func (s *ServiceImpl) CreateJobListing(ctx context.Context, req UpsertJobListingRequest) (*types.JobListing, error) {
	if err := validateJobListing(req); err != nil {
		return nil, err
	}
	j := &types.JobListing{ID: uuid.New()}
	applyJobListing(j, req)
	if err := s.repo.CreateJobListing(ctx, j); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Job listing created",
		slog.String("listing_id", j.ID.String()),
		slog.String("company_id", j.CompanyID.String()),
	)
	return j, nil
}

func (s *ServiceImpl) UpdateJobListing(ctx context.Context, id uuid.UUID, req UpsertJobListingRequest) (*types.JobListing, error) {
	if err := validateJobListing(req); err != nil {
		return nil, err
	}
	j, err := s.repo.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}
	applyJobListing(j, req)
	if err := s.repo.UpdateJobListing(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *ServiceImpl) DeleteJobListing(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteJobListing(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Job listing deleted", slog.String("listing_id", id.String()))
	return nil
}
