package education

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
	ListUniversities(ctx context.Context) ([]types.University, error)
	GetUniversity(ctx context.Context, id uuid.UUID) (*types.University, error)
	CreateUniversity(ctx context.Context, req UpsertUniversityRequest) (*types.University, error)
	UpdateUniversity(ctx context.Context, id uuid.UUID, req UpsertUniversityRequest) (*types.University, error)
	DeleteUniversity(ctx context.Context, id uuid.UUID) error

	ListColleges(ctx context.Context) ([]types.College, error)
	GetCollege(ctx context.Context, id uuid.UUID) (*types.College, error)
	SearchColleges(ctx context.Context, query string) ([]types.College, error)
	CreateCollege(ctx context.Context, req UpsertCollegeRequest) (*types.College, error)
	UpdateCollege(ctx context.Context, id uuid.UUID, req UpsertCollegeRequest) (*types.College, error)
	DeleteCollege(ctx context.Context, id uuid.UUID) error

	ListCoachingCenters(ctx context.Context) ([]types.CoachingCenter, error)
	GetCoachingCenter(ctx context.Context, id uuid.UUID) (*types.CoachingCenter, error)
	SearchCoachingCenters(ctx context.Context, query string) ([]types.CoachingCenter, error)
	CreateCoachingCenter(ctx context.Context, req UpsertCoachingCenterRequest) (*types.CoachingCenter, error)
	UpdateCoachingCenter(ctx context.Context, id uuid.UUID, req UpsertCoachingCenterRequest) (*types.CoachingCenter, error)
	DeleteCoachingCenter(ctx context.Context, id uuid.UUID) error

	ListLibraries(ctx context.Context) ([]types.Library, error)
	GetLibrary(ctx context.Context, id uuid.UUID) (*types.Library, error)
	CreateLibrary(ctx context.Context, req UpsertLibraryRequest) (*types.Library, error)
	UpdateLibrary(ctx context.Context, id uuid.UUID, req UpsertLibraryRequest) (*types.Library, error)
	DeleteLibrary(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func validateVenue(name, address string) error {
	fields := make(map[string]string)
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(address) == "" {
		fields["address"] = "address is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyUniversity(u *types.University, req UpsertUniversityRequest) {
	u.Name = strings.TrimSpace(req.Name)
	u.Address = strings.TrimSpace(req.Address)
	u.Contact = strings.TrimSpace(req.Contact)
	u.OpenTime = strings.TrimSpace(req.OpenTime)
	u.CloseTime = strings.TrimSpace(req.CloseTime)
	u.ImageURL = req.ImageURL
	u.Description = req.Description
	if req.Active != nil {
		u.Active = *req.Active
	}
}

func applyLibrary(l *types.Library, req UpsertLibraryRequest) {
	l.Name = strings.TrimSpace(req.Name)
	l.Address = strings.TrimSpace(req.Address)
	l.Contact = strings.TrimSpace(req.Contact)
	l.OpenTime = strings.TrimSpace(req.OpenTime)
	l.CloseTime = strings.TrimSpace(req.CloseTime)
	l.ImageURL = req.ImageURL
	l.Description = req.Description
	if req.Active != nil {
		l.Active = *req.Active
	}
}

func (s *ServiceImpl) ListUniversities(ctx context.Context) ([]types.University, error) {
	return s.repo.ListUniversities(ctx)
}

func (s *ServiceImpl) GetUniversity(ctx context.Context, id uuid.UUID) (*types.University, error) {
	return s.repo.GetUniversity(ctx, id)
}

func (s *ServiceImpl) CreateUniversity(ctx context.Context, req UpsertUniversityRequest) (*types.University, error) {
	if err := validateVenue(req.Name, req.Address); err != nil {
		return nil, err
	}
	u := &types.University{ID: uuid.New(), Active: true}
	applyUniversity(u, req)
	if err := s.repo.CreateUniversity(ctx, u); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "University created", slog.String("university_id", u.ID.String()))
	return u, nil
}

func (s *ServiceImpl) UpdateUniversity(ctx context.Context, id uuid.UUID, req UpsertUniversityRequest) (*types.University, error) {
	if err := validateVenue(req.Name, req.Address); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUniversity(ctx, id)
	if err != nil {
		return nil, err
	}
	applyUniversity(u, req)
	if err := s.repo.UpdateUniversity(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *ServiceImpl) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUniversity(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "University deleted", slog.String("university_id", id.String()))
	return nil
}

func (s *ServiceImpl) ListLibraries(ctx context.Context) ([]types.Library, error) {
	return s.repo.ListLibraries(ctx)
}

func (s *ServiceImpl) GetLibrary(ctx context.Context, id uuid.UUID) (*types.Library, error) {
	return s.repo.GetLibrary(ctx, id)
}

func (s *ServiceImpl) CreateLibrary(ctx context.Context, req UpsertLibraryRequest) (*types.Library, error) {
	if err := validateVenue(req.Name, req.Address); err != nil {
		return nil, err
	}
	l := &types.Library{ID: uuid.New(), Active: true}
	applyLibrary(l, req)
	if err := s.repo.CreateLibrary(ctx, l); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Library created", slog.String("library_id", l.ID.String()))
	return l, nil
}

func (s *ServiceImpl) UpdateLibrary(ctx context.Context, id uuid.UUID, req UpsertLibraryRequest) (*types.Library, error) {
	if err := validateVenue(req.Name, req.Address); err != nil {
		return nil, err
	}
	l, err := s.repo.GetLibrary(ctx, id)
	if err != nil {
		return nil, err
	}
	applyLibrary(l, req)
	if err := s.repo.UpdateLibrary(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ServiceImpl) DeleteLibrary(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteLibrary(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Library deleted", slog.String("library_id", id.String()))
	return nil
}

func applyCollege(c *types.College, req UpsertCollegeRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Address = strings.TrimSpace(req.Address)
	c.Contact = strings.TrimSpace(req.Contact)
	c.OpenTime = strings.TrimSpace(req.OpenTime)
	c.CloseTime = strings.TrimSpace(req.CloseTime)
	c.Description = req.Description
	if req.Active != nil {
		c.Active = *req.Active
	}
}

func (s *ServiceImpl) ListColleges(ctx context.Context) ([]types.College, error) {
	return s.repo.ListColleges(ctx)
}

func (s *ServiceImpl) GetCollege(ctx context.Context, id uuid.UUID) (*types.College, error) {
	return s.repo.GetCollege(ctx, id)
}

func (s *ServiceImpl) SearchColleges(ctx context.Context, query string) ([]types.College, error) {
	return s.repo.SearchColleges(ctx, strings.TrimSpace(query))
}

func (s *ServiceImpl) CreateCollege(ctx context.Context, req UpsertCollegeRequest) (*types.College, error) {
	if err := validateVenue(req.Name, req.Address); err != nil {
		return nil, err
	}
	c := &types.College{ID: uuid.New(), Active: true}
	applyCollege(c, req)
	if err := s.repo.CreateCollege(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "College created", slog.String("college_id", c.ID.String()))
	return c, nil
}

func (s *ServiceImpl) UpdateCollege(ctx context.Context, id uuid.UUID, req UpsertCollegeRequest) (*types.College, error) {
	if err := validateVenue(req.Name, req.Address); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCollege(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCollege(c, req)
	if err := s.repo.UpdateCollege(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ServiceImpl) DeleteCollege(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCollege(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "College deleted", slog.String("college_id", id.String()))
	return nil
}

func validateCoachingCenter(req UpsertCoachingCenterRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "address is required"
	}
	if strings.TrimSpace(req.Specialization) == "" {
		fields["specialization"] = "specialization is required"
	}
	if req.StartingPrice < 0 {
		fields["starting_price"] = "starting_price must not be negative"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func applyCoachingCenter(c *types.CoachingCenter, req UpsertCoachingCenterRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Address = strings.TrimSpace(req.Address)
	c.Contact = strings.TrimSpace(req.Contact)
	c.Specialization = strings.TrimSpace(req.Specialization)
	c.Description = req.Description
	c.ImageURL = req.ImageURL
	c.StartingPrice = req.StartingPrice
	c.OpenTime = strings.TrimSpace(req.OpenTime)
	c.CloseTime = strings.TrimSpace(req.CloseTime)
	if req.Active != nil {
		c.Active = *req.Active
	}
}

func (s *ServiceImpl) ListCoachingCenters(ctx context.Context) ([]types.CoachingCenter, error) {
	return s.repo.ListCoachingCenters(ctx)
}

func (s *ServiceImpl) GetCoachingCenter(ctx context.Context, id uuid.UUID) (*types.CoachingCenter, error) {
	return s.repo.GetCoachingCenter(ctx, id)
}

func (s *ServiceImpl) SearchCoachingCenters(ctx context.Context, query string) ([]types.CoachingCenter, error) {
	return s.repo.SearchCoachingCenters(ctx, strings.TrimSpace(query))
}

func (s *ServiceImpl) CreateCoachingCenter(ctx context.Context, req UpsertCoachingCenterRequest) (*types.CoachingCenter, error) {
	if err := validateCoachingCenter(req); err != nil {
		return nil, err
	}
	c := &types.CoachingCenter{ID: uuid.New(), Active: true}
	applyCoachingCenter(c, req)
	if err := s.repo.CreateCoachingCenter(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Coaching center created", slog.String("center_id", c.ID.String()))
	return c, nil
}

func (s *ServiceImpl) UpdateCoachingCenter(ctx context.Context, id uuid.UUID, req UpsertCoachingCenterRequest) (*types.CoachingCenter, error) {
	if err := validateCoachingCenter(req); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCoachingCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCoachingCenter(c, req)
	if err := s.repo.UpdateCoachingCenter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ServiceImpl) DeleteCoachingCenter(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCoachingCenter(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Coaching center deleted", slog.String("center_id", id.String()))
	return nil
}
