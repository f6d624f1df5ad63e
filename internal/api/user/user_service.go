package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListUsers(ctx context.Context, role string) ([]types.UserProfile, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.UserProfile, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*types.UserProfile, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*types.UserProfile, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListTouristProfiles(ctx context.Context) ([]types.TouristProfile, error)
	GetTouristProfile(ctx context.Context, userID uuid.UUID) (*types.TouristProfile, error)
	SaveTouristProfile(ctx context.Context, userID uuid.UUID, req UpsertTouristProfileRequest) (*types.TouristProfile, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func profiles(users []types.User) []types.UserProfile {
	out := make([]types.UserProfile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Profile())
	}
	return out
}

// ListUsers returns every account, optionally filtered by role.
func (s *ServiceImpl) ListUsers(ctx context.Context, role string) ([]types.UserProfile, error) {
	if role == "" {
		users, err := s.repo.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		return profiles(users), nil
	}
	parsed, err := types.ParseRole(role)
	if err != nil {
		return nil, &api.ValidationError{Fields: map[string]string{"role": err.Error()}}
	}
	users, err := s.repo.ListUsersByRole(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return profiles(users), nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*types.UserProfile, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func validateCreateUser(req CreateUserRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(req.Username) == "" {
		fields["username"] = "Username is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email is required"
	}
	if strings.TrimSpace(req.Password) == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

// CreateUser provisions an account on behalf of an admin. The caller is
// already authorized, so any role may be assigned, which is how second
// and subsequent admins get created.
func (s *ServiceImpl) CreateUser(ctx context.Context, req CreateUserRequest) (*types.UserProfile, error) {
	if err := validateCreateUser(req); err != nil {
		return nil, err
	}

	role := types.DefaultRole
	if req.Role != "" {
		parsed, err := types.ParseRole(req.Role)
		if err != nil {
			return nil, &api.ValidationError{Fields: map[string]string{"role": err.Error()}}
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &types.User{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Username:  strings.ToLower(strings.TrimSpace(req.Username)),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hashed),
		Role:      role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User provisioned",
		slog.String("user_id", u.ID.String()),
		slog.String("role", u.Role.String()),
	)
	p := u.Profile()
	return &p, nil
}

func (s *ServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*types.UserProfile, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email is required"
	}
	role, err := types.ParseRole(req.Role)
	if err != nil {
		fields["role"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, &api.ValidationError{Fields: fields}
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	u.Role = role
	if req.Active != nil {
		u.Active = *req.Active
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User updated", slog.String("user_id", u.ID.String()))
	p := u.Profile()
	return &p, nil
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "User deleted", slog.String("user_id", id.String()))
	return nil
}

func (s *ServiceImpl) ListTouristProfiles(ctx context.Context) ([]types.TouristProfile, error) {
	return s.repo.ListTouristProfiles(ctx)
}

func (s *ServiceImpl) GetTouristProfile(ctx context.Context, userID uuid.UUID) (*types.TouristProfile, error) {
	return s.repo.GetTouristProfile(ctx, userID)
}

// SaveTouristProfile upserts the tourist-specific attributes for the
// given user. Interests are deduplicated preserving submission order.
func (s *ServiceImpl) SaveTouristProfile(ctx context.Context, userID uuid.UUID, req UpsertTouristProfileRequest) (*types.TouristProfile, error) {
	seen := make(map[string]struct{}, len(req.Interests))
	interests := make([]string, 0, len(req.Interests))
	for _, raw := range req.Interests {
		interest := strings.TrimSpace(raw)
		if interest == "" {
			continue
		}
		if _, dup := seen[interest]; dup {
			continue
		}
		seen[interest] = struct{}{}
		interests = append(interests, interest)
	}

	p := &types.TouristProfile{
		UserID:      userID,
		Nationality: strings.TrimSpace(req.Nationality),
		Preferences: strings.TrimSpace(req.Preferences),
		Interests:   interests,
	}
	if err := s.repo.UpsertTouristProfile(ctx, p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Tourist profile saved", slog.String("user_id", userID.String()))
	return p, nil
}
