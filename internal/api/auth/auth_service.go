package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService orchestrates registration, login, token rotation and logout.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, presented string) (*AuthResponse, error)
	Logout(ctx context.Context, presented string) error
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	tokens *TokenIssuer
}

func NewAuthService(repo AuthRepo, tokens *TokenIssuer, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a new user and returns its first token pair.
//
// Role policy: the first user ever registered is forced to ADMIN regardless
// of the requested role (bootstrap: the system needs an admin and cannot
// trust an unauthenticated caller to self-declare one). After that, a
// request for ADMIN is rejected outright; any other known role is honored
// and an absent role defaults to TOURIST.
func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	l := s.logger.With(slog.String("method", "Register"))

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Two sequential existence checks, username first. The unique
	// constraints in CreateUser remain authoritative under races.
	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: username is already taken", api.ErrConflict)
	}
	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: email is already registered", api.ErrConflict)
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	role, err := resolveRole(req.Role, count == 0)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		l.InfoContext(ctx, "First user registration - assigning ADMIN role", slog.String("username", username))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	// Single insert: user and token state commit together or not at all.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	l.InfoContext(ctx, "User registered successfully",
		slog.String("username", user.Username),
		slog.String("role", user.Role.String()),
	)

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Role:         user.Role.String(),
	}, nil
}

// Login verifies credentials and issues a fresh token pair, overwriting the
// stored refresh token. Unknown username and wrong password collapse into
// the same error so the response cannot be used for username enumeration.
func (s *AuthServiceImpl) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	l := s.logger.With(slog.String("method", "Login"))

	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			// Burn a bcrypt compare anyway so timing does not leak
			// whether the username exists.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, api.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		l.WarnContext(ctx, "Login failed", slog.String("username", username))
		return nil, api.ErrUnauthenticated
	}

	if !user.Active {
		return nil, api.ErrAccountDeactivated
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.repo.SetRefreshToken(ctx, user.ID, refreshToken, time.Now()); err != nil {
		return nil, err
	}

	l.InfoContext(ctx, "User logged in", slog.String("username", user.Username))

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Role:         user.Role.String(),
	}, nil
}

// RefreshToken rotates the presented refresh token for a new pair. A token
// is accepted only if it verifies against the user AND matches the stored
// value: a syntactically valid token that has been rotated out is rejected
// before its expiry. Each token is therefore usable exactly once.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, presented string) (*AuthResponse, error) {
	l := s.logger.With(slog.String("method", "RefreshToken"))

	subject, err := s.tokens.ParseSubject(presented)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrInvalidToken, err)
	}

	user, err := s.repo.GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.tokens.IsValid(presented, user) {
		return nil, api.ErrInvalidToken
	}
	if user.RefreshToken == nil || *user.RefreshToken != presented {
		l.WarnContext(ctx, "Refresh token does not match stored value", slog.String("username", user.Username))
		return nil, api.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	// Compare-and-swap: a concurrent rotation of the same token wins at
	// most once; the loser must re-authenticate.
	if err := s.repo.RotateRefreshToken(ctx, user.ID, presented, refreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Role:         user.Role.String(),
	}, nil
}

// Logout clears the stored refresh token. Only the subject lookup is
// required: logging out twice with an already-cleared token succeeds, so
// the operation is idempotent.
func (s *AuthServiceImpl) Logout(ctx context.Context, presented string) error {
	subject, err := s.tokens.ParseSubject(presented)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrInvalidToken, err)
	}

	user, err := s.repo.GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return api.ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.repo.ClearRefreshToken(ctx, user.ID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "User logged out", slog.String("username", user.Username))
	return nil
}

// dummyHash is a bcrypt hash of an unguessable value, compared against when
// the username does not exist.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func validateRegistration(req RegisterRequest) error {
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

func resolveRole(requested string, firstUser bool) (types.Role, error) {
	if firstUser {
		return types.RoleAdmin, nil
	}
	if strings.TrimSpace(requested) == "" {
		return types.DefaultRole, nil
	}
	role, err := types.ParseRole(requested)
	if err != nil {
		return "", &api.ValidationError{Fields: map[string]string{"role": "Unknown role"}}
	}
	if role.IsPrivileged() {
		return "", fmt.Errorf("%w: ADMIN role cannot be requested", api.ErrForbidden)
	}
	return role, nil
}
