package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the credential store consumed by the auth service and the
// request gate. The users.refresh_token column holds the single live refresh
// token per user; RotateRefreshToken is compare-and-swap on that column so
// concurrent rotations of the same token succeed at most once.
type AuthRepo interface {
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *types.User) error
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token string, lastLogin time.Time) error
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, presented, next string) error
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresAuthRepo(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const userColumns = `id, first_name, last_name, username, email, password_hash,
       role, active, refresh_token, last_login, created_at`

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.Password,
		&u.Role, &u.Active, &u.RefreshToken, &u.LastLogin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *PostgresAuthRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresAuthRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresAuthRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CreateUser inserts the full user record, refresh token included, as one
// statement. The unique constraints on username and email are authoritative:
// a duplicate slipping past the advisory existence checks surfaces as
// ErrConflict here.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, user *types.User) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, username, email,
		        password_hash, role, active, refresh_token, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.FirstName, user.LastName, user.Username, user.Email,
		user.Password, user.Role, user.Active, user.RefreshToken, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username or email already taken", api.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *PostgresAuthRepo) SetRefreshToken(ctx context.Context, userID uuid.UUID, token string, lastLogin time.Time) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users SET refresh_token = $1, last_login = $2 WHERE id = $3`,
		token, lastLogin, userID)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

// RotateRefreshToken replaces the stored token only if the presented value
// still matches. A concurrent rotation that got there first leaves zero rows
// affected and the loser sees ErrInvalidToken.
func (r *PostgresAuthRepo) RotateRefreshToken(ctx context.Context, userID uuid.UUID, presented, next string) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users SET refresh_token = $1 WHERE id = $2 AND refresh_token = $3`,
		next, userID, presented)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrInvalidToken
	}
	return nil
}

// ClearRefreshToken logs the user out server-side. Clearing an already-clear
// token is not an error: logout is idempotent.
func (r *PostgresAuthRepo) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pgpool.Exec(ctx,
		`UPDATE users SET refresh_token = NULL WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
