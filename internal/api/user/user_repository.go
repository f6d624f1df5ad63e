package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Repository = (*PostgresUserRepository)(nil)

type Repository interface {
	ListUsers(ctx context.Context) ([]types.User, error)
	ListUsersByRole(ctx context.Context, role types.Role) ([]types.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	CreateUser(ctx context.Context, u *types.User) error
	UpdateUser(ctx context.Context, u *types.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListTouristProfiles(ctx context.Context) ([]types.TouristProfile, error)
	GetTouristProfile(ctx context.Context, userID uuid.UUID) (*types.TouristProfile, error)
	UpsertTouristProfile(ctx context.Context, p *types.TouristProfile) error
}

type PostgresUserRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresUserRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{
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
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]types.User, error) {
	defer rows.Close()
	var users []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]types.User, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return collectUsers(rows)
}

func (r *PostgresUserRepository) ListUsersByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY username`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return collectUsers(rows)
}

func (r *PostgresUserRepository) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	u, err := scanUser(r.pgpool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u *types.User) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, username, email,
		        password_hash, role, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.FirstName, u.LastName, u.Username, u.Email,
		u.Password, u.Role, u.Active, u.CreatedAt,
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

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u *types.User) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users
		 SET first_name = $2, last_name = $3, email = $4, role = $5, active = $6
		 WHERE id = $1`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email already registered", api.ErrConflict)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const touristProfileColumns = `user_id, nationality, preferences, interests, updated_at`

func scanTouristProfile(row pgx.Row) (*types.TouristProfile, error) {
	var p types.TouristProfile
	err := row.Scan(&p.UserID, &p.Nationality, &p.Preferences, &p.Interests, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresUserRepository) ListTouristProfiles(ctx context.Context) ([]types.TouristProfile, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+touristProfileColumns+` FROM tourist_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tourist profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.TouristProfile
	for rows.Next() {
		p, err := scanTouristProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tourist profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *PostgresUserRepository) GetTouristProfile(ctx context.Context, userID uuid.UUID) (*types.TouristProfile, error) {
	p, err := scanTouristProfile(r.pgpool.QueryRow(ctx,
		`SELECT `+touristProfileColumns+` FROM tourist_profiles WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tourist profile: %w", err)
	}
	return p, nil
}

// UpsertTouristProfile inserts the profile row on first save and
// overwrites it afterwards.
func (r *PostgresUserRepository) UpsertTouristProfile(ctx context.Context, p *types.TouristProfile) error {
	query := `
        INSERT INTO tourist_profiles (user_id, nationality, preferences, interests, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET nationality = EXCLUDED.nationality,
            preferences = EXCLUDED.preferences,
            interests = EXCLUDED.interests,
            updated_at = NOW()
        RETURNING updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		p.UserID, p.Nationality, p.Preferences, p.Interests,
	).Scan(&p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the owning user does not exist
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return api.ErrNotFound
		}
		return fmt.Errorf("failed to upsert tourist profile: %w", err)
	}
	return nil
}
