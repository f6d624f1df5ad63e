package education

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Repository = (*PostgresEducationRepository)(nil)

type Repository interface {
	ListUniversities(ctx context.Context) ([]types.University, error)
	GetUniversity(ctx context.Context, id uuid.UUID) (*types.University, error)
	CreateUniversity(ctx context.Context, u *types.University) error
	UpdateUniversity(ctx context.Context, u *types.University) error
	DeleteUniversity(ctx context.Context, id uuid.UUID) error

	ListColleges(ctx context.Context) ([]types.College, error)
	GetCollege(ctx context.Context, id uuid.UUID) (*types.College, error)
	SearchColleges(ctx context.Context, query string) ([]types.College, error)
	CreateCollege(ctx context.Context, c *types.College) error
	UpdateCollege(ctx context.Context, c *types.College) error
	DeleteCollege(ctx context.Context, id uuid.UUID) error

	ListCoachingCenters(ctx context.Context) ([]types.CoachingCenter, error)
	GetCoachingCenter(ctx context.Context, id uuid.UUID) (*types.CoachingCenter, error)
	SearchCoachingCenters(ctx context.Context, query string) ([]types.CoachingCenter, error)
	CreateCoachingCenter(ctx context.Context, c *types.CoachingCenter) error
	UpdateCoachingCenter(ctx context.Context, c *types.CoachingCenter) error
	DeleteCoachingCenter(ctx context.Context, id uuid.UUID) error

	ListLibraries(ctx context.Context) ([]types.Library, error)
	GetLibrary(ctx context.Context, id uuid.UUID) (*types.Library, error)
	CreateLibrary(ctx context.Context, l *types.Library) error
	UpdateLibrary(ctx context.Context, l *types.Library) error
	DeleteLibrary(ctx context.Context, id uuid.UUID) error
}

type PostgresEducationRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresEducationRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresEducationRepository {
	return &PostgresEducationRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const universityColumns = `id, name, address, contact, open_time, close_time,
       image_url, description, active, created_at, updated_at`

func scanUniversity(row pgx.Row) (*types.University, error) {
	var u types.University
	err := row.Scan(
		&u.ID, &u.Name, &u.Address, &u.Contact, &u.OpenTime, &u.CloseTime,
		&u.ImageURL, &u.Description, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresEducationRepository) ListUniversities(ctx context.Context) ([]types.University, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+universityColumns+` FROM universities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	defer rows.Close()

	var universities []types.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		universities = append(universities, *u)
	}
	return universities, rows.Err()
}

func (r *PostgresEducationRepository) GetUniversity(ctx context.Context, id uuid.UUID) (*types.University, error) {
	u, err := scanUniversity(r.pgpool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get university: %w", err)
	}
	return u, nil
}

func (r *PostgresEducationRepository) CreateUniversity(ctx context.Context, u *types.University) error {
	query := `
        INSERT INTO universities (
            id, name, address, contact, open_time, close_time,
            image_url, description, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		u.ID, u.Name, u.Address, u.Contact, u.OpenTime, u.CloseTime,
		u.ImageURL, u.Description, u.Active,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert university: %w", err)
	}
	return nil
}

func (r *PostgresEducationRepository) UpdateUniversity(ctx context.Context, u *types.University) error {
	query := `
        UPDATE universities
        SET name = $2, address = $3, contact = $4, open_time = $5,
            close_time = $6, image_url = $7, description = $8,
            active = $9, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		u.ID, u.Name, u.Address, u.Contact, u.OpenTime,
		u.CloseTime, u.ImageURL, u.Description, u.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const libraryColumns = `id, name, address, contact, open_time, close_time,
       image_url, description, active, created_at, updated_at`

func scanLibrary(row pgx.Row) (*types.Library, error) {
	var l types.Library
	err := row.Scan(
		&l.ID, &l.Name, &l.Address, &l.Contact, &l.OpenTime, &l.CloseTime,
		&l.ImageURL, &l.Description, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresEducationRepository) ListLibraries(ctx context.Context) ([]types.Library, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+libraryColumns+` FROM libraries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	defer rows.Close()

	var libraries []types.Library
	for rows.Next() {
		l, err := scanLibrary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library: %w", err)
		}
		libraries = append(libraries, *l)
	}
	return libraries, rows.Err()
}

func (r *PostgresEducationRepository) GetLibrary(ctx context.Context, id uuid.UUID) (*types.Library, error) {
	l, err := scanLibrary(r.pgpool.QueryRow(ctx, `SELECT `+libraryColumns+` FROM libraries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get library: %w", err)
	}
	return l, nil
}

func (r *PostgresEducationRepository) CreateLibrary(ctx context.Context, l *types.Library) error {
	query := `
        INSERT INTO libraries (
            id, name, address, contact, open_time, close_time,
            image_url, description, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		l.ID, l.Name, l.Address, l.Contact, l.OpenTime, l.CloseTime,
		l.ImageURL, l.Description, l.Active,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert library: %w", err)
	}
	return nil
}

func (r *PostgresEducationRepository) UpdateLibrary(ctx context.Context, l *types.Library) error {
	query := `
        UPDATE libraries
        SET name = $2, address = $3, contact = $4, open_time = $5,
            close_time = $6, image_url = $7, description = $8,
            active = $9, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		l.ID, l.Name, l.Address, l.Contact, l.OpenTime,
		l.CloseTime, l.ImageURL, l.Description, l.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update library: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) DeleteLibrary(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM libraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete library: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const collegeColumns = `id, name, address, contact, open_time, close_time,
       description, active, created_at, updated_at`

func scanCollege(row pgx.Row) (*types.College, error) {
	var c types.College
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.Contact, &c.OpenTime, &c.CloseTime,
		&c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectColleges(rows pgx.Rows) ([]types.College, error) {
	defer rows.Close()
	var colleges []types.College
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan college: %w", err)
		}
		colleges = append(colleges, *c)
	}
	return colleges, rows.Err()
}

func (r *PostgresEducationRepository) ListColleges(ctx context.Context) ([]types.College, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+collegeColumns+` FROM colleges ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	return collectColleges(rows)
}

func (r *PostgresEducationRepository) GetCollege(ctx context.Context, id uuid.UUID) (*types.College, error) {
	c, err := scanCollege(r.pgpool.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}
	return c, nil
}

func (r *PostgresEducationRepository) SearchColleges(ctx context.Context, query string) ([]types.College, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+collegeColumns+` FROM colleges
         WHERE name ILIKE '%' || $1 || '%' OR address ILIKE '%' || $1 || '%'
         ORDER BY name`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search colleges: %w", err)
	}
	return collectColleges(rows)
}

func (r *PostgresEducationRepository) CreateCollege(ctx context.Context, c *types.College) error {
	query := `
        INSERT INTO colleges (
            id, name, address, contact, open_time, close_time, description, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		c.ID, c.Name, c.Address, c.Contact, c.OpenTime, c.CloseTime, c.Description, c.Active,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert college: %w", err)
	}
	return nil
}

func (r *PostgresEducationRepository) UpdateCollege(ctx context.Context, c *types.College) error {
	query := `
        UPDATE colleges
        SET name = $2, address = $3, contact = $4, open_time = $5,
            close_time = $6, description = $7, active = $8, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.Contact, c.OpenTime, c.CloseTime, c.Description, c.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update college: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) DeleteCollege(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete college: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const coachingCenterColumns = `id, name, address, contact, specialization, description,
       image_url, starting_price, open_time, close_time, active, created_at, updated_at`

func scanCoachingCenter(row pgx.Row) (*types.CoachingCenter, error) {
	var c types.CoachingCenter
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.Contact, &c.Specialization, &c.Description,
		&c.ImageURL, &c.StartingPrice, &c.OpenTime, &c.CloseTime, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCoachingCenters(rows pgx.Rows) ([]types.CoachingCenter, error) {
	defer rows.Close()
	var centers []types.CoachingCenter
	for rows.Next() {
		c, err := scanCoachingCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coaching center: %w", err)
		}
		centers = append(centers, *c)
	}
	return centers, rows.Err()
}

func (r *PostgresEducationRepository) ListCoachingCenters(ctx context.Context) ([]types.CoachingCenter, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+coachingCenterColumns+` FROM coaching_centers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaching centers: %w", err)
	}
	return collectCoachingCenters(rows)
}

func (r *PostgresEducationRepository) GetCoachingCenter(ctx context.Context, id uuid.UUID) (*types.CoachingCenter, error) {
	c, err := scanCoachingCenter(r.pgpool.QueryRow(ctx,
		`SELECT `+coachingCenterColumns+` FROM coaching_centers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coaching center: %w", err)
	}
	return c, nil
}

func (r *PostgresEducationRepository) SearchCoachingCenters(ctx context.Context, query string) ([]types.CoachingCenter, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+coachingCenterColumns+` FROM coaching_centers
         WHERE name ILIKE '%' || $1 || '%' OR specialization ILIKE '%' || $1 || '%'
         ORDER BY name`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search coaching centers: %w", err)
	}
	return collectCoachingCenters(rows)
}

func (r *PostgresEducationRepository) CreateCoachingCenter(ctx context.Context, c *types.CoachingCenter) error {
	query := `
        INSERT INTO coaching_centers (
            id, name, address, contact, specialization, description,
            image_url, starting_price, open_time, close_time, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		c.ID, c.Name, c.Address, c.Contact, c.Specialization, c.Description,
		c.ImageURL, c.StartingPrice, c.OpenTime, c.CloseTime, c.Active,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert coaching center: %w", err)
	}
	return nil
}

func (r *PostgresEducationRepository) UpdateCoachingCenter(ctx context.Context, c *types.CoachingCenter) error {
	query := `
        UPDATE coaching_centers
        SET name = $2, address = $3, contact = $4, specialization = $5,
            description = $6, image_url = $7, starting_price = $8,
            open_time = $9, close_time = $10, active = $11, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.Contact, c.Specialization, c.Description,
		c.ImageURL, c.StartingPrice, c.OpenTime, c.CloseTime, c.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update coaching center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) DeleteCoachingCenter(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM coaching_centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coaching center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
