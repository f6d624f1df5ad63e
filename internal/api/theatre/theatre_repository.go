package theatre

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

var _ Repository = (*PostgresTheatreRepository)(nil)

type Repository interface {
	ListTheatres(ctx context.Context) ([]types.Theatre, error)
	GetTheatre(ctx context.Context, id uuid.UUID) (*types.Theatre, error)
	CreateTheatre(ctx context.Context, t *types.Theatre) error
	UpdateTheatre(ctx context.Context, t *types.Theatre) error
	DeleteTheatre(ctx context.Context, id uuid.UUID) error
}

type PostgresTheatreRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresTheatreRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresTheatreRepository {
	return &PostgresTheatreRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const theatreColumns = `id, name, address, rating, description, contact_number,
       image_url, created_at, updated_at`

func scanTheatre(row pgx.Row) (*types.Theatre, error) {
	var t types.Theatre
	err := row.Scan(
		&t.ID, &t.Name, &t.Address, &t.Rating, &t.Description, &t.ContactNumber,
		&t.ImageURL, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTheatreRepository) ListTheatres(ctx context.Context) ([]types.Theatre, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+theatreColumns+` FROM theatres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list theatres: %w", err)
	}
	defer rows.Close()

	var theatres []types.Theatre
	for rows.Next() {
		t, err := scanTheatre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan theatre: %w", err)
		}
		theatres = append(theatres, *t)
	}
	return theatres, rows.Err()
}

func (r *PostgresTheatreRepository) GetTheatre(ctx context.Context, id uuid.UUID) (*types.Theatre, error) {
	t, err := scanTheatre(r.pgpool.QueryRow(ctx, `SELECT `+theatreColumns+` FROM theatres WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get theatre: %w", err)
	}
	return t, nil
}

func (r *PostgresTheatreRepository) CreateTheatre(ctx context.Context, t *types.Theatre) error {
	query := `
        INSERT INTO theatres (
            id, name, address, rating, description, contact_number, image_url
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		t.ID, t.Name, t.Address, t.Rating, t.Description, t.ContactNumber, t.ImageURL,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert theatre: %w", err)
	}
	return nil
}

func (r *PostgresTheatreRepository) UpdateTheatre(ctx context.Context, t *types.Theatre) error {
	query := `
        UPDATE theatres
        SET name = $2, address = $3, rating = $4, description = $5,
            contact_number = $6, image_url = $7, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		t.ID, t.Name, t.Address, t.Rating, t.Description, t.ContactNumber, t.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update theatre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresTheatreRepository) DeleteTheatre(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM theatres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete theatre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
