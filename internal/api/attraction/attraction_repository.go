package attraction

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

var _ Repository = (*PostgresAttractionRepository)(nil)

type Repository interface {
	ListAttractions(ctx context.Context) ([]types.Attraction, error)
	GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error)
	ListAttractionsByCategory(ctx context.Context, category string) ([]types.Attraction, error)
	CreateAttraction(ctx context.Context, a *types.Attraction) error
	UpdateAttraction(ctx context.Context, a *types.Attraction) error
	DeleteAttraction(ctx context.Context, id uuid.UUID) error
}

type PostgresAttractionRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresAttractionRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresAttractionRepository {
	return &PostgresAttractionRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const attractionColumns = `id, name, category, ticket_price, description, address,
       contact_number, image_url, created_at, updated_at`

func scanAttraction(row pgx.Row) (*types.Attraction, error) {
	var a types.Attraction
	err := row.Scan(
		&a.ID, &a.Name, &a.Category, &a.TicketPrice, &a.Description, &a.Address,
		&a.ContactNumber, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAttractions(rows pgx.Rows) ([]types.Attraction, error) {
	defer rows.Close()
	var attractions []types.Attraction
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attraction: %w", err)
		}
		attractions = append(attractions, *a)
	}
	return attractions, rows.Err()
}

func (r *PostgresAttractionRepository) ListAttractions(ctx context.Context) ([]types.Attraction, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+attractionColumns+` FROM attractions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attractions: %w", err)
	}
	return collectAttractions(rows)
}

func (r *PostgresAttractionRepository) GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error) {
	a, err := scanAttraction(r.pgpool.QueryRow(ctx, `SELECT `+attractionColumns+` FROM attractions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attraction: %w", err)
	}
	return a, nil
}

func (r *PostgresAttractionRepository) ListAttractionsByCategory(ctx context.Context, category string) ([]types.Attraction, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+attractionColumns+` FROM attractions WHERE category ILIKE $1 ORDER BY name`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list attractions by category: %w", err)
	}
	return collectAttractions(rows)
}

func (r *PostgresAttractionRepository) CreateAttraction(ctx context.Context, a *types.Attraction) error {
	query := `
        INSERT INTO attractions (
            id, name, category, ticket_price, description, address,
            contact_number, image_url
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		a.ID, a.Name, a.Category, a.TicketPrice, a.Description, a.Address,
		a.ContactNumber, a.ImageURL,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert attraction: %w", err)
	}
	return nil
}

func (r *PostgresAttractionRepository) UpdateAttraction(ctx context.Context, a *types.Attraction) error {
	query := `
        UPDATE attractions
        SET name = $2, category = $3, ticket_price = $4, description = $5,
            address = $6, contact_number = $7, image_url = $8, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		a.ID, a.Name, a.Category, a.TicketPrice, a.Description,
		a.Address, a.ContactNumber, a.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update attraction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresAttractionRepository) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM attractions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attraction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
