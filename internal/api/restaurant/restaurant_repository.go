package restaurant

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

var _ Repository = (*PostgresRestaurantRepository)(nil)

type Repository interface {
	ListRestaurants(ctx context.Context) ([]types.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*types.Restaurant, error)
	ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]types.Restaurant, error)
	CreateRestaurant(ctx context.Context, rest *types.Restaurant) error
	UpdateRestaurant(ctx context.Context, rest *types.Restaurant) error
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
}

type PostgresRestaurantRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresRestaurantRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const restaurantColumns = `id, name, address, star_rating, rating, price_range,
       description, cuisine_type, contact_number, image_url, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*types.Restaurant, error) {
	var rest types.Restaurant
	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Address, &rest.StarRating, &rest.Rating, &rest.PriceRange,
		&rest.Description, &rest.CuisineType, &rest.ContactNumber, &rest.ImageURL,
		&rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func collectRestaurants(rows pgx.Rows) ([]types.Restaurant, error) {
	defer rows.Close()
	var restaurants []types.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRestaurantRepository) ListRestaurants(ctx context.Context) ([]types.Restaurant, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return collectRestaurants(rows)
}

func (r *PostgresRestaurantRepository) GetRestaurant(ctx context.Context, id uuid.UUID) (*types.Restaurant, error) {
	rest, err := scanRestaurant(r.pgpool.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return rest, nil
}

func (r *PostgresRestaurantRepository) ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]types.Restaurant, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE cuisine_type ILIKE $1 ORDER BY name`, cuisine)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants by cuisine: %w", err)
	}
	return collectRestaurants(rows)
}

func (r *PostgresRestaurantRepository) CreateRestaurant(ctx context.Context, rest *types.Restaurant) error {
	query := `
        INSERT INTO restaurants (
            id, name, address, star_rating, rating, price_range,
            description, cuisine_type, contact_number, image_url
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		rest.ID, rest.Name, rest.Address, rest.StarRating, rest.Rating, rest.PriceRange,
		rest.Description, rest.CuisineType, rest.ContactNumber, rest.ImageURL,
	).Scan(&rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (r *PostgresRestaurantRepository) UpdateRestaurant(ctx context.Context, rest *types.Restaurant) error {
	query := `
        UPDATE restaurants
        SET name = $2, address = $3, star_rating = $4, rating = $5,
            price_range = $6, description = $7, cuisine_type = $8,
            contact_number = $9, image_url = $10, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		rest.ID, rest.Name, rest.Address, rest.StarRating, rest.Rating,
		rest.PriceRange, rest.Description, rest.CuisineType,
		rest.ContactNumber, rest.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresRestaurantRepository) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
