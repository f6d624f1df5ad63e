package hotel

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

var _ Repository = (*PostgresHotelRepository)(nil)

type Repository interface {
	ListHotels(ctx context.Context) ([]types.Hotel, error)
	GetHotel(ctx context.Context, id uuid.UUID) (*types.Hotel, error)
	SearchHotelsByName(ctx context.Context, name string) ([]types.Hotel, error)
	CreateHotel(ctx context.Context, h *types.Hotel) error
	UpdateHotel(ctx context.Context, h *types.Hotel) error
	DeleteHotel(ctx context.Context, id uuid.UUID) error
}

type PostgresHotelRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresHotelRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresHotelRepository {
	return &PostgresHotelRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const hotelColumns = `id, name, address, email, phone_number, description,
       min_price, max_price, star_rating, rating, starting_price,
       image_url, active, created_at, updated_at`

func scanHotel(row pgx.Row) (*types.Hotel, error) {
	var h types.Hotel
	err := row.Scan(
		&h.ID, &h.Name, &h.Address, &h.Email, &h.PhoneNumber, &h.Description,
		&h.MinPrice, &h.MaxPrice, &h.StarRating, &h.Rating, &h.StartingPrice,
		&h.ImageURL, &h.Active, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresHotelRepository) ListHotels(ctx context.Context) ([]types.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels ORDER BY name`
	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []types.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

func (r *PostgresHotelRepository) GetHotel(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1`
	h, err := scanHotel(r.pgpool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return h, nil
}

func (r *PostgresHotelRepository) SearchHotelsByName(ctx context.Context, name string) ([]types.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	rows, err := r.pgpool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	defer rows.Close()

	var hotels []types.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

func (r *PostgresHotelRepository) CreateHotel(ctx context.Context, h *types.Hotel) error {
	query := `
        INSERT INTO hotels (
            id, name, address, email, phone_number, description,
            min_price, max_price, star_rating, rating, starting_price,
            image_url, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		h.ID, h.Name, h.Address, h.Email, h.PhoneNumber, h.Description,
		h.MinPrice, h.MaxPrice, h.StarRating, h.Rating, h.StartingPrice,
		h.ImageURL, h.Active,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hotel: %w", err)
	}
	return nil
}

func (r *PostgresHotelRepository) UpdateHotel(ctx context.Context, h *types.Hotel) error {
	query := `
        UPDATE hotels
        SET name = $2, address = $3, email = $4, phone_number = $5,
            description = $6, min_price = $7, max_price = $8,
            star_rating = $9, rating = $10, starting_price = $11,
            image_url = $12, active = $13, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		h.ID, h.Name, h.Address, h.Email, h.PhoneNumber, h.Description,
		h.MinPrice, h.MaxPrice, h.StarRating, h.Rating, h.StartingPrice,
		h.ImageURL, h.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresHotelRepository) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
