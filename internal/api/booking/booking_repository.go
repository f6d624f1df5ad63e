package booking

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

var _ Repository = (*PostgresBookingRepository)(nil)

type Repository interface {
	CreateHotelBooking(ctx context.Context, b *types.HotelBooking) error
	GetHotelBooking(ctx context.Context, id uuid.UUID) (*types.HotelBooking, error)
	ListHotelBookingsByUser(ctx context.Context, userID uuid.UUID) ([]types.HotelBooking, error)
	UpdateHotelBookingStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error

	CreateRestaurantReservation(ctx context.Context, res *types.RestaurantReservation) error
	GetRestaurantReservation(ctx context.Context, id uuid.UUID) (*types.RestaurantReservation, error)
	ListRestaurantReservationsByUser(ctx context.Context, userID uuid.UUID) ([]types.RestaurantReservation, error)
	UpdateRestaurantReservationStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error

	CreateTheatreBooking(ctx context.Context, b *types.TheatreBooking) error
	GetTheatreBooking(ctx context.Context, id uuid.UUID) (*types.TheatreBooking, error)
	ListTheatreBookingsByUser(ctx context.Context, userID uuid.UUID) ([]types.TheatreBooking, error)
	UpdateTheatreBookingStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error
}

type PostgresBookingRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresBookingRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const hotelBookingColumns = `id, user_id, hotel_id, check_in_date, check_out_date,
       number_of_guests, total_price, status, booking_date`

func scanHotelBooking(row pgx.Row) (*types.HotelBooking, error) {
	var b types.HotelBooking
	err := row.Scan(
		&b.ID, &b.UserID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
		&b.NumberOfGuests, &b.TotalPrice, &b.Status, &b.BookingDate,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBookingRepository) CreateHotelBooking(ctx context.Context, b *types.HotelBooking) error {
	query := `
        INSERT INTO hotel_bookings (
            id, user_id, hotel_id, check_in_date, check_out_date,
            number_of_guests, total_price, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING booking_date`
	err := r.pgpool.QueryRow(ctx, query,
		b.ID, b.UserID, b.HotelID, b.CheckInDate, b.CheckOutDate,
		b.NumberOfGuests, b.TotalPrice, b.Status,
	).Scan(&b.BookingDate)
	if err != nil {
		return fmt.Errorf("failed to insert hotel booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepository) GetHotelBooking(ctx context.Context, id uuid.UUID) (*types.HotelBooking, error) {
	b, err := scanHotelBooking(r.pgpool.QueryRow(ctx,
		`SELECT `+hotelBookingColumns+` FROM hotel_bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel booking: %w", err)
	}
	return b, nil
}

func (r *PostgresBookingRepository) ListHotelBookingsByUser(ctx context.Context, userID uuid.UUID) ([]types.HotelBooking, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+hotelBookingColumns+` FROM hotel_bookings WHERE user_id = $1 ORDER BY booking_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotel bookings: %w", err)
	}
	defer rows.Close()

	var bookings []types.HotelBooking
	for rows.Next() {
		b, err := scanHotelBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PostgresBookingRepository) UpdateHotelBookingStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE hotel_bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update hotel booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const reservationColumns = `id, user_id, restaurant_id, reservation_date, reservation_time,
       party_size, status, created_at`

func scanReservation(row pgx.Row) (*types.RestaurantReservation, error) {
	var res types.RestaurantReservation
	err := row.Scan(
		&res.ID, &res.UserID, &res.RestaurantID, &res.ReservationDate, &res.ReservationTime,
		&res.PartySize, &res.Status, &res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresBookingRepository) CreateRestaurantReservation(ctx context.Context, res *types.RestaurantReservation) error {
	query := `
        INSERT INTO restaurant_reservations (
            id, user_id, restaurant_id, reservation_date, reservation_time,
            party_size, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`
	err := r.pgpool.QueryRow(ctx, query,
		res.ID, res.UserID, res.RestaurantID, res.ReservationDate, res.ReservationTime,
		res.PartySize, res.Status,
	).Scan(&res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert restaurant reservation: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepository) GetRestaurantReservation(ctx context.Context, id uuid.UUID) (*types.RestaurantReservation, error) {
	res, err := scanReservation(r.pgpool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM restaurant_reservations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant reservation: %w", err)
	}
	return res, nil
}

func (r *PostgresBookingRepository) ListRestaurantReservationsByUser(ctx context.Context, userID uuid.UUID) ([]types.RestaurantReservation, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+reservationColumns+` FROM restaurant_reservations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant reservations: %w", err)
	}
	defer rows.Close()

	var reservations []types.RestaurantReservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *PostgresBookingRepository) UpdateRestaurantReservationStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE restaurant_reservations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update restaurant reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const theatreBookingColumns = `id, user_id, theatre_id, show_time, number_of_tickets,
       total_price, seat_numbers, status, booking_date`

func scanTheatreBooking(row pgx.Row) (*types.TheatreBooking, error) {
	var b types.TheatreBooking
	err := row.Scan(
		&b.ID, &b.UserID, &b.TheatreID, &b.ShowTime, &b.NumberOfTickets,
		&b.TotalPrice, &b.SeatNumbers, &b.Status, &b.BookingDate,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBookingRepository) CreateTheatreBooking(ctx context.Context, b *types.TheatreBooking) error {
	query := `
        INSERT INTO theatre_bookings (
            id, user_id, theatre_id, show_time, number_of_tickets,
            total_price, seat_numbers, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING booking_date`
	err := r.pgpool.QueryRow(ctx, query,
		b.ID, b.UserID, b.TheatreID, b.ShowTime, b.NumberOfTickets,
		b.TotalPrice, b.SeatNumbers, b.Status,
	).Scan(&b.BookingDate)
	if err != nil {
		return fmt.Errorf("failed to insert theatre booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepository) GetTheatreBooking(ctx context.Context, id uuid.UUID) (*types.TheatreBooking, error) {
	b, err := scanTheatreBooking(r.pgpool.QueryRow(ctx,
		`SELECT `+theatreBookingColumns+` FROM theatre_bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get theatre booking: %w", err)
	}
	return b, nil
}

func (r *PostgresBookingRepository) ListTheatreBookingsByUser(ctx context.Context, userID uuid.UUID) ([]types.TheatreBooking, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+theatreBookingColumns+` FROM theatre_bookings WHERE user_id = $1 ORDER BY booking_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theatre bookings: %w", err)
	}
	defer rows.Close()

	var bookings []types.TheatreBooking
	for rows.Next() {
		b, err := scanTheatreBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan theatre booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PostgresBookingRepository) UpdateTheatreBookingStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE theatre_bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update theatre booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
