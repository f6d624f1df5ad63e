package booking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/api/hotel"
	"github.com/tmendes/go-smartcity-services/internal/api/restaurant"
	"github.com/tmendes/go-smartcity-services/internal/api/theatre"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	BookHotel(ctx context.Context, userID uuid.UUID, req CreateHotelBookingRequest) (*types.HotelBooking, error)
	ListHotelBookings(ctx context.Context, userID uuid.UUID) ([]types.HotelBooking, error)
	CancelHotelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*types.HotelBooking, error)

	ReserveRestaurant(ctx context.Context, userID uuid.UUID, req CreateRestaurantReservationRequest) (*types.RestaurantReservation, error)
	ListRestaurantReservations(ctx context.Context, userID uuid.UUID) ([]types.RestaurantReservation, error)
	CancelRestaurantReservation(ctx context.Context, userID, reservationID uuid.UUID) (*types.RestaurantReservation, error)

	BookTheatre(ctx context.Context, userID uuid.UUID, req CreateTheatreBookingRequest) (*types.TheatreBooking, error)
	ListTheatreBookings(ctx context.Context, userID uuid.UUID) ([]types.TheatreBooking, error)
	CancelTheatreBooking(ctx context.Context, userID, bookingID uuid.UUID) (*types.TheatreBooking, error)
}

// ServiceImpl verifies the target venue exists before writing a booking
// and scopes every read and cancellation to the owning user.
type ServiceImpl struct {
	logger      *slog.Logger
	repo        Repository
	hotels      hotel.Repository
	restaurants restaurant.Repository
	theatres    theatre.Repository
}

func NewServiceImpl(
	repo Repository,
	hotels hotel.Repository,
	restaurants restaurant.Repository,
	theatres theatre.Repository,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		repo:        repo,
		hotels:      hotels,
		restaurants: restaurants,
		theatres:    theatres,
	}
}

func (s *ServiceImpl) BookHotel(ctx context.Context, userID uuid.UUID, req CreateHotelBookingRequest) (*types.HotelBooking, error) {
	fields := make(map[string]string)
	checkIn, err := time.Parse(DateOnly, req.CheckInDate)
	if err != nil {
		fields["check_in_date"] = "check_in_date must be formatted as YYYY-MM-DD"
	}
	checkOut, err := time.Parse(DateOnly, req.CheckOutDate)
	if err != nil {
		fields["check_out_date"] = "check_out_date must be formatted as YYYY-MM-DD"
	}
	if len(fields) == 0 && !checkOut.After(checkIn) {
		fields["check_out_date"] = "check_out_date must be after check_in_date"
	}
	if req.NumberOfGuests < 1 {
		fields["number_of_guests"] = "number_of_guests must be at least 1"
	}
	if req.HotelID == uuid.Nil {
		fields["hotel_id"] = "hotel_id is required"
	}
	if len(fields) > 0 {
		return nil, &api.ValidationError{Fields: fields}
	}

	h, err := s.hotels.GetHotel(ctx, req.HotelID)
	if err != nil {
		return nil, err
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	b := &types.HotelBooking{
		ID:             uuid.New(),
		UserID:         userID,
		HotelID:        h.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     float64(nights) * h.StartingPrice,
		Status:         types.BookingConfirmed,
	}
	if err := s.repo.CreateHotelBooking(ctx, b); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Hotel booked",
		slog.String("booking_id", b.ID.String()),
		slog.String("hotel_id", h.ID.String()),
	)
	return b, nil
}

func (s *ServiceImpl) ListHotelBookings(ctx context.Context, userID uuid.UUID) ([]types.HotelBooking, error) {
	return s.repo.ListHotelBookingsByUser(ctx, userID)
}

func (s *ServiceImpl) CancelHotelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*types.HotelBooking, error) {
	b, err := s.repo.GetHotelBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, api.ErrForbidden
	}
	if b.Status == types.BookingCancelled {
		return b, nil
	}
	if err := s.repo.UpdateHotelBookingStatus(ctx, bookingID, types.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = types.BookingCancelled
	s.logger.InfoContext(ctx, "Hotel booking cancelled", slog.String("booking_id", bookingID.String()))
	return b, nil
}

func (s *ServiceImpl) ReserveRestaurant(ctx context.Context, userID uuid.UUID, req CreateRestaurantReservationRequest) (*types.RestaurantReservation, error) {
	fields := make(map[string]string)
	date, err := time.Parse(DateOnly, req.ReservationDate)
	if err != nil {
		fields["reservation_date"] = "reservation_date must be formatted as YYYY-MM-DD"
	}
	if strings.TrimSpace(req.ReservationTime) == "" {
		fields["reservation_time"] = "reservation_time is required"
	}
	if req.PartySize < 1 {
		fields["party_size"] = "party_size must be at least 1"
	}
	if req.RestaurantID == uuid.Nil {
		fields["restaurant_id"] = "restaurant_id is required"
	}
	if len(fields) > 0 {
		return nil, &api.ValidationError{Fields: fields}
	}

	rest, err := s.restaurants.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	res := &types.RestaurantReservation{
		ID:              uuid.New(),
		UserID:          userID,
		RestaurantID:    rest.ID,
		ReservationDate: date,
		ReservationTime: strings.TrimSpace(req.ReservationTime),
		PartySize:       req.PartySize,
		Status:          types.BookingConfirmed,
	}
	if err := s.repo.CreateRestaurantReservation(ctx, res); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Restaurant reserved",
		slog.String("reservation_id", res.ID.String()),
		slog.String("restaurant_id", rest.ID.String()),
	)
	return res, nil
}

func (s *ServiceImpl) ListRestaurantReservations(ctx context.Context, userID uuid.UUID) ([]types.RestaurantReservation, error) {
	return s.repo.ListRestaurantReservationsByUser(ctx, userID)
}

func (s *ServiceImpl) CancelRestaurantReservation(ctx context.Context, userID, reservationID uuid.UUID) (*types.RestaurantReservation, error) {
	res, err := s.repo.GetRestaurantReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, api.ErrForbidden
	}
	if res.Status == types.BookingCancelled {
		return res, nil
	}
	if err := s.repo.UpdateRestaurantReservationStatus(ctx, reservationID, types.BookingCancelled); err != nil {
		return nil, err
	}
	res.Status = types.BookingCancelled
	s.logger.InfoContext(ctx, "Restaurant reservation cancelled", slog.String("reservation_id", reservationID.String()))
	return res, nil
}

func (s *ServiceImpl) BookTheatre(ctx context.Context, userID uuid.UUID, req CreateTheatreBookingRequest) (*types.TheatreBooking, error) {
	fields := make(map[string]string)
	if req.ShowTime.IsZero() {
		fields["show_time"] = "show_time is required"
	}
	if req.NumberOfTickets < 1 {
		fields["number_of_tickets"] = "number_of_tickets must be at least 1"
	}
	if req.TotalPrice < 0 {
		fields["total_price"] = "total_price must not be negative"
	}
	if req.TheatreID == uuid.Nil {
		fields["theatre_id"] = "theatre_id is required"
	}
	if len(fields) > 0 {
		return nil, &api.ValidationError{Fields: fields}
	}

	t, err := s.theatres.GetTheatre(ctx, req.TheatreID)
	if err != nil {
		return nil, err
	}

	b := &types.TheatreBooking{
		ID:              uuid.New(),
		UserID:          userID,
		TheatreID:       t.ID,
		ShowTime:        req.ShowTime,
		NumberOfTickets: req.NumberOfTickets,
		TotalPrice:      req.TotalPrice,
		SeatNumbers:     strings.TrimSpace(req.SeatNumbers),
		Status:          types.BookingConfirmed,
	}
	if err := s.repo.CreateTheatreBooking(ctx, b); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Theatre booked",
		slog.String("booking_id", b.ID.String()),
		slog.String("theatre_id", t.ID.String()),
	)
	return b, nil
}

func (s *ServiceImpl) ListTheatreBookings(ctx context.Context, userID uuid.UUID) ([]types.TheatreBooking, error) {
	return s.repo.ListTheatreBookingsByUser(ctx, userID)
}

func (s *ServiceImpl) CancelTheatreBooking(ctx context.Context, userID, bookingID uuid.UUID) (*types.TheatreBooking, error) {
	b, err := s.repo.GetTheatreBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, api.ErrForbidden
	}
	if b.Status == types.BookingCancelled {
		return b, nil
	}
	if err := s.repo.UpdateTheatreBookingStatus(ctx, bookingID, types.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = types.BookingCancelled
	s.logger.InfoContext(ctx, "Theatre booking cancelled", slog.String("booking_id", bookingID.String()))
	return b, nil
}
