package booking

import (
	"time"

	"github.com/google/uuid"
)

// DateOnly is the wire format for calendar dates on booking requests.
const DateOnly = "2006-01-02"

type CreateHotelBookingRequest struct {
	HotelID        uuid.UUID `json:"hotel_id"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	NumberOfGuests int       `json:"number_of_guests"`
}

type CreateRestaurantReservationRequest struct {
	RestaurantID    uuid.UUID `json:"restaurant_id"`
	ReservationDate string    `json:"reservation_date"`
	ReservationTime string    `json:"reservation_time"`
	PartySize       int       `json:"party_size"`
}

type CreateTheatreBookingRequest struct {
	TheatreID       uuid.UUID `json:"theatre_id"`
	ShowTime        time.Time `json:"show_time"`
	NumberOfTickets int       `json:"number_of_tickets"`
	TotalPrice      float64   `json:"total_price"`
	SeatNumbers     string    `json:"seat_numbers"`
}
