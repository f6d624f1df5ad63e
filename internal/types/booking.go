package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

type HotelBooking struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	HotelID        uuid.UUID     `json:"hotel_id"`
	CheckInDate    time.Time     `json:"check_in_date"`
	CheckOutDate   time.Time     `json:"check_out_date"`
	NumberOfGuests int           `json:"number_of_guests"`
	TotalPrice     float64       `json:"total_price"`
	Status         BookingStatus `json:"status"`
	BookingDate    time.Time     `json:"booking_date"`
}

type RestaurantReservation struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	RestaurantID    uuid.UUID     `json:"restaurant_id"`
	ReservationDate time.Time     `json:"reservation_date"`
	ReservationTime string        `json:"reservation_time"`
	PartySize       int           `json:"party_size"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

type TheatreBooking struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	TheatreID       uuid.UUID     `json:"theatre_id"`
	ShowTime        time.Time     `json:"show_time"`
	NumberOfTickets int           `json:"number_of_tickets"`
	TotalPrice      float64       `json:"total_price"`
	SeatNumbers     string        `json:"seat_numbers,omitempty"`
	Status          BookingStatus `json:"status"`
	BookingDate     time.Time     `json:"booking_date"`
}
