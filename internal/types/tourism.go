package types

import (
	"time"

	"github.com/google/uuid"
)

type Hotel struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Email         string    `json:"email,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Description   string    `json:"description,omitempty"`
	MinPrice      float64   `json:"min_price"`
	MaxPrice      float64   `json:"max_price"`
	StarRating    int       `json:"star_rating"`
	Rating        float64   `json:"rating"`
	StartingPrice float64   `json:"starting_price"`
	ImageURL      string    `json:"image_url,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Restaurant struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	StarRating    int       `json:"star_rating"`
	Rating        float64   `json:"rating"`
	PriceRange    string    `json:"price_range,omitempty"`
	Description   string    `json:"description,omitempty"`
	CuisineType   string    `json:"cuisine_type,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Theatre struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Rating        float64   `json:"rating"`
	Description   string    `json:"description,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Attraction struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	TicketPrice   float64   `json:"ticket_price"`
	Description   string    `json:"description,omitempty"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ATM struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	BankName    string    `json:"bank_name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
