package types

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Email         string    `json:"email,omitempty"`
	Sector        string    `json:"sector,omitempty"`
	Address       string    `json:"address,omitempty"`
	Location      string    `json:"location,omitempty"`
	Description   string    `json:"description,omitempty"`
	Website       string    `json:"website,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Industry is the reference taxonomy job listings and business news
// attach to. Names are unique.
type Industry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobListing struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Salary        float64   `json:"salary"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Email         string    `json:"email,omitempty"`
	CompanyID     uuid.UUID `json:"company_id"`
	PostedAt      time.Time `json:"posted_at"`
}
