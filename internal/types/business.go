package types

import (
	"time"

	"github.com/google/uuid"
)

type Business struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Sector      string    `json:"sector,omitempty"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Website     string    `json:"website,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BusinessNews is an announcement published under an industry. CreatedBy
// records the admin who published it.
type BusinessNews struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IndustryID  uuid.UUID `json:"industry_id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	PublishedAt time.Time `json:"published_at"`
}

type BusinessCenter struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Sector      string    `json:"sector"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
