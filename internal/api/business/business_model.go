package business

import "github.com/google/uuid"

type UpsertBusinessRequest struct {
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Website     string `json:"website"`
	Active      *bool  `json:"active"`
}

type UpsertNewsRequest struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IndustryID uuid.UUID `json:"industry_id"`
}

type UpsertCenterRequest struct {
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Address     string `json:"address"`
	Description string `json:"description"`
}
