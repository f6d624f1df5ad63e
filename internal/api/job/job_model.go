package job

import "github.com/google/uuid"

type UpsertCompanyRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Sector        string `json:"sector"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Website       string `json:"website"`
	LogoURL       string `json:"logo_url"`
	Active        *bool  `json:"active"`
}

type UpsertIndustryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type UpsertJobListingRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Salary        float64   `json:"salary"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
	CompanyID     uuid.UUID `json:"company_id"`
}
