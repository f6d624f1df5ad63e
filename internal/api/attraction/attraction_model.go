package attraction

type UpsertAttractionRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	TicketPrice   float64 `json:"ticket_price"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	ContactNumber string  `json:"contact_number"`
	ImageURL      string  `json:"image_url"`
}
