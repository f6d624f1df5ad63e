package theatre

type UpsertTheatreRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Rating        float64 `json:"rating"`
	Description   string  `json:"description"`
	ContactNumber string  `json:"contact_number"`
	ImageURL      string  `json:"image_url"`
}
