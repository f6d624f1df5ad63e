package hotel

// UpsertHotelRequest carries the writable fields for creating or
// updating a hotel listing.
type UpsertHotelRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	Description   string  `json:"description"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	StarRating    int     `json:"star_rating"`
	Rating        float64 `json:"rating"`
	StartingPrice float64 `json:"starting_price"`
	ImageURL      string  `json:"image_url"`
	Active        *bool   `json:"active"`
}
