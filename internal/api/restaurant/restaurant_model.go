package restaurant

type UpsertRestaurantRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	StarRating    int     `json:"star_rating"`
	Rating        float64 `json:"rating"`
	PriceRange    string  `json:"price_range"`
	Description   string  `json:"description"`
	CuisineType   string  `json:"cuisine_type"`
	ContactNumber string  `json:"contact_number"`
	ImageURL      string  `json:"image_url"`
}
