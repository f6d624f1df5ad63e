package education

type UpsertUniversityRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type UpsertLibraryRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type UpsertCollegeRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type UpsertCoachingCenterRequest struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Contact        string  `json:"contact"`
	Specialization string  `json:"specialization"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	StartingPrice  float64 `json:"starting_price"`
	OpenTime       string  `json:"open_time"`
	CloseTime      string  `json:"close_time"`
	Active         *bool   `json:"active"`
}
