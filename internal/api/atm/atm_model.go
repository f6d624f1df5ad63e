package atm

type UpsertATMRequest struct {
	Name        string `json:"name"`
	BankName    string `json:"bank_name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}
