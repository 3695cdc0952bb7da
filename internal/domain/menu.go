package domain

type MenuItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Icon      string  `json:"icon"`
	Available bool    `json:"available"`
}
