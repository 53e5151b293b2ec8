package models

// Product is a catalog item. Quantity is informational stock and is not
// decremented by the order flow.
type Product struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}
