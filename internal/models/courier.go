package models

// Courier is a delivery tier. IsCustom marks the free-text "Other" tier
// whose actual name is supplied per order.
type Courier struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PricePerKm  float64 `json:"price_per_km"`
	IsCustom    bool    `json:"is_custom"`
}
