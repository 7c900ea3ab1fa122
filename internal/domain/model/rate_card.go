package model

// RateCardUpdate is the content of a new steel rate card version.
type RateCardUpdate struct {
	DefaultRatePerKg *float64       `json:"default_rate_per_kg,omitempty" example:"70"`
	RatesByDiameter  map[int]float64 `json:"rates_by_diameter,omitempty"`
	Currency         string          `json:"currency,omitempty" example:"INR"`
}
