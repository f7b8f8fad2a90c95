package dto

type PromoResponseDTO struct {
	Code            string `json:"code" example:"TEST10"`
	DiscountPercent int    `json:"discount_percent" example:"10"`
	ExpiresAt       string `json:"expires_at" example:"2030-01-01T00:00:00Z"`
	UsesLeft        *int   `json:"uses_left,omitempty" example:"5"`
}

type PickupPointDTO struct {
	ID         int      `json:"id" example:"1"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Latitude   float64  `json:"latitude" example:"55.7558"`
	Longitude  float64  `json:"longitude" example:"37.6173"`
	Rating     float64  `json:"rating" example:"4.8"`
	DistanceKm *float64 `json:"distance_km,omitempty" example:"1.25"`
}

type FormatDTO struct {
	Name  string `json:"name" example:"10x15"`
	Price string `json:"price" example:"20.00"`
}

type QuoteRequestDTO struct {
	Items []LineItemDTO `json:"items"`
}

type QuoteResponseDTO struct {
	Copies            int    `json:"copies" example:"60"`
	RawTotal          string `json:"raw_total" example:"1200.00"`
	Total             string `json:"total" example:"1140.00"`
	ThresholdDiscount string `json:"threshold_discount" example:"60.00"`
}
