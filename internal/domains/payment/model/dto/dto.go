package dto

import "math"

type IntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=999999999"`
}

// MinorUnits converts a major-unit price into the integer amount the payment
// processor charges, rounding half away from zero.
func (r *IntentRequest) MinorUnits() int64 {
	return int64(math.Round(r.Price * 100))
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
