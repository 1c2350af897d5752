package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"larisa/internal/domains/payment/model/dto"
)

func TestIntentRequest_MinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{price: 25.5, want: 2550},
		{price: 120, want: 12000},
		{price: 19.99, want: 1999},
		{price: 1.005, want: 100},
	}

	for _, tt := range tests {
		req := dto.IntentRequest{Price: tt.price}
		assert.Equal(t, tt.want, req.MinorUnits(), "price %v", tt.price)
	}
}
