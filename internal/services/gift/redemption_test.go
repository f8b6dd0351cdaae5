package gift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/utils"
)

func TestRedemptionValues(t *testing.T) {
	tests := []struct {
		price    float64
		redeemed float64
	}{
		{5.00, 3.65},
		{10.00, 7.30},
		{20.00, 14.60},
		{50.00, 36.50},
		{0.99, 0.72},
		{149.99, 109.49},
	}

	for _, tt := range tests {
		got := utils.Round2(tt.price * models.GiftRedemptionRate)
		assert.InDelta(t, tt.redeemed, got, 1e-9, "price %.2f", tt.price)
	}
}

func TestRedemptionNeverExceedsPrice(t *testing.T) {
	for _, price := range []float64{0.01, 1, 9.99, 100, 999.99} {
		redeemed := utils.Round2(price * models.GiftRedemptionRate)
		assert.Less(t, redeemed, price)
		assert.Greater(t, redeemed, 0.0)
	}
}
