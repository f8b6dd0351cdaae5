package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
)

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		code    models.PaymentMethodCode
		cfg     models.JSON
		wantErr bool
	}{
		{
			name: "paypal with email",
			code: models.PaymentMethodPayPal,
			cfg:  models.JSON{"email": "payments@example.com"},
		},
		{
			name:    "paypal missing email",
			code:    models.PaymentMethodPayPal,
			cfg:     models.JSON{},
			wantErr: true,
		},
		{
			name:    "paypal nil configuration",
			code:    models.PaymentMethodPayPal,
			cfg:     nil,
			wantErr: true,
		},
		{
			name: "mpesa complete",
			code: models.PaymentMethodMpesa,
			cfg:  models.JSON{"paybill": "522522", "account_instructions": "Use your username"},
		},
		{
			name:    "mpesa missing paybill",
			code:    models.PaymentMethodMpesa,
			cfg:     models.JSON{"account_instructions": "Use your username"},
			wantErr: true,
		},
		{
			name:    "mpesa empty field",
			code:    models.PaymentMethodMpesa,
			cfg:     models.JSON{"paybill": "", "account_instructions": "x"},
			wantErr: true,
		},
		{
			name:    "mpesa non-string field",
			code:    models.PaymentMethodMpesa,
			cfg:     models.JSON{"paybill": 522522, "account_instructions": "x"},
			wantErr: true,
		},
		{
			name: "bank transfer complete",
			code: models.PaymentMethodBank,
			cfg: models.JSON{
				"bank_name":      "Equity Bank",
				"account_number": "0123456789",
				"beneficiary":    "Amora Ltd",
			},
		},
		{
			name:    "bank transfer missing beneficiary",
			code:    models.PaymentMethodBank,
			cfg:     models.JSON{"bank_name": "Equity Bank", "account_number": "0123456789"},
			wantErr: true,
		},
		{
			name: "unknown code accepts anything",
			code: models.PaymentMethodCode("CRYPTO"),
			cfg:  models.JSON{"whatever": 42},
		},
		{
			name: "unknown code accepts nil",
			code: models.PaymentMethodCode("CRYPTO"),
			cfg:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfiguration(tt.code, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
