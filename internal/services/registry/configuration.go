package registry

import (
	"fmt"

	"github.com/amora/backend/internal/models"
)

// ValidateConfiguration checks a country method's configuration against the
// shape its code implies. Known codes get field-level validation; unknown
// codes accept any map, matching the loose write behavior admins rely on when
// introducing a new method before the client knows how to render it.
func ValidateConfiguration(code models.PaymentMethodCode, cfg models.JSON) error {
	switch code {
	case models.PaymentMethodPayPal:
		return requireStringFields(cfg, "email")
	case models.PaymentMethodMpesa:
		return requireStringFields(cfg, "paybill", "account_instructions")
	case models.PaymentMethodBank:
		return requireStringFields(cfg, "bank_name", "account_number", "beneficiary")
	default:
		return nil
	}
}

func requireStringFields(cfg models.JSON, fields ...string) error {
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}
	for _, field := range fields {
		v, ok := cfg[field]
		if !ok {
			return fmt.Errorf("configuration field %q is required", field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return fmt.Errorf("configuration field %q must be a non-empty string", field)
		}
	}
	return nil
}
