package models

import (
	"github.com/google/uuid"
)

// Country is static reference data seeded by migrations.
type Country struct {
	Base
	Name     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ISOCode  string `gorm:"type:varchar(2);uniqueIndex;not null" json:"iso_code"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Country) TableName() string { return "countries" }

// PaymentMethodCode identifies a global payment method type. The code decides
// which configuration variant a country-level setup must carry.
type PaymentMethodCode string

const (
	PaymentMethodMpesa  PaymentMethodCode = "MPESA"
	PaymentMethodPayPal PaymentMethodCode = "PAYPAL"
	PaymentMethodBank   PaymentMethodCode = "BANK_TRANSFER"
)

// PaymentMethodType is a global payment method (M-Pesa, PayPal, bank transfer).
type PaymentMethodType struct {
	Base
	Name        string            `gorm:"type:varchar(100);not null" json:"name"`
	Code        PaymentMethodCode `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`
	Description string            `gorm:"type:text" json:"description"`
	IsActive    bool              `gorm:"default:true" json:"is_active"`
}

func (PaymentMethodType) TableName() string { return "payment_method_types" }

// CountryPaymentMethod configures a global method for one country: the
// instructions shown to users and the account details they pay into.
// At most one row per (country, method) pair.
type CountryPaymentMethod struct {
	Base
	CountryID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_country_method" json:"country_id"`
	Country          Country           `gorm:"foreignKey:CountryID" json:"-"`
	PaymentMethodID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_country_method" json:"payment_method_id"`
	PaymentMethod    PaymentMethodType `gorm:"foreignKey:PaymentMethodID" json:"-"`
	UserInstructions string            `gorm:"type:text" json:"user_instructions"`
	Configuration    JSON              `gorm:"type:jsonb" json:"configuration_details"`
	IsActive         bool              `gorm:"default:true" json:"is_active"`
	Priority         int               `gorm:"default:0" json:"priority"`
}

func (CountryPaymentMethod) TableName() string { return "country_payment_methods" }
