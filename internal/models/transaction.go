package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemCategory is the kind of thing a transaction pays for.
type ItemCategory string

const (
	ItemCategorySubscription ItemCategory = "subscription"
	ItemCategoryGift         ItemCategory = "gift"
	ItemCategoryDeposit      ItemCategory = "deposit"
)

// TransactionStatus represents the lifecycle state of a manual payment.
type TransactionStatus string

const (
	TransactionStatusPendingPayment      TransactionStatus = "pending_payment"
	TransactionStatusPendingVerification TransactionStatus = "pending_verification"
	TransactionStatusCompleted           TransactionStatus = "completed"
	TransactionStatusDeclined            TransactionStatus = "declined"
	TransactionStatusError               TransactionStatus = "error"
)

// Transaction records a user's out-of-band payment awaiting manual admin
// verification. Payment instructions and configuration are snapshotted at
// initiation so later edits to the country method never change what an
// in-flight transaction told the user to do.
type Transaction struct {
	Base
	UserID               uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 User              `gorm:"foreignKey:UserID" json:"-"`
	CountryID            uuid.UUID         `gorm:"type:uuid;not null" json:"country_id"`
	Country              Country           `gorm:"foreignKey:CountryID" json:"-"`
	PaymentMethodID      uuid.UUID         `gorm:"type:uuid;not null" json:"payment_method_id"`
	PaymentMethod        PaymentMethodType `gorm:"foreignKey:PaymentMethodID" json:"-"`
	ItemCategory         ItemCategory      `gorm:"type:varchar(20);not null;index" json:"item_category"`
	PayableItemID        uuid.UUID         `gorm:"type:uuid;not null" json:"payable_item_id"`
	Amount               float64           `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency             Currency          `gorm:"type:varchar(3);not null" json:"currency"`
	Status               TransactionStatus `gorm:"type:varchar(30);not null;index" json:"status"`
	Reference            string            `gorm:"type:varchar(40);uniqueIndex" json:"reference"`
	UserProvidedRef      string            `gorm:"type:varchar(140)" json:"user_provided_reference"`
	PaymentInstructions  string            `gorm:"type:text" json:"payment_instructions"`
	PaymentConfiguration JSON              `gorm:"type:jsonb" json:"payment_configuration_details"`
	AdminNotes           string            `gorm:"type:text" json:"admin_notes"`
	ProcessedAt          *time.Time        `json:"processed_at"`
	ProcessedBy          *uuid.UUID        `gorm:"type:uuid" json:"processed_by"`
}

func (Transaction) TableName() string { return "transactions" }
