package models

import (
	"github.com/google/uuid"
)

// Currency represents supported currencies
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyKES Currency = "KES"
	CurrencyNGN Currency = "NGN"
	CurrencyGHS Currency = "GHS"
)

// Balance is a user's single site balance. The amount never goes below zero;
// the ledger service enforces that under a row lock.
type Balance struct {
	Base
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Amount   float64   `gorm:"type:decimal(12,2);default:0" json:"amount"`
	Currency Currency  `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
}

func (Balance) TableName() string { return "balances" }

// BalanceEntry is the audit row written alongside every balance mutation.
// Positive amounts are credits, negative are debits.
type BalanceEntry struct {
	Base
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	Amount        float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason        string    `gorm:"type:varchar(50);not null" json:"reason"`
	Reference     string    `gorm:"type:varchar(100)" json:"reference"`
	BalanceBefore float64   `gorm:"type:decimal(12,2)" json:"balance_before"`
	BalanceAfter  float64   `gorm:"type:decimal(12,2)" json:"balance_after"`
}

func (BalanceEntry) TableName() string { return "balance_entries" }

// Balance entry reasons.
const (
	BalanceReasonDeposit         = "deposit"
	BalanceReasonWithdrawal      = "withdrawal"
	BalanceReasonGiftSend        = "gift_send"
	BalanceReasonGiftRedemption  = "gift_redemption"
	BalanceReasonSubscription    = "subscription_purchase"
	BalanceReasonAdminAdjustment = "admin_adjustment"
)
