package models

import (
	"time"

	"github.com/google/uuid"
)

// BillingInterval represents the billing interval for a subscription package
type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalYearly  BillingInterval = "yearly"
)

// TierLevel is the subscription rank governing feature access.
type TierLevel string

const (
	TierBasic   TierLevel = "Basic"
	TierPremium TierLevel = "Premium"
	TierElite   TierLevel = "Elite"
)

// SubscriptionStatus represents the status of a user subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionPackage is a purchasable plan. Features is an ordered list of
// {name, description} entries rendered by the client.
type SubscriptionPackage struct {
	Base
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	Slug            string          `gorm:"type:varchar(120);uniqueIndex" json:"slug"`
	Price           float64         `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency        Currency        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	BillingInterval BillingInterval `gorm:"type:varchar(10);not null" json:"billing_interval"`
	TierLevel       TierLevel       `gorm:"type:varchar(10);not null" json:"tier_level"`
	Features        JSONList        `gorm:"type:jsonb" json:"features"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
}

func (SubscriptionPackage) TableName() string { return "subscription_packages" }

// UserSubscription records a user's active plan and its current period.
type UserSubscription struct {
	Base
	UserID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User                `gorm:"foreignKey:UserID" json:"-"`
	PackageID uuid.UUID           `gorm:"type:uuid;not null" json:"package_id"`
	Package   SubscriptionPackage `gorm:"foreignKey:PackageID" json:"-"`
	Tier      TierLevel           `gorm:"type:varchar(10);not null" json:"tier"`
	Status    SubscriptionStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	StartsAt  time.Time           `json:"starts_at"`
	EndsAt    time.Time           `json:"ends_at"`
}

func (UserSubscription) TableName() string { return "user_subscriptions" }
