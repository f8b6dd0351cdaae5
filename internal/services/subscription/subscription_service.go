package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/utils"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	// ErrPackageNotFound is returned for unknown or inactive packages.
	ErrPackageNotFound = errors.New("subscription package not found")
)

// Service manages subscription packages and user subscriptions.
type Service struct {
	db         *gorm.DB
	balanceSvc *balance.Service
}

// NewService creates a new subscription service
func NewService(db *gorm.DB, balanceSvc *balance.Service) *Service {
	return &Service{db: db, balanceSvc: balanceSvc}
}

// ListPackages returns active packages ordered by price ascending.
func (s *Service) ListPackages() ([]models.SubscriptionPackage, error) {
	var packages []models.SubscriptionPackage
	if err := s.db.Where("is_active = ?", true).Order("price ASC").Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("error listing packages: %w", err)
	}
	return packages, nil
}

// GetPackage returns an active package by ID.
func (s *Service) GetPackage(packageID uuid.UUID) (*models.SubscriptionPackage, error) {
	var pkg models.SubscriptionPackage
	if err := s.db.First(&pkg, "id = ? AND is_active = ?", packageID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("error finding package: %w", err)
	}
	return &pkg, nil
}

// CreatePackage creates a subscription package; the slug derives from the name.
func (s *Service) CreatePackage(name string, price float64, currency models.Currency, interval models.BillingInterval, tier models.TierLevel, features models.JSONList) (*models.SubscriptionPackage, error) {
	if price <= 0 {
		return nil, errors.New("price must be greater than zero")
	}

	pkg := models.SubscriptionPackage{
		Name:            name,
		Slug:            slug.Make(name),
		Price:           utils.Round2(price),
		Currency:        currency,
		BillingInterval: interval,
		TierLevel:       tier,
		Features:        features,
		IsActive:        true,
	}
	if err := s.db.Create(&pkg).Error; err != nil {
		return nil, fmt.Errorf("error creating package: %w", err)
	}
	return &pkg, nil
}

// UpdatePackage mutates mutable package fields; nil/zero leaves a field as-is.
func (s *Service) UpdatePackage(packageID uuid.UUID, name *string, price *float64, isActive *bool, features models.JSONList) (*models.SubscriptionPackage, error) {
	var pkg models.SubscriptionPackage
	if err := s.db.First(&pkg, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("error finding package: %w", err)
	}

	applyPackageUpdates(&pkg, name, price, isActive, features)

	if err := s.db.Save(&pkg).Error; err != nil {
		return nil, fmt.Errorf("error updating package: %w", err)
	}
	return &pkg, nil
}

// applyPackageUpdates copies the provided fields onto pkg. Nil fields are
// left untouched, so a partial update never flips is_active implicitly.
func applyPackageUpdates(pkg *models.SubscriptionPackage, name *string, price *float64, isActive *bool, features models.JSONList) {
	if name != nil && *name != "" {
		pkg.Name = *name
		pkg.Slug = slug.Make(*name)
	}
	if price != nil && *price > 0 {
		pkg.Price = utils.Round2(*price)
	}
	if features != nil {
		pkg.Features = features
	}
	if isActive != nil {
		pkg.IsActive = *isActive
	}
}

// Current returns the user's active subscription, or nil when none exists.
func (s *Service) Current(userID uuid.UUID) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := s.db.Preload("Package").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("ends_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding subscription: %w", err)
	}
	return &sub, nil
}

// ActivateTx activates or extends a subscription inside a caller-owned
// transaction. An active subscription extends from its current period end;
// otherwise the new period starts now.
func (s *Service) ActivateTx(tx *gorm.DB, userID, packageID uuid.UUID) (*models.UserSubscription, error) {
	var pkg models.SubscriptionPackage
	if err := tx.First(&pkg, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("error finding package: %w", err)
	}

	period := periodFor(pkg.BillingInterval)
	now := time.Now()

	var existing models.UserSubscription
	err := tx.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("ends_at DESC").
		First(&existing).Error
	switch {
	case err == nil:
		start := existing.EndsAt
		if start.Before(now) {
			start = now
		}
		existing.PackageID = pkg.ID
		existing.Tier = pkg.TierLevel
		existing.EndsAt = start.Add(period)
		if err := tx.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("error extending subscription: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := models.UserSubscription{
			UserID:    userID,
			PackageID: pkg.ID,
			Tier:      pkg.TierLevel,
			Status:    models.SubscriptionStatusActive,
			StartsAt:  now,
			EndsAt:    now.Add(period),
		}
		if err := tx.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("error creating subscription: %w", err)
		}
		return &sub, nil
	default:
		return nil, fmt.Errorf("error finding subscription: %w", err)
	}
}

// PurchaseWithBalance debits the package price from the user's balance and
// activates the subscription in one database transaction. No partial state:
// either both happen or neither.
func (s *Service) PurchaseWithBalance(ctx context.Context, userID, packageID uuid.UUID) (*models.UserSubscription, float64, error) {
	pkg, err := s.GetPackage(packageID)
	if err != nil {
		return nil, 0, err
	}

	var sub *models.UserSubscription
	var newBalance float64
	reference := utils.GenerateReference("SUB")

	err = s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.balanceSvc.DebitTx(tx, userID, pkg.Price, models.BalanceReasonSubscription, reference)
		if err != nil {
			return err
		}
		newBalance = b.Amount

		sub, err = s.ActivateTx(tx, userID, packageID)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	s.balanceSvc.PublishUpdate(ctx, userID, newBalance, models.BalanceReasonSubscription, reference)
	return sub, newBalance, nil
}

// ExpireLapsed marks active subscriptions whose period has ended as expired.
// Returns the number of rows affected.
func (s *Service) ExpireLapsed() (int64, error) {
	result := s.db.Model(&models.UserSubscription{}).
		Where("status = ? AND ends_at < ?", models.SubscriptionStatusActive, time.Now()).
		Update("status", models.SubscriptionStatusExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("error expiring subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func periodFor(interval models.BillingInterval) time.Duration {
	if interval == models.BillingIntervalYearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}
