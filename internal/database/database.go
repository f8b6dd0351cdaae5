package database

import (
	"fmt"
	"time"

	"github.com/amora/backend/internal/config"
	"github.com/amora/backend/internal/database/migrations"
	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB initializes the database connection with configuration
func InitDB(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dbConfig.URL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdle)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run seed migrations: %w", err)
	}

	return db, nil
}

// Migrate runs gorm auto-migration for all models. Versioned seed data lives
// in the migrations package.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Users
		&models.User{},

		// Registry
		&models.Country{},
		&models.PaymentMethodType{},
		&models.CountryPaymentMethod{},

		// Financial
		&models.Transaction{},
		&models.Balance{},
		&models.BalanceEntry{},
		&models.WithdrawalRequest{},

		// Subscriptions
		&models.SubscriptionPackage{},
		&models.UserSubscription{},

		// Gifting
		&models.GiftItem{},
		&models.GiftSend{},

		// Back office
		&utils.AuditLog{},
	)
}
