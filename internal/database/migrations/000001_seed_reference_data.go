package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func seedReferenceDataMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_seed_reference_data",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				INSERT INTO countries (id, name, iso_code, is_active, created_at, updated_at)
				VALUES
					(gen_random_uuid(), 'Kenya', 'KE', true, NOW(), NOW()),
					(gen_random_uuid(), 'Nigeria', 'NG', true, NOW(), NOW()),
					(gen_random_uuid(), 'Ghana', 'GH', true, NOW(), NOW()),
					(gen_random_uuid(), 'United States', 'US', true, NOW(), NOW()),
					(gen_random_uuid(), 'United Kingdom', 'GB', true, NOW(), NOW())
				ON CONFLICT DO NOTHING
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				INSERT INTO payment_method_types (id, name, code, description, is_active, created_at, updated_at)
				VALUES
					(gen_random_uuid(), 'M-Pesa', 'MPESA', 'Safaricom M-Pesa paybill payment', true, NOW(), NOW()),
					(gen_random_uuid(), 'PayPal', 'PAYPAL', 'PayPal transfer to the site account', true, NOW(), NOW()),
					(gen_random_uuid(), 'Bank Transfer', 'BANK_TRANSFER', 'Direct bank deposit', true, NOW(), NOW())
				ON CONFLICT DO NOTHING
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM payment_method_types WHERE code IN ('MPESA','PAYPAL','BANK_TRANSFER')").Error; err != nil {
				return err
			}
			return tx.Exec("DELETE FROM countries WHERE iso_code IN ('KE','NG','GH','US','GB')").Error
		},
	}
}

func init() {
	migrationsList = append(migrationsList, seedReferenceDataMigration())
}
