package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func seedPackagesAndGiftsMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_seed_packages_and_gifts",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				INSERT INTO subscription_packages (id, name, slug, price, currency, billing_interval, tier_level, features, is_active, created_at, updated_at)
				VALUES
					(gen_random_uuid(), 'Basic Monthly', 'basic-monthly', 9.99, 'USD', 'monthly', 'Basic',
						'[{"name":"Unlimited likes","description":"Like as many profiles as you want"}]', true, NOW(), NOW()),
					(gen_random_uuid(), 'Premium Monthly', 'premium-monthly', 19.99, 'USD', 'monthly', 'Premium',
						'[{"name":"Unlimited likes","description":"Like as many profiles as you want"},{"name":"See who liked you","description":"Browse your admirers"}]', true, NOW(), NOW()),
					(gen_random_uuid(), 'Elite Yearly', 'elite-yearly', 149.99, 'USD', 'yearly', 'Elite',
						'[{"name":"Everything in Premium","description":"All Premium features"},{"name":"Profile boost","description":"Weekly visibility boost"}]', true, NOW(), NOW())
				ON CONFLICT DO NOTHING
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				INSERT INTO gift_items (id, name, price, currency, icon_url, is_active, created_at, updated_at)
				VALUES
					(gen_random_uuid(), 'Rose', 5.00, 'USD', '/gifts/rose.png', true, NOW(), NOW()),
					(gen_random_uuid(), 'Chocolate Box', 10.00, 'USD', '/gifts/chocolates.png', true, NOW(), NOW()),
					(gen_random_uuid(), 'Teddy Bear', 20.00, 'USD', '/gifts/teddy.png', true, NOW(), NOW()),
					(gen_random_uuid(), 'Diamond Ring', 50.00, 'USD', '/gifts/ring.png', true, NOW(), NOW())
				ON CONFLICT DO NOTHING
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM gift_items WHERE name IN ('Rose','Chocolate Box','Teddy Bear','Diamond Ring')").Error; err != nil {
				return err
			}
			return tx.Exec("DELETE FROM subscription_packages WHERE slug IN ('basic-monthly','premium-monthly','elite-yearly')").Error
		},
	}
}

func init() {
	migrationsList = append(migrationsList, seedPackagesAndGiftsMigration())
}
