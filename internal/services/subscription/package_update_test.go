package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
)

func TestApplyPackageUpdatesPartial(t *testing.T) {
	pkg := models.SubscriptionPackage{
		Name:     "Premium Monthly",
		Slug:     "premium-monthly",
		Price:    19.99,
		IsActive: false,
	}

	name := "Premium Plus"
	applyPackageUpdates(&pkg, &name, nil, nil, nil)

	assert.Equal(t, "Premium Plus", pkg.Name)
	assert.Equal(t, "premium-plus", pkg.Slug)
	assert.Equal(t, 19.99, pkg.Price)
	assert.False(t, pkg.IsActive, "a partial update must not reactivate a deactivated package")
}

func TestApplyPackageUpdatesIsActive(t *testing.T) {
	pkg := models.SubscriptionPackage{Name: "Basic Monthly", IsActive: true}

	active := false
	applyPackageUpdates(&pkg, nil, nil, &active, nil)
	assert.False(t, pkg.IsActive)

	active = true
	applyPackageUpdates(&pkg, nil, nil, &active, nil)
	assert.True(t, pkg.IsActive)
}

func TestApplyPackageUpdatesPriceAndFeatures(t *testing.T) {
	pkg := models.SubscriptionPackage{Price: 9.99}

	price := 12.499
	features := models.JSONList{{"name": "Unlimited likes"}}
	applyPackageUpdates(&pkg, nil, &price, nil, features)

	assert.Equal(t, 12.5, pkg.Price)
	assert.Equal(t, features, pkg.Features)

	bad := -3.0
	applyPackageUpdates(&pkg, nil, &bad, nil, nil)
	assert.Equal(t, 12.5, pkg.Price)
}
