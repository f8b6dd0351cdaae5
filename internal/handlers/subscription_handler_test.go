package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
)

func jsonContext(body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

// Package tiers are stored as Basic/Premium/Elite; the create binding has to
// accept exactly that vocabulary so admin-created packages match the seeded
// catalog rows.
func TestCreatePackageBindsCanonicalTiers(t *testing.T) {
	for _, tier := range []models.TierLevel{models.TierBasic, models.TierPremium, models.TierElite} {
		var req CreatePackageRequest
		c := jsonContext(`{"name":"Gold","price":9.99,"interval":"monthly","tier":"` + string(tier) + `"}`)
		err := c.ShouldBindJSON(&req)
		assert.NoError(t, err, "tier %s should bind", tier)
		assert.Equal(t, tier, models.TierLevel(req.Tier))
	}
}

func TestCreatePackageRejectsUnknownTier(t *testing.T) {
	for _, tier := range []string{"premium", "gold", ""} {
		var req CreatePackageRequest
		c := jsonContext(`{"name":"Gold","price":9.99,"interval":"monthly","tier":"` + tier + `"}`)
		assert.Error(t, c.ShouldBindJSON(&req), "tier %q should be rejected", tier)
	}
}
