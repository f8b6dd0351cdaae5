package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/utils"
)

// SubscriptionHandler exposes subscription packages and membership state.
type SubscriptionHandler struct {
	subscriptions *subscription.Service
	audit         *utils.AuditLogger
}

func NewSubscriptionHandler(subscriptionService *subscription.Service, audit *utils.AuditLogger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptionService, audit: audit}
}

type PurchaseSubscriptionRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
}

type CreatePackageRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    float64         `json:"price" binding:"required,gt=0"`
	Currency string          `json:"currency"`
	Interval string          `json:"interval" binding:"required,oneof=monthly yearly"`
	Tier     string          `json:"tier" binding:"required,oneof=Basic Premium Elite"`
	Features models.JSONList `json:"features"`
}

type UpdatePackageRequest struct {
	Name     *string         `json:"name"`
	Price    *float64        `json:"price"`
	IsActive *bool           `json:"is_active"`
	Features models.JSONList `json:"features"`
}

// ListPackages returns the active subscription packages.
func (h *SubscriptionHandler) ListPackages(c *gin.Context) {
	packages, err := h.subscriptions.ListPackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load packages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

// Current returns the user's active subscription, if any.
func (h *SubscriptionHandler) Current(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptions.Current(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

// PurchaseWithBalance buys a package by debiting the site balance and
// activating the subscription atomically.
func (h *SubscriptionHandler) PurchaseWithBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PurchaseSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	packageID, ok := parseUUID(c, req.PackageID, "package_id")
	if !ok {
		return
	}

	sub, newBalance, err := h.subscriptions.PurchaseWithBalance(c.Request.Context(), userID, packageID)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		case errors.Is(err, balance.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription": sub,
		"new_balance":  newBalance,
	})
}

// CreatePackage creates a subscription package (admin).
func (h *SubscriptionHandler) CreatePackage(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currency := models.Currency(req.Currency)
	if currency == "" {
		currency = models.CurrencyUSD
	}

	pkg, err := h.subscriptions.CreatePackage(req.Name, req.Price, currency,
		models.BillingInterval(req.Interval), models.TierLevel(req.Tier), req.Features)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}

	h.audit.Record(adminID, utils.AuditEventPackageSaved, &pkg.ID, "created "+pkg.Name, c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}

// UpdatePackage edits a subscription package (admin).
func (h *SubscriptionHandler) UpdatePackage(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	packageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.subscriptions.UpdatePackage(packageID, req.Name, req.Price, req.IsActive, req.Features)
	if err != nil {
		if errors.Is(err, subscription.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update package"})
		return
	}

	h.audit.Record(adminID, utils.AuditEventPackageSaved, &pkg.ID, "updated "+pkg.Name, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}
